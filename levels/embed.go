package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a scene: the prefabs to spawn and where.
type Level struct {
	Name     string   `json:"name"`
	Entities []Entity `json:"entities"`
}

// Entity places one prefab. Props override prefab settings for this
// instance only.
type Entity struct {
	Type  string                 `json:"type"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// FloatProp returns a numeric prop.
func (e Entity) FloatProp(key string) (float64, bool) {
	v, ok := e.Props[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// StringProp returns a string prop.
func (e Entity) StringProp(key string) (string, bool) {
	v, ok := e.Props[key].(string)
	return v, ok
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelName(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parseLevel(data)
}

// LoadLevel reads a level from disk when path names an existing file and
// from the embedded set otherwise.
func LoadLevel(path string) (*Level, error) {
	if data, err := os.ReadFile(path); err == nil {
		return parseLevel(data)
	}
	return LoadLevelFromFS(path)
}

func parseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	for i, e := range lvl.Entities {
		if e.Type == "" {
			return nil, fmt.Errorf("level %q: entity %d has no type", lvl.Name, i)
		}
	}
	return &lvl, nil
}

func cleanLevelName(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if filepath.Ext(s) == "" {
		s += ".json"
	}
	return s
}
