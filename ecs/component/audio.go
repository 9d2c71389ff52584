package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds named clips. Setting Play[i] requests a one-shot playback on
// the next audio system pass.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// PlayOneShot requests the named clip and reports whether it exists.
func (a *Audio) PlayOneShot(name string) bool {
	if a == nil || name == "" {
		return false
	}
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
