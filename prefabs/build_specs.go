package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is one prefab file: a name and a map of component name to
// that component's settings.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

// SpriteComponentSpec takes either an image asset or a solid colour with a
// pixel size.
type SpriteComponentSpec struct {
	Image         string  `yaml:"image"`
	Color         string  `yaml:"color"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type CameraComponentSpec struct {
	PixelsPerUnit  float64 `yaml:"pixels_per_unit"`
	Zoom           float64 `yaml:"zoom"`
	ViewportWidth  float64 `yaml:"viewport_width"`
	ViewportHeight float64 `yaml:"viewport_height"`
}

type BackgroundComponentSpec struct {
	Width float64 `yaml:"width"`
}

type ScrollControllerComponentSpec struct {
	DesktopScrollSpeed *float64 `yaml:"desktop_scroll_speed"`
	MobileScrollSpeed  *float64 `yaml:"mobile_scroll_speed"`
}

// DraggableComponentSpec overrides item tunables. Unset fields keep their
// defaults.
type DraggableComponentSpec struct {
	PlaceOffset      *float64 `yaml:"place_offset"`
	SnapDuration     *float64 `yaml:"snap_duration"`
	SnapRadius       *float64 `yaml:"snap_radius"`
	PickUpScale      *float64 `yaml:"pick_up_scale"`
	ScaleDuration    *float64 `yaml:"scale_duration"`
	FallGravityScale *float64 `yaml:"fall_gravity_scale"`
	PickUpClip       string   `yaml:"pick_up_clip"`
	DropClip         string   `yaml:"drop_clip"`
}

type PlacementZoneComponentSpec struct {
	Kind   string  `yaml:"kind"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips    []AudioClipSpec `yaml:"clips"`
	Autoplay []string        `yaml:"autoplay"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	Sensor        bool    `yaml:"sensor"`
	FixedRotation bool    `yaml:"fixed_rotation"`
}

type CollisionLayerComponentSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}
