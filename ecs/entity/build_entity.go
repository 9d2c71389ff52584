package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/shelfsort/assets"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/milk9111/shelfsort/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"camera_tag":        addCameraTag,
	"item_tag":          addItemTag,
	"ground_tag":        addGroundTag,
	"transform":         addTransform,
	"sprite":            addSprite,
	"render_layer":      addRenderLayer,
	"camera":            addCamera,
	"pointer":           addPointer,
	"scroll_controller": addScrollController,
	"background":        addBackground,
	"draggable":         addDraggable,
	"placement_zone":    addPlacementZone,
	"audio":             addAudio,
	"collision_layer":   addCollisionLayer,
	"physics_body":      addPhysicsBody,
	"gravity_scale":     addGravityScale,
}

// Tags first so later builders can see what kind of entity they are on.
var componentBuildOrder = []string{
	"camera_tag",
	"item_tag",
	"ground_tag",
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"pointer",
	"scroll_controller",
	"background",
	"draggable",
	"placement_zone",
	"audio",
	"collision_layer",
	"physics_body",
	"gravity_scale",
}

// BuildEntity creates an entity from a prefab file. On error nothing is
// left in the world.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	if err := applyComponents(w, e, spec.Components, ctx, componentRegistry); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: %w", prefabPath, err)
	}
	if err := ecs.Add(w, e, component.PrefabRefComponent.Kind(), &component.PrefabRef{Path: prefabs.Name(prefabPath)}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: add prefab ref: %w", prefabPath, err)
	}

	return e, nil
}

// applyComponents runs registry builders in build order, then any
// remaining names alphabetically. Unknown names are an error.
func applyComponents(w *ecs.World, e ecs.Entity, components map[string]any, ctx *buildContext, registry map[string]componentBuildFn) error {
	remaining := make(map[string]any, len(components))
	for k, v := range components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		delete(remaining, name)
		builder, ok := registry[name]
		if !ok {
			continue
		}
		if err := builder(w, e, raw, ctx); err != nil {
			return fmt.Errorf("add %q: %w", name, err)
		}
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("no builder for component %q", names[0])
	}
	return nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

// addItemTag also gives the item the state every draggable needs, so a
// prefab only lists the tunables it overrides.
func addItemTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	if err := ecs.Add(w, e, component.ItemTagComponent.Kind(), &component.ItemTag{}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.DraggableComponent.Kind(), component.NewDraggable()); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.ZoneContactComponent.Kind(), &component.ZoneContact{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.TweenComponent.Kind(), &component.Tween{})
}

func addGroundTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		Z:        spec.Z,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := &component.Sprite{PixelsPerUnit: spec.PixelsPerUnit}
	switch {
	case spec.Image != "":
		img, err := assets.LoadImage(spec.Image)
		if err != nil {
			return fmt.Errorf("load image %q: %w", spec.Image, err)
		}
		sprite.Image = img
	case spec.Color != "":
		clr, err := parseHexColor(spec.Color)
		if err != nil {
			return err
		}
		sprite.Image = assets.SolidImage(spec.Width, spec.Height, clr)
	default:
		return fmt.Errorf("sprite needs an image or a color")
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		PixelsPerUnit:  spec.PixelsPerUnit,
		Zoom:           spec.Zoom,
		ViewportWidth:  spec.ViewportWidth,
		ViewportHeight: spec.ViewportHeight,
	})
}

func addPointer(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{})
}

type scrollControllerSpec = prefabs.ScrollControllerComponentSpec

func addScrollController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	sc := &component.ScrollController{
		DesktopScrollSpeed: component.DefaultDesktopScrollSpeed,
		MobileScrollSpeed:  component.DefaultMobileScrollSpeed,
	}
	if err := applyScrollController(sc, raw); err != nil {
		return err
	}
	return ecs.Add(w, e, component.ScrollControllerComponent.Kind(), sc)
}

func applyScrollController(sc *component.ScrollController, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[scrollControllerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode scroll controller spec: %w", err)
	}
	if spec.DesktopScrollSpeed != nil {
		sc.DesktopScrollSpeed = *spec.DesktopScrollSpeed
	}
	if spec.MobileScrollSpeed != nil {
		sc.MobileScrollSpeed = *spec.MobileScrollSpeed
	}
	return nil
}

type backgroundSpec = prefabs.BackgroundComponentSpec

func addBackground(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[backgroundSpec](raw)
	if err != nil {
		return fmt.Errorf("decode background spec: %w", err)
	}
	return ecs.Add(w, e, component.BackgroundComponent.Kind(), &component.Background{Width: spec.Width})
}

type draggableSpec = prefabs.DraggableComponentSpec

func addDraggable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	d, ok := ecs.Get(w, e, component.DraggableComponent.Kind())
	if !ok {
		d = component.NewDraggable()
		if err := ecs.Add(w, e, component.DraggableComponent.Kind(), d); err != nil {
			return err
		}
	}
	return applyDraggable(d, raw)
}

// applyDraggable overwrites tunables only; drag state is left alone.
func applyDraggable(d *component.Draggable, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[draggableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode draggable spec: %w", err)
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&d.PlaceOffset, spec.PlaceOffset)
	set(&d.SnapDuration, spec.SnapDuration)
	set(&d.SnapRadius, spec.SnapRadius)
	set(&d.PickUpScale, spec.PickUpScale)
	set(&d.ScaleDuration, spec.ScaleDuration)
	set(&d.FallGravityScale, spec.FallGravityScale)
	if spec.PickUpClip != "" {
		d.PickUpClip = spec.PickUpClip
	}
	if spec.DropClip != "" {
		d.DropClip = spec.DropClip
	}
	if d.SnapRadius < 0 {
		return fmt.Errorf("snap_radius must not be negative, got %v", d.SnapRadius)
	}
	return nil
}

type placementZoneSpec = prefabs.PlacementZoneComponentSpec

func addPlacementZone(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[placementZoneSpec](raw)
	if err != nil {
		return fmt.Errorf("decode placement zone spec: %w", err)
	}
	kind, err := parseZoneKind(spec.Kind)
	if err != nil {
		return err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("placement zone needs a positive size, got %vx%v", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.PlacementZoneComponent.Kind(), &component.PlacementZone{
		Kind:   kind,
		Width:  spec.Width,
		Height: spec.Height,
	})
}

func parseZoneKind(v string) (component.ZoneKind, error) {
	switch component.ZoneKind(strings.ToLower(strings.TrimSpace(v))) {
	case component.ZoneShelf:
		return component.ZoneShelf, nil
	case component.ZoneGeneric, "":
		return component.ZoneGeneric, nil
	default:
		return "", fmt.Errorf("unknown zone kind %q", v)
	}
}

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp := buildAudioComponent(spec.Clips, ctx.PrefabPath)
	for _, name := range spec.Autoplay {
		comp.PlayOneShot(name)
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics body needs a radius or a positive size")
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:         spec.Width,
		Height:        spec.Height,
		Radius:        spec.Radius,
		Mass:          spec.Mass,
		Friction:      spec.Friction,
		Elasticity:    spec.Elasticity,
		Static:        spec.Static,
		Sensor:        spec.Sensor,
		FixedRotation: spec.FixedRotation,
	})
}

type collisionLayerSpec = prefabs.CollisionLayerComponentSpec

func addCollisionLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision layer spec: %w", err)
	}
	return ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{Category: spec.Category, Mask: spec.Mask})
}

type gravityScaleSpec = prefabs.GravityScaleComponentSpec

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

func parseHexColor(v string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %q", v)
	}
	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}
	r, err := parse(0)
	if err != nil {
		return nil, fmt.Errorf("parse red component: %w", err)
	}
	g, err := parse(2)
	if err != nil {
		return nil, fmt.Errorf("parse green component: %w", err)
	}
	b, err := parse(4)
	if err != nil {
		return nil, fmt.Errorf("parse blue component: %w", err)
	}
	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return nil, fmt.Errorf("parse alpha component: %w", err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
