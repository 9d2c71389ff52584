package entity

import (
	"fmt"

	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/milk9111/shelfsort/prefabs"
)

// reloadRegistry lists the components whose settings can change on a live
// entity. Everything else in a prefab needs a restart.
var reloadRegistry = map[string]componentBuildFn{
	"draggable":         reloadDraggable,
	"scroll_controller": reloadScrollController,
	"placement_zone":    reloadPlacementZone,
	"gravity_scale":     reloadGravityScale,
}

// ReloadPrefab re-reads a prefab and applies its tunables to every entity
// built from it. It returns how many entities were updated.
func ReloadPrefab(w *ecs.World, prefabPath string) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("reload prefab: load %q: %w", prefabPath, err)
	}

	name := prefabs.Name(prefabPath)
	live := make(map[string]any, len(reloadRegistry))
	for k, v := range spec.Components {
		if _, ok := reloadRegistry[k]; ok {
			live[k] = v
		}
	}

	ctx := &buildContext{PrefabPath: prefabPath}
	updated := 0
	var firstErr error
	ecs.ForEach(w, component.PrefabRefComponent.Kind(), func(e ecs.Entity, ref *component.PrefabRef) {
		if ref.Path != name || firstErr != nil {
			return
		}
		if err := applyComponents(w, e, live, ctx, reloadRegistry); err != nil {
			firstErr = fmt.Errorf("reload prefab %q: entity %v: %w", name, e, err)
			return
		}
		updated++
	})
	return updated, firstErr
}

func reloadDraggable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	d, ok := ecs.Get(w, e, component.DraggableComponent.Kind())
	if !ok {
		return nil
	}
	return applyDraggable(d, raw)
}

func reloadScrollController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	sc, ok := ecs.Get(w, e, component.ScrollControllerComponent.Kind())
	if !ok {
		return nil
	}
	return applyScrollController(sc, raw)
}

// reloadPlacementZone only changes the kind; resizing a zone would need its
// static shape rebuilt.
func reloadPlacementZone(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	zone, ok := ecs.Get(w, e, component.PlacementZoneComponent.Kind())
	if !ok {
		return nil
	}
	spec, err := prefabs.DecodeComponentSpec[placementZoneSpec](raw)
	if err != nil {
		return fmt.Errorf("decode placement zone spec: %w", err)
	}
	kind, err := parseZoneKind(spec.Kind)
	if err != nil {
		return err
	}
	zone.Kind = kind
	return nil
}

// reloadGravityScale only touches idle items so a falling item keeps
// falling.
func reloadGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	if d, ok := ecs.Get(w, e, component.DraggableComponent.Kind()); ok && (d.IsDragging || !d.IsPlaced) {
		return nil
	}
	g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
	if !ok {
		return nil
	}
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	g.Scale = spec.Scale
	return nil
}
