package entity

import (
	"fmt"

	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/milk9111/shelfsort/levels"
	"go.uber.org/zap"
)

// LoadLevelToWorld spawns every prefab the level places. If any entity
// fails the ones already spawned are destroyed again.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level) ([]ecs.Entity, error) {
	if lvl == nil {
		return nil, fmt.Errorf("load level: level is nil")
	}

	spawned := make([]ecs.Entity, 0, len(lvl.Entities))
	rollback := func() {
		for _, e := range spawned {
			ecs.DestroyEntity(world, e)
		}
	}

	for i, placed := range lvl.Entities {
		e, err := BuildEntity(world, placed.Type)
		if err != nil {
			rollback()
			return nil, fmt.Errorf("load level %q: entity %d: %w", lvl.Name, i, err)
		}
		spawned = append(spawned, e)

		if err := SetEntityTransform(world, e, placed.X, placed.Y); err != nil {
			rollback()
			return nil, fmt.Errorf("load level %q: entity %d: place: %w", lvl.Name, i, err)
		}
		if err := applyProps(world, e, placed); err != nil {
			rollback()
			return nil, fmt.Errorf("load level %q: entity %d: %w", lvl.Name, i, err)
		}
	}

	zap.L().Info("level loaded", zap.String("level", lvl.Name), zap.Int("entities", len(spawned)))
	return spawned, nil
}

// applyProps handles the per-instance overrides a level may set: depth,
// uniform scale, and zone kind and size.
func applyProps(w *ecs.World, e ecs.Entity, placed levels.Entity) error {
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if z, ok := placed.FloatProp("z"); ok && t != nil {
		t.Z = z
	}
	if s, ok := placed.FloatProp("scale"); ok && t != nil {
		t.ScaleX, t.ScaleY = s, s
	}

	zone, isZone := ecs.Get(w, e, component.PlacementZoneComponent.Kind())
	if kind, ok := placed.StringProp("kind"); ok {
		if !isZone {
			return fmt.Errorf("prop kind set on %q, which is not a placement zone", placed.Type)
		}
		k, err := parseZoneKind(kind)
		if err != nil {
			return err
		}
		zone.Kind = k
	}

	width, hasWidth := placed.FloatProp("width")
	height, hasHeight := placed.FloatProp("height")
	if !hasWidth && !hasHeight {
		return nil
	}
	if !isZone {
		return fmt.Errorf("size props set on %q, which is not a placement zone", placed.Type)
	}
	if (hasWidth && width <= 0) || (hasHeight && height <= 0) {
		return fmt.Errorf("zone size must be positive")
	}

	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if hasWidth {
		if t != nil {
			t.ScaleX *= width / zone.Width
		}
		zone.Width = width
		if body != nil {
			body.Width = width
		}
	}
	if hasHeight {
		if t != nil {
			t.ScaleY *= height / zone.Height
		}
		zone.Height = height
		if body != nil {
			body.Height = height
		}
	}
	return nil
}
