package system

import (
	"github.com/milk9111/shelfsort/common"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// PlacementSystem settles released items that overlap a placement zone.
// It runs after physics so this frame's zone contacts are current.
type PlacementSystem struct {
	physics *PhysicsSystem
}

func NewPlacementSystem(physics *PhysicsSystem) *PlacementSystem {
	return &PlacementSystem{physics: physics}
}

func (s *PlacementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.DraggableComponent.Kind(), component.ZoneContactComponent.Kind(), func(e ecs.Entity, d *component.Draggable, zc *component.ZoneContact) {
		if !zc.Overlapping() || d.IsPlaced || d.IsDragging {
			return
		}
		resetVelocity(w, e)
		s.SnapToPlace(w, e)
	})
}

// SnapToPlace looks for the nearest zone within the item's snap radius and
// tweens the item into it. It reports whether a zone was found; when none
// is, the item is left untouched.
func (s *PlacementSystem) SnapToPlace(w *ecs.World, e ecs.Entity) bool {
	d, ok := ecs.Get(w, e, component.DraggableComponent.Kind())
	if !ok {
		return false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return false
	}

	zoneEntity, ok := s.physics.QueryNearest(t.X, t.Y, d.SnapRadius, component.LayerPlacement)
	if !ok {
		return false
	}
	zone, ok := ecs.Get(w, zoneEntity, component.PlacementZoneComponent.Kind())
	if !ok {
		return false
	}
	zoneT, ok := ecs.Get(w, zoneEntity, component.TransformComponent.Kind())
	if !ok {
		return false
	}

	d.IsPlaced = true

	in := SnapInput{
		ItemX:       t.X,
		ItemY:       t.Y,
		Dragging:    d.IsDragging,
		Zone:        *zone,
		ZoneX:       zoneT.X,
		ZoneY:       zoneT.Y,
		PlaceOffset: d.PlaceOffset,
	}
	if d.IsDragging {
		if px, py, _, ok := PointerWorld(w); ok {
			in.PointerX, in.PointerY = px, py
		} else {
			in.PointerX, in.PointerY = t.X, t.Y
		}
	}
	x, y, z := SnapTarget(in)

	TweenPosition(w, e, x, y, z, d.SnapDuration, ease.OutCubic)
	playClip(w, e, d.DropClip)

	zap.L().Debug("item placed",
		zap.Stringer("entity", e),
		zap.Stringer("zone", zoneEntity),
		zap.String("kind", string(zone.Kind)),
		zap.Float64("x", x),
		zap.Float64("y", y),
	)
	return true
}

// SnapInput gathers what SnapTarget needs about an item and its zone.
type SnapInput struct {
	ItemX, ItemY       float64
	Dragging           bool
	PointerX, PointerY float64

	Zone         component.PlacementZone
	ZoneX, ZoneY float64
	PlaceOffset  float64
}

// SnapTarget returns where an item comes to rest in a zone. A shelf pulls
// the item halfway toward the shelf centre; any other zone keeps the item
// where it is, or under the pointer while it is still held. The result is
// clamped to the zone, with room for PlaceOffset above its top edge.
func SnapTarget(in SnapInput) (x, y, z float64) {
	switch {
	case in.Zone.Kind == component.ZoneShelf:
		x = common.Lerp(in.ItemX, in.ZoneX, 0.5)
		y = common.Lerp(in.ItemY, in.ZoneY, 0.5)
	case in.Dragging:
		x, y = in.PointerX, in.PointerY
	default:
		x, y = in.ItemX, in.ItemY
	}

	minX, minY, maxX, maxY := in.Zone.Bounds(in.ZoneX, in.ZoneY)
	x, y = ClampToZone(x, y, minX, minY, maxX, maxY, in.PlaceOffset)
	return x, y, PlacedDepth
}

// ClampToZone keeps x inside [minX, maxX] and y inside
// [minY+offset, maxY+offset].
func ClampToZone(x, y, minX, minY, maxX, maxY, offset float64) (float64, float64) {
	return common.Clamp(x, minX, maxX), common.Clamp(y, minY+offset, maxY+offset)
}
