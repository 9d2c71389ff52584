package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// DragSystem turns pointer samples into pick-up, drag and release of
// draggable items.
type DragSystem struct {
	physics *PhysicsSystem
	active  ecs.Entity
}

func NewDragSystem(physics *PhysicsSystem) *DragSystem {
	return &DragSystem{physics: physics}
}

// Active returns the item currently held, if any.
func (d *DragSystem) Active() (ecs.Entity, bool) {
	return d.active, d.active.Valid()
}

func (d *DragSystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}

	captureOriginalScales(w)

	ptr, ok := findPointer(w)
	if !ok {
		return
	}
	_, cam, camT, ok := findCamera(w)
	if !ok {
		return
	}
	wx, wy, wz := ScreenToWorld(cam, camT, ptr.ScreenX, ptr.ScreenY, PointerDepth)

	if d.active.Valid() && !w.IsAlive(d.active) {
		d.active = 0
		suspendScrolling(w, false)
	}

	switch ptr.Phase {
	case component.PointerBegan:
		e, ok := d.pick(w, wx, wy)
		if !ok {
			return
		}
		d.active = e
		OnPointerDown(w, e, wx, wy, wz)
	case component.PointerMoved, component.PointerStationary:
		if d.active.Valid() {
			OnPointerDrag(w, d.active, wx, wy, wz)
		}
	default:
		if d.active.Valid() {
			OnPointerUp(w, d.active)
			d.active = 0
		}
	}
}

// pick returns the draggable under the pointer nearest to the camera.
func (d *DragSystem) pick(w *ecs.World, wx, wy float64) (ecs.Entity, bool) {
	var best ecs.Entity
	bestZ := 0.0
	for _, e := range d.physics.QueryPoint(wx, wy, component.LayerItem) {
		if !ecs.Has(w, e, component.DraggableComponent.Kind()) {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		if !best.Valid() || t.Z < bestZ || (t.Z == bestZ && e > best) {
			best = e
			bestZ = t.Z
		}
	}
	return best, best.Valid()
}

// OnPointerDown picks the item up: it stops falling, pops in scale and
// remembers where it was grabbed.
func OnPointerDown(w *ecs.World, e ecs.Entity, wx, wy, wz float64) {
	d, ok := ecs.Get(w, e, component.DraggableComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}

	d.IsDragging = true
	d.IsPlaced = false
	suspendScrolling(w, true)

	playClip(w, e, d.PickUpClip)
	KillTweens(w, e)
	TweenScale(w, e, d.OriginalScaleX*d.PickUpScale, d.OriginalScaleY*d.PickUpScale, d.ScaleDuration, ease.OutQuad)

	d.OffsetX = t.X - wx
	d.OffsetY = t.Y - wy
	d.OffsetZ = t.Z - wz
	resetVelocity(w, e)

	zap.L().Debug("item picked up", zap.Stringer("entity", e), zap.Float64("x", t.X), zap.Float64("y", t.Y))
}

// OnPointerDrag moves a held item to the pointer plus the grab offset.
func OnPointerDrag(w *ecs.World, e ecs.Entity, wx, wy, wz float64) {
	d, ok := ecs.Get(w, e, component.DraggableComponent.Kind())
	if !ok || !d.IsDragging {
		return
	}
	setPosition(w, e, wx+d.OffsetX, wy+d.OffsetY, wz+d.OffsetZ)
}

// OnPointerUp lets go of the item. Unless it already settled into a zone,
// gravity takes over until a zone overlap snaps it.
func OnPointerUp(w *ecs.World, e ecs.Entity) {
	d, ok := ecs.Get(w, e, component.DraggableComponent.Kind())
	if !ok {
		return
	}

	d.IsDragging = false
	suspendScrolling(w, false)

	if !d.IsPlaced {
		setGravityScale(w, e, d.FallGravityScale)
	}

	TweenScale(w, e, d.OriginalScaleX, d.OriginalScaleY, d.ScaleDuration, ease.OutQuad)
	zap.L().Debug("item released", zap.Stringer("entity", e), zap.Bool("placed", d.IsPlaced))
}

func captureOriginalScales(w *ecs.World) {
	ecs.ForEach2(w, component.DraggableComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, d *component.Draggable, t *component.Transform) {
		if d.ScaleCaptured {
			return
		}
		d.OriginalScaleX = t.ScaleX
		d.OriginalScaleY = t.ScaleY
		d.ScaleCaptured = true
	})
}

func suspendScrolling(w *ecs.World, dragging bool) {
	ecs.ForEach(w, component.ScrollControllerComponent.Kind(), func(_ ecs.Entity, sc *component.ScrollController) {
		sc.SetDragging(dragging)
	})
}

func playClip(w *ecs.World, e ecs.Entity, name string) {
	if a, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
		a.PlayOneShot(name)
	}
}

func setPosition(w *ecs.World, e ecs.Entity, x, y, z float64) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.X, t.Y, t.Z = x, y, z
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && !body.Static {
		body.Body.SetPosition(cp.Vector{X: x, Y: y})
	}
}

func setGravityScale(w *ecs.World, e ecs.Entity, scale float64) {
	g, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
	if !ok {
		if err := ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: scale}); err != nil {
			panic("drag system: add gravity scale: " + err.Error())
		}
		return
	}
	g.Scale = scale
}

// resetVelocity stops the item dead and switches its gravity off.
func resetVelocity(w *ecs.World, e ecs.Entity) {
	setGravityScale(w, e, 0)
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && !body.Static {
		body.Body.SetVelocityVector(cp.Vector{})
	}
}
