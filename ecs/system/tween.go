package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenSystem advances every in-flight tween and writes the values back to
// the transform, and to the physics body when one drives the entity.
type TweenSystem struct{}

func NewTweenSystem() *TweenSystem {
	return &TweenSystem{}
}

func (s *TweenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := float32(w.DeltaTime())

	ecs.ForEach2(w, component.TweenComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tw *component.Tween, t *component.Transform) {
		if tw.Position != nil {
			values, done := advance(tw.Position, dt)
			t.X, t.Y, t.Z = values[0], values[1], values[2]
			if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && !body.Static {
				body.Body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
				body.Body.SetVelocityVector(cp.Vector{})
			}
			if done {
				tw.Position = nil
			}
		}
		if tw.Scale != nil {
			values, done := advance(tw.Scale, dt)
			t.ScaleX, t.ScaleY = values[0], values[1]
			if done {
				tw.Scale = nil
			}
		}
	})
}

func advance(track *component.TweenTrack, dt float32) ([3]float64, bool) {
	var out [3]float64
	allDone := true
	for i := 0; i < track.Count; i++ {
		val, finished := track.Tweens[i].Update(dt)
		out[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	track.Done = allDone
	return out, allDone
}

func ensureTween(w *ecs.World, e ecs.Entity) *component.Tween {
	tw, ok := ecs.Get(w, e, component.TweenComponent.Kind())
	if ok {
		return tw
	}
	tw = &component.Tween{}
	if err := ecs.Add(w, e, component.TweenComponent.Kind(), tw); err != nil {
		return nil
	}
	return tw
}

// TweenPosition animates the entity's position to (x, y, z), replacing any
// position tween already running.
func TweenPosition(w *ecs.World, e ecs.Entity, x, y, z, duration float64, fn ease.TweenFunc) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tw := ensureTween(w, e)
	if tw == nil {
		return
	}
	d := float32(duration)
	track := &component.TweenTrack{Count: 3}
	track.Tweens[0] = gween.New(float32(t.X), float32(x), d, fn)
	track.Tweens[1] = gween.New(float32(t.Y), float32(y), d, fn)
	track.Tweens[2] = gween.New(float32(t.Z), float32(z), d, fn)
	tw.Position = track
}

// TweenScale animates the entity's scale, replacing any scale tween already
// running.
func TweenScale(w *ecs.World, e ecs.Entity, sx, sy, duration float64, fn ease.TweenFunc) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	tw := ensureTween(w, e)
	if tw == nil {
		return
	}
	d := float32(duration)
	track := &component.TweenTrack{Count: 2}
	track.Tweens[0] = gween.New(float32(t.ScaleX), float32(sx), d, fn)
	track.Tweens[1] = gween.New(float32(t.ScaleY), float32(sy), d, fn)
	tw.Scale = track
}

// KillTweens cancels every animation on the entity where it stands.
func KillTweens(w *ecs.World, e ecs.Entity) {
	if tw, ok := ecs.Get(w, e, component.TweenComponent.Kind()); ok {
		tw.Kill()
	}
}
