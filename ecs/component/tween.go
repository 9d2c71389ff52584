package component

import "github.com/tanema/gween"

// TweenTrack animates up to three values of one property together.
type TweenTrack struct {
	Tweens [3]*gween.Tween
	Count  int
	Done   bool
}

// Tween holds the in-flight animations of an entity, one per property.
// Starting a track replaces the previous one on the same property.
type Tween struct {
	Position *TweenTrack
	Scale    *TweenTrack
}

// Kill drops every in-flight animation.
func (t *Tween) Kill() {
	if t == nil {
		return
	}
	t.Position = nil
	t.Scale = nil
}

// Active reports whether any track is still running.
func (t *Tween) Active() bool {
	if t == nil {
		return false
	}
	return (t.Position != nil && !t.Position.Done) || (t.Scale != nil && !t.Scale.Done)
}

var TweenComponent = NewComponent[Tween]()
