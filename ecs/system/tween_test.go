package system

import (
	"testing"

	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func newTweenWorld(t *testing.T) (*ecs.World, ecs.Entity, *component.Transform) {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	tr := &component.Transform{ScaleX: 1, ScaleY: 1}
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), tr))
	return w, e, tr
}

func stepTweens(w *ecs.World, frames int) {
	sys := NewTweenSystem()
	for i := 0; i < frames; i++ {
		w.SetDeltaTime(0.05)
		sys.Update(w)
	}
}

func TestTweenPositionReachesTarget(t *testing.T) {
	w, e, tr := newTweenWorld(t)

	TweenPosition(w, e, 3, -2, -1, 0.5, ease.OutCubic)
	stepTweens(w, 5)
	assert.Greater(t, tr.X, 0.0)
	assert.Less(t, tr.X, 3.0)

	stepTweens(w, 6)
	assert.InDelta(t, 3, tr.X, 1e-4)
	assert.InDelta(t, -2, tr.Y, 1e-4)
	assert.InDelta(t, -1, tr.Z, 1e-4)

	tw, ok := ecs.Get(w, e, component.TweenComponent.Kind())
	require.True(t, ok)
	assert.Nil(t, tw.Position)
	assert.False(t, tw.Active())
}

func TestTweenScaleReplacesRunningScale(t *testing.T) {
	w, e, tr := newTweenWorld(t)

	TweenScale(w, e, 2, 2, 1, ease.OutQuad)
	stepTweens(w, 2)
	TweenScale(w, e, 1, 1, 0.2, ease.OutQuad)
	stepTweens(w, 5)

	assert.InDelta(t, 1, tr.ScaleX, 1e-4)
	assert.InDelta(t, 1, tr.ScaleY, 1e-4)

	stepTweens(w, 20)
	assert.InDelta(t, 1, tr.ScaleX, 1e-4)
}

func TestKillTweensStopsWhereItStands(t *testing.T) {
	w, e, tr := newTweenWorld(t)

	TweenPosition(w, e, 10, 0, 0, 1, ease.OutQuad)
	stepTweens(w, 4)
	KillTweens(w, e)
	x := tr.X
	stepTweens(w, 10)

	assert.Equal(t, x, tr.X)
	assert.Greater(t, x, 0.0)
	assert.Less(t, x, 10.0)
}

func TestTweenMovesDynamicBody(t *testing.T) {
	s := newScene(t, component.PointerMouse)
	item := s.addItem(t, 0, 0)
	s.physics.Sync(s.w)

	TweenPosition(s.w, item, 2, 1, 0, 0.1, ease.OutCubic)
	s.run(10)

	body, ok := ecs.Get(s.w, item, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, body.Body)
	assert.InDelta(t, 2, body.Body.Position().X, 1e-4)
	assert.InDelta(t, 1, body.Body.Position().Y, 1e-4)
	assert.InDelta(t, 2, s.transform(t, item).X, 1e-4)
}
