package system

import (
	"testing"

	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerDownPicksItemUp(t *testing.T) {
	s := newScene(t, component.PointerMouse)
	item := s.addItem(t, 0, 0)

	sx, sy := s.screenOf(t, 0.25, 0)
	s.input.Press(sx, sy)
	s.step()

	d := s.draggable(t, item)
	assert.True(t, d.IsDragging)
	assert.False(t, d.IsPlaced)
	assert.InDelta(t, -0.25, d.OffsetX, 1e-9)
	assert.InDelta(t, 0, d.OffsetY, 1e-9)
	assert.Equal(t, 0.0, s.gravity(t, item))
	assert.True(t, s.scroll(t).Suspended)

	active, ok := s.drag.Active()
	require.True(t, ok)
	assert.Equal(t, item, active)
}

func TestPointerDownOnEmptySpaceDoesNothing(t *testing.T) {
	s := newScene(t, component.PointerMouse)
	item := s.addItem(t, 0, 0)

	sx, sy := s.screenOf(t, 5, 3)
	s.input.Press(sx, sy)
	s.step()

	d := s.draggable(t, item)
	assert.False(t, d.IsDragging)
	assert.True(t, d.IsPlaced)
	assert.False(t, s.scroll(t).Suspended)
	_, ok := s.drag.Active()
	assert.False(t, ok)
}

func TestDraggedItemFollowsPointerWithOffset(t *testing.T) {
	s := newScene(t, component.PointerMouse)
	item := s.addItem(t, 0, 0)

	px, py := s.screenOf(t, 0.25, -0.25)
	s.input.Press(px, py)
	s.step()

	for _, target := range [][2]float64{{1, 1}, {2.5, -1}, {-3, 0.5}} {
		mx, my := s.screenOf(t, target[0]+0.25, target[1]-0.25)
		s.input.Move(mx, my)
		s.step()

		tr := s.transform(t, item)
		assert.InDelta(t, target[0], tr.X, 1e-6)
		assert.InDelta(t, target[1], tr.Y, 1e-6)
		assert.InDelta(t, 0, tr.Z, 1e-9)
	}

	assert.True(t, s.draggable(t, item).IsDragging)
	assert.Equal(t, 0.0, s.transform(t, s.camera).X, "camera must not pan while dragging")
}

func TestPickUpScalesItemAndReleaseRestoresIt(t *testing.T) {
	s := newScene(t, component.PointerMouse)
	item := s.addItem(t, 0, 0)

	sx, sy := s.screenOf(t, 0, 0)
	s.input.Press(sx, sy)
	for i := 0; i < 20; i++ {
		s.input.Hold(sx, sy)
	}
	s.run(0)

	tr := s.transform(t, item)
	assert.InDelta(t, component.DefaultPickUpScale, tr.ScaleX, 1e-3)
	assert.InDelta(t, component.DefaultPickUpScale, tr.ScaleY, 1e-3)

	s.input.Release(sx, sy)
	s.run(20)

	assert.InDelta(t, 1, tr.ScaleX, 1e-3)
	assert.InDelta(t, 1, tr.ScaleY, 1e-3)
}

func TestReleaseAwayFromZonesFalls(t *testing.T) {
	s := newScene(t, component.PointerMouse)
	item := s.addItem(t, 0, 0)

	from, fromY := s.screenOf(t, 0, 0)
	to, toY := s.screenOf(t, 3, 2)
	s.input.Drag(from, fromY, to, toY, 5)
	s.run(0)

	d := s.draggable(t, item)
	assert.False(t, d.IsDragging)
	assert.False(t, d.IsPlaced)
	assert.Equal(t, component.DefaultFallGravityScale, s.gravity(t, item))
	assert.False(t, s.scroll(t).Suspended)

	startY := s.transform(t, item).Y
	s.run(10)
	assert.Less(t, s.transform(t, item).Y, startY)
	assert.False(t, s.draggable(t, item).IsPlaced)
}

func TestReleaseOverShelfSnapsIntoPlace(t *testing.T) {
	s := newScene(t, component.PointerMouse)
	item := s.addItem(t, 0, 0)
	s.addZone(t, component.ZoneShelf, 0, -2, 4, 1)

	from, fromY := s.screenOf(t, 0, 0)
	to, toY := s.screenOf(t, 0, -1.2)
	s.input.Drag(from, fromY, to, toY, 4)
	s.run(0)

	d := s.draggable(t, item)
	require.True(t, d.IsPlaced)
	assert.False(t, d.IsDragging)
	assert.Equal(t, 0.0, s.gravity(t, item))

	// The release frame's physics step lets the item drop slightly before
	// the snap target is taken.
	tr := s.transform(t, item)
	releasedY := tr.Y
	require.InDelta(t, -1.2, releasedY, 0.02)

	// Snap takes SnapDuration seconds.
	s.run(40)

	assert.InDelta(t, 0, tr.X, 1e-3)
	assert.InDelta(t, (releasedY-2)/2, tr.Y, 1e-3)
	assert.InDelta(t, PlacedDepth, tr.Z, 1e-3)
	assert.True(t, d.IsPlaced)
}

func TestPickUpPlacedItemUnplacesIt(t *testing.T) {
	s := newScene(t, component.PointerMouse)
	item := s.addItem(t, 0, 0)
	require.True(t, s.draggable(t, item).IsPlaced)

	sx, sy := s.screenOf(t, 0, 0)
	s.input.Press(sx, sy)
	s.step()

	assert.False(t, s.draggable(t, item).IsPlaced)
}

func TestPickChoosesItemNearestCamera(t *testing.T) {
	s := newScene(t, component.PointerMouse)
	back := s.addItem(t, 0, 0)
	front := s.addItem(t, 0.2, 0)
	s.transform(t, front).Z = -0.5

	sx, sy := s.screenOf(t, 0.1, 0)
	s.input.Press(sx, sy)
	s.step()

	assert.True(t, s.draggable(t, front).IsDragging)
	assert.False(t, s.draggable(t, back).IsDragging)
}

func TestTouchDragWorksLikeMouse(t *testing.T) {
	s := newScene(t, component.PointerTouch)
	item := s.addItem(t, 0, 0)

	from, fromY := s.screenOf(t, 0, 0)
	to, toY := s.screenOf(t, 2, 1)
	s.input.Press(from, fromY)
	s.input.Move(to, toY)
	s.run(0)

	tr := s.transform(t, item)
	assert.InDelta(t, 2, tr.X, 1e-6)
	assert.InDelta(t, 1, tr.Y, 1e-6)
	assert.Equal(t, 0.0, s.transform(t, s.camera).X)
}
