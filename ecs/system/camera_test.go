package system

import (
	"testing"

	"github.com/milk9111/shelfsort/ecs/component"
	"github.com/stretchr/testify/assert"
)

func TestScreenToWorld(t *testing.T) {
	cam := &component.Camera{PixelsPerUnit: 64, Zoom: 1, ViewportWidth: 1280, ViewportHeight: 720}
	camT := &component.Transform{X: 2, Y: -1, Z: -10}

	x, y, z := ScreenToWorld(cam, camT, 640, 360, PointerDepth)
	assert.Equal(t, 2.0, x)
	assert.Equal(t, -1.0, y)
	assert.Equal(t, 0.0, z)

	x, y, _ = ScreenToWorld(cam, camT, 704, 296, PointerDepth)
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 0.0, y, "screen Y grows downward")
}

func TestWorldToScreenRoundTrip(t *testing.T) {
	cam := &component.Camera{PixelsPerUnit: 32, Zoom: 2, ViewportWidth: 800, ViewportHeight: 600}
	camT := &component.Transform{X: -3.5, Y: 4}

	for _, p := range [][2]float64{{0, 0}, {-3.5, 4}, {10, -7.25}} {
		sx, sy := WorldToScreen(cam, camT, p[0], p[1])
		x, y, _ := ScreenToWorld(cam, camT, sx, sy, 0)
		assert.InDelta(t, p[0], x, 1e-9)
		assert.InDelta(t, p[1], y, 1e-9)
	}
}

func TestViewportWorldWidth(t *testing.T) {
	assert.Equal(t, 20.0, ViewportWorldWidth(&component.Camera{PixelsPerUnit: 64, ViewportWidth: 1280}))
	assert.Equal(t, 10.0, ViewportWorldWidth(&component.Camera{PixelsPerUnit: 64, Zoom: 2, ViewportWidth: 1280}))
	assert.Equal(t, 20.0, ViewportWorldWidth(&component.Camera{ViewportWidth: 1280}), "zero PixelsPerUnit falls back to 64")
}
