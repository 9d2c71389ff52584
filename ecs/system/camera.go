package system

import (
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
)

const (
	// PointerDepth is the distance in front of the camera at which pointer
	// positions are projected, so a grab offset does not depend on the
	// item's own depth.
	PointerDepth = 10.0
	// PlacedDepth is the Z every settled item is moved to.
	PlacedDepth = -1.0

	defaultPixelsPerUnit = 64.0
)

func pixelsPerUnit(cam *component.Camera) float64 {
	ppu := cam.PixelsPerUnit
	if ppu <= 0 {
		ppu = defaultPixelsPerUnit
	}
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return ppu * zoom
}

// ScreenToWorld projects a screen pixel onto the plane depth units in front
// of the camera. Screen Y grows downward, world Y upward.
func ScreenToWorld(cam *component.Camera, camT *component.Transform, sx, sy, depth float64) (x, y, z float64) {
	ppu := pixelsPerUnit(cam)
	x = camT.X + (sx-cam.ViewportWidth/2)/ppu
	y = camT.Y - (sy-cam.ViewportHeight/2)/ppu
	z = camT.Z + depth
	return x, y, z
}

// WorldToScreen is the inverse of ScreenToWorld for the X/Y plane.
func WorldToScreen(cam *component.Camera, camT *component.Transform, wx, wy float64) (sx, sy float64) {
	ppu := pixelsPerUnit(cam)
	sx = (wx-camT.X)*ppu + cam.ViewportWidth/2
	sy = -(wy-camT.Y)*ppu + cam.ViewportHeight/2
	return sx, sy
}

// ViewportWorldWidth is the horizontal extent of the view in world units.
func ViewportWorldWidth(cam *component.Camera) float64 {
	return cam.ViewportWidth / pixelsPerUnit(cam)
}

func findCamera(w *ecs.World) (ecs.Entity, *component.Camera, *component.Transform, bool) {
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	camT, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	return camEntity, cam, camT, true
}

func findPointer(w *ecs.World) (*component.Pointer, bool) {
	e, ok := w.First(component.PointerComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.PointerComponent.Kind())
}

// PointerWorld returns the current pointer projected at PointerDepth.
func PointerWorld(w *ecs.World) (x, y, z float64, ok bool) {
	ptr, ok := findPointer(w)
	if !ok {
		return 0, 0, 0, false
	}
	_, cam, camT, ok := findCamera(w)
	if !ok {
		return 0, 0, 0, false
	}
	x, y, z = ScreenToWorld(cam, camT, ptr.ScreenX, ptr.ScreenY, PointerDepth)
	return x, y, z, true
}
