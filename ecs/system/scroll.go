package system

import (
	"math"

	"github.com/milk9111/shelfsort/common"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
)

// ScrollSystem pans cameras that carry a ScrollController. Panning stops
// while an item is being dragged and resumes when it is released.
type ScrollSystem struct{}

func NewScrollSystem() *ScrollSystem {
	return &ScrollSystem{}
}

func (s *ScrollSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ptr, havePointer := findPointer(w)
	dt := w.DeltaTime()

	ecs.ForEach3(w, component.ScrollControllerComponent.Kind(), component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, sc *component.ScrollController, cam *component.Camera, t *component.Transform) {
		if !sc.Initialized {
			sc.ViewportWidth = ViewportWorldWidth(cam)
			sc.BackgroundHalfExtent = backgroundHalfExtent(w, cam)
			sc.Initialized = true
		}
		if sc.Suspended || !havePointer {
			return
		}

		switch ptr.Modality {
		case component.PointerTouch:
			switch ptr.Phase {
			case component.PointerBegan:
				sc.LastTouchX, sc.LastTouchY = ptr.ScreenX, ptr.ScreenY
			case component.PointerMoved:
				t.X = PanStep(t.X, ptr.ScreenX-sc.LastTouchX, sc.MobileScrollSpeed, dt, sc.MinX(), sc.MaxX())
				sc.LastTouchX, sc.LastTouchY = ptr.ScreenX, ptr.ScreenY
			}
		default:
			switch ptr.Phase {
			case component.PointerBegan:
				sc.LastMouseX, sc.LastMouseY = ptr.ScreenX, ptr.ScreenY
			case component.PointerMoved, component.PointerStationary:
				t.X = PanStep(t.X, ptr.ScreenX-sc.LastMouseX, sc.DesktopScrollSpeed, dt, sc.MinX(), sc.MaxX())
				sc.LastMouseX, sc.LastMouseY = ptr.ScreenX, ptr.ScreenY
			}
		}
	})
}

// PanStep moves the camera against the pointer's horizontal motion and
// clamps the result to [minX, maxX].
func PanStep(camX, deltaX, speed, dt, minX, maxX float64) float64 {
	return common.Clamp(camX-deltaX*speed*dt, minX, maxX)
}

// backgroundHalfExtent is half the world width of the background, taken
// from Background.Width or, when that is zero, from its sprite.
func backgroundHalfExtent(w *ecs.World, cam *component.Camera) float64 {
	e, ok := w.First(component.BackgroundComponent.Kind())
	if !ok {
		return 0
	}
	bg, _ := ecs.Get(w, e, component.BackgroundComponent.Kind())
	if bg != nil && bg.Width > 0 {
		return bg.Width / 2
	}

	s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok || s.Image == nil {
		return 0
	}
	width := float64(s.Image.Bounds().Dx())
	if s.UseSource {
		width = float64(s.Source.Dx())
	}
	ppu := s.PixelsPerUnit
	if ppu <= 0 {
		ppu = cam.PixelsPerUnit
	}
	if ppu <= 0 {
		ppu = defaultPixelsPerUnit
	}
	scale := 1.0
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && t.ScaleX != 0 {
		scale = math.Abs(t.ScaleX)
	}
	return width / ppu * scale / 2
}
