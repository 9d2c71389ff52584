package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
	"golang.org/x/image/font/basicfont"
)

type hud struct {
	face text.Face
}

func newHUD() *hud {
	return &hud{face: text.NewGoXFace(basicfont.Face7x13)}
}

type hudStats struct {
	Items    int
	Placed   int
	Dragging int
	CameraX  float64
	Modality string
}

func collectHUDStats(w *ecs.World) hudStats {
	var s hudStats
	ecs.ForEach(w, component.DraggableComponent.Kind(), func(_ ecs.Entity, d *component.Draggable) {
		s.Items++
		if d.IsPlaced {
			s.Placed++
		}
		if d.IsDragging {
			s.Dragging++
		}
	})
	if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
		if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
			s.CameraX = t.X
		}
	}
	if e, ok := w.First(component.PointerComponent.Kind()); ok {
		if p, ok := ecs.Get(w, e, component.PointerComponent.Kind()); ok {
			s.Modality = p.Modality.String()
		}
	}
	return s
}

func (s hudStats) String() string {
	return fmt.Sprintf("placed %d/%d  dragging %d\ncamera x %.2f\ninput %s", s.Placed, s.Items, s.Dragging, s.CameraX, s.Modality)
}

func (h *hud) Draw(screen *ebiten.Image, w *ecs.World) {
	stats := collectHUDStats(w)

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(color.White)
	op.LineSpacing = 16
	text.Draw(screen, fmt.Sprintf("FPS %.1f\n%s", ebiten.ActualFPS(), stats), h.face, op)
}
