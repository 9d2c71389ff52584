package system

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
)

var (
	zoneOutline   = color.RGBA{G: 200, B: 80, A: 255}
	itemOutline   = color.RGBA{R: 240, G: 200, A: 255}
	groundOutline = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// RenderSystem draws sprites through the camera, back to front: by render
// layer, then by depth with larger Z further away.
type RenderSystem struct {
	camEntity ecs.Entity
	// Debug outlines zones and physics boxes.
	Debug bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Update does nothing; rendering happens in Draw.
func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	cam, ok := ecs.Get(w, r.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camT, ok := ecs.Get(w, r.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	ppu := pixelsPerUnit(cam)

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sortForDraw(w, entities)

	for _, e := range entities {
		if e == r.camEntity {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil {
			continue
		}

		img := s.Image
		if s.UseSource {
			if sub, ok := s.Image.SubImage(s.Source).(*ebiten.Image); ok {
				img = sub
			}
		}
		imgW := float64(img.Bounds().Dx())
		imgH := float64(img.Bounds().Dy())

		spritePPU := s.PixelsPerUnit
		if spritePPU <= 0 {
			spritePPU = cam.PixelsPerUnit
		}
		if spritePPU <= 0 {
			spritePPU = defaultPixelsPerUnit
		}
		unit := ppu / spritePPU

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		screenX, screenY := WorldToScreen(cam, camT, t.X, t.Y)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-imgW/2, -imgH/2)
		op.GeoM.Scale(sx*unit, sy*unit)
		// World rotation is counter-clockwise with Y up.
		op.GeoM.Rotate(-t.Rotation)
		op.GeoM.Translate(screenX, screenY)
		op.Filter = ebiten.FilterLinear

		screen.DrawImage(img, op)
	}

	if r.Debug {
		r.drawDebug(w, screen, cam, camT)
	}
}

func sortForDraw(w *ecs.World, entities []ecs.Entity) {
	layerOf := func(e ecs.Entity) int {
		if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return layer.Index
		}
		return 0
	}
	depthOf := func(e ecs.Entity) float64 {
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			return t.Z
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(entities[i]), layerOf(entities[j])
		if li != lj {
			return li < lj
		}
		zi, zj := depthOf(entities[i]), depthOf(entities[j])
		if zi != zj {
			return zi > zj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
}

func (r *RenderSystem) drawDebug(w *ecs.World, screen *ebiten.Image, cam *component.Camera, camT *component.Transform) {
	ppu := float32(pixelsPerUnit(cam))

	strokeBox := func(cx, cy, width, height float64, clr color.Color) {
		left, top := WorldToScreen(cam, camT, cx-width/2, cy+height/2)
		vector.StrokeRect(screen, float32(left), float32(top), float32(width)*ppu, float32(height)*ppu, 1, clr, false)
	}

	ecs.ForEach2(w, component.PlacementZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, z *component.PlacementZone, t *component.Transform) {
		strokeBox(t.X, t.Y, z.Width, z.Height, zoneOutline)
	})

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Sensor || b.Radius > 0 {
			return
		}
		clr := groundOutline
		if ecs.Has(w, e, component.ItemTagComponent.Kind()) {
			clr = itemOutline
		}
		strokeBox(t.X, t.Y, b.Width, b.Height, clr)
	})
}
