package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image     *ebiten.Image
	Source    image.Rectangle
	UseSource bool
	// PixelsPerUnit maps image pixels to world units; zero means the
	// camera's value.
	PixelsPerUnit float64
}

var SpriteComponent = NewComponent[Sprite]()
