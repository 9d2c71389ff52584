package component

// Camera is an orthographic view centred on the owning entity's transform.
type Camera struct {
	PixelsPerUnit float64
	Zoom          float64
	// ViewportWidth and ViewportHeight are the screen size in pixels.
	ViewportWidth  float64
	ViewportHeight float64
}

var CameraComponent = NewComponent[Camera]()

// Background marks the sprite whose width bounds camera panning.
type Background struct {
	// Width is the world-space width. Zero derives it from the sprite.
	Width float64
}

var BackgroundComponent = NewComponent[Background]()
