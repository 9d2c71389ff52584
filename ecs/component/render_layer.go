package component

// RenderLayer is used to sort draw order deterministically. Within a layer,
// entities further from the camera draw first.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
