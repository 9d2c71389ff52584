package component

// Draggable is the per-item pick-up/place state plus its tunables.
//
// The item is idle while placed, dragging while IsDragging, settling while a
// position tween runs after a snap, and falling when released with IsPlaced
// false.
type Draggable struct {
	IsDragging bool
	IsPlaced   bool

	// Offset is the item position minus the pointer world position at
	// pick-up.
	OffsetX float64
	OffsetY float64
	OffsetZ float64

	OriginalScaleX float64
	OriginalScaleY float64
	ScaleCaptured  bool

	PlaceOffset      float64
	SnapDuration     float64
	SnapRadius       float64
	PickUpScale      float64
	ScaleDuration    float64
	FallGravityScale float64

	PickUpClip string
	DropClip   string
}

var DraggableComponent = NewComponent[Draggable]()

// Default tunables for a 64 pixels-per-unit scene.
const (
	DefaultPlaceOffset      = 0.5
	DefaultSnapDuration     = 0.5
	DefaultSnapRadius       = 0.8
	DefaultPickUpScale      = 1.2
	DefaultScaleDuration    = 0.2
	DefaultFallGravityScale = 2.0
)

// NewDraggable returns a placed, idle item with default tunables.
func NewDraggable() *Draggable {
	return &Draggable{
		IsPlaced:         true,
		PlaceOffset:      DefaultPlaceOffset,
		SnapDuration:     DefaultSnapDuration,
		SnapRadius:       DefaultSnapRadius,
		PickUpScale:      DefaultPickUpScale,
		ScaleDuration:    DefaultScaleDuration,
		FallGravityScale: DefaultFallGravityScale,
		PickUpClip:       "pick_up",
		DropClip:         "drop",
	}
}
