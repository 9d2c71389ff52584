package component

// ScrollController pans its camera horizontally from pointer drags.
type ScrollController struct {
	DesktopScrollSpeed float64
	MobileScrollSpeed  float64

	// Suspended is only written through SetDragging.
	Suspended bool

	LastMouseX float64
	LastMouseY float64
	LastTouchX float64
	LastTouchY float64

	// Computed once on the first update.
	ViewportWidth        float64
	BackgroundHalfExtent float64
	Initialized          bool
}

const (
	DefaultDesktopScrollSpeed = 0.5
	DefaultMobileScrollSpeed  = 0.3
)

// SetDragging suspends panning while an item drag owns the pointer.
func (s *ScrollController) SetDragging(dragging bool) {
	if s == nil {
		return
	}
	s.Suspended = dragging
}

// MinX and MaxX are the camera X clamp range. A background narrower than
// the viewport collapses the range to zero.
func (s *ScrollController) MinX() float64 {
	if s.BackgroundHalfExtent < s.ViewportWidth/2 {
		return 0
	}
	return -s.BackgroundHalfExtent + s.ViewportWidth/2
}

func (s *ScrollController) MaxX() float64 {
	if s.BackgroundHalfExtent < s.ViewportWidth/2 {
		return 0
	}
	return s.BackgroundHalfExtent - s.ViewportWidth/2
}

var ScrollControllerComponent = NewComponent[ScrollController]()
