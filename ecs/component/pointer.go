package component

type PointerModality int

const (
	PointerMouse PointerModality = iota
	PointerTouch
)

func (m PointerModality) String() string {
	if m == PointerTouch {
		return "touch"
	}
	return "mouse"
}

type PointerPhase int

const (
	PointerNone PointerPhase = iota
	PointerBegan
	PointerMoved
	PointerStationary
	PointerEnded
)

// Pointer is the sample of the primary pointer for the current frame, in
// screen pixels.
type Pointer struct {
	Modality PointerModality
	Phase    PointerPhase
	ScreenX  float64
	ScreenY  float64
}

// Held reports whether the pointer is down this frame.
func (p Pointer) Held() bool {
	return p.Phase == PointerBegan || p.Phase == PointerMoved || p.Phase == PointerStationary
}

var PointerComponent = NewComponent[Pointer]()
