package system

import (
	"fmt"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/shelfsort/ecs"
	"github.com/milk9111/shelfsort/ecs/component"
)

// PointerSource produces one sample of the primary pointer per frame.
type PointerSource interface {
	Sample() component.Pointer
}

// NewPointerSource selects the input strategy by name: "mouse", "touch",
// or "auto" which picks touch on mobile targets.
func NewPointerSource(mode string) (PointerSource, error) {
	switch mode {
	case "mouse":
		return &MouseSource{}, nil
	case "touch":
		return &TouchSource{}, nil
	case "", "auto":
		if runtime.GOOS == "android" || runtime.GOOS == "ios" {
			return &TouchSource{}, nil
		}
		return &MouseSource{}, nil
	default:
		return nil, fmt.Errorf("unknown input mode %q", mode)
	}
}

// MouseSource reads the left mouse button.
type MouseSource struct {
	down         bool
	lastX, lastY int
}

func (m *MouseSource) Sample() component.Pointer {
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	phase := component.PointerNone
	switch {
	case pressed && !m.down:
		phase = component.PointerBegan
	case pressed && (x != m.lastX || y != m.lastY):
		phase = component.PointerMoved
	case pressed:
		phase = component.PointerStationary
	case m.down:
		phase = component.PointerEnded
	}

	m.down = pressed
	m.lastX, m.lastY = x, y
	return component.Pointer{
		Modality: component.PointerMouse,
		Phase:    phase,
		ScreenX:  float64(x),
		ScreenY:  float64(y),
	}
}

// TouchSource follows the first active touch only.
type TouchSource struct {
	id           ebiten.TouchID
	active       bool
	lastX, lastY int
	buf          []ebiten.TouchID
}

func (t *TouchSource) Sample() component.Pointer {
	out := component.Pointer{Modality: component.PointerTouch}

	if !t.active {
		t.buf = inpututil.AppendJustPressedTouchIDs(t.buf[:0])
		if len(t.buf) == 0 {
			out.ScreenX, out.ScreenY = float64(t.lastX), float64(t.lastY)
			return out
		}
		t.id = t.buf[0]
		t.active = true
		t.lastX, t.lastY = ebiten.TouchPosition(t.id)
		out.Phase = component.PointerBegan
		out.ScreenX, out.ScreenY = float64(t.lastX), float64(t.lastY)
		return out
	}

	if inpututil.IsTouchJustReleased(t.id) {
		t.active = false
		out.Phase = component.PointerEnded
		out.ScreenX, out.ScreenY = float64(t.lastX), float64(t.lastY)
		return out
	}

	x, y := ebiten.TouchPosition(t.id)
	out.Phase = component.PointerStationary
	if x != t.lastX || y != t.lastY {
		out.Phase = component.PointerMoved
	}
	t.lastX, t.lastY = x, y
	out.ScreenX, out.ScreenY = float64(x), float64(y)
	return out
}

// ScriptedSource replays queued samples, one per frame. When the queue is
// empty it reports an idle pointer at the last position.
type ScriptedSource struct {
	Modality component.PointerModality
	queue    []component.Pointer
	last     component.Pointer
}

func (s *ScriptedSource) push(phase component.PointerPhase, x, y float64) {
	s.queue = append(s.queue, component.Pointer{Modality: s.Modality, Phase: phase, ScreenX: x, ScreenY: y})
}

// Press queues a pointer going down at (x, y).
func (s *ScriptedSource) Press(x, y float64) { s.push(component.PointerBegan, x, y) }

// Move queues a held pointer at (x, y).
func (s *ScriptedSource) Move(x, y float64) { s.push(component.PointerMoved, x, y) }

// Hold queues a held pointer that did not move.
func (s *ScriptedSource) Hold(x, y float64) { s.push(component.PointerStationary, x, y) }

// Release queues the pointer going up at (x, y).
func (s *ScriptedSource) Release(x, y float64) { s.push(component.PointerEnded, x, y) }

// Drag queues a press, frames-2 evenly spaced moves ending on the target,
// and a release there.
func (s *ScriptedSource) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.Press(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.Release(toX, toY)
}

// Pending is the number of queued samples.
func (s *ScriptedSource) Pending() int { return len(s.queue) }

func (s *ScriptedSource) Sample() component.Pointer {
	if len(s.queue) == 0 {
		idle := s.last
		idle.Phase = component.PointerNone
		return idle
	}
	p := s.queue[0]
	s.queue = s.queue[1:]
	s.last = p
	return p
}

// InputSystem copies the source's sample into every Pointer component.
type InputSystem struct {
	source PointerSource
}

func NewInputSystem(source PointerSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.source == nil || w == nil {
		return
	}
	sample := i.source.Sample()
	ecs.ForEach(w, component.PointerComponent.Kind(), func(_ ecs.Entity, p *component.Pointer) {
		*p = sample
	})
}
