package state

import "time"

// Phase is the kind of a pointer event.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	}
	return "unknown"
}

// PointerEvent is one input sample from the platform.
type PointerEvent struct {
	Phase     Phase
	PointerID int
	Location  Point
	Time      time.Time
}

// CaptureState is the state of the stroke capture machine.
type CaptureState int

const (
	Idle CaptureState = iota
	Capturing
	Discarded
)

// StrokeSink receives committed strokes. *History satisfies it.
type StrokeSink interface {
	AddStroke(Stroke)
}

// Size is a viewport size in canvas units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether p lies inside a surface of this size. A zero
// size means the bounds are unknown and every point is accepted.
func (s Size) Contains(p Point) bool {
	if s.Width <= 0 || s.Height <= 0 {
		return true
	}
	return p.X >= 0 && p.Y >= 0 && p.X <= s.Width && p.Y <= s.Height
}

// Capture turns a stream of pointer events into committed strokes. Only one
// pointer is tracked at a time.
type Capture struct {
	tools *Tools
	sink  StrokeSink

	state       CaptureState
	pointer     int
	points      []Point
	provisional Stroke
	bounds      Size
}

func NewCapture(tools *Tools, sink StrokeSink) *Capture {
	return &Capture{tools: tools, sink: sink}
}

// SetBounds sets the capture surface size used to filter moves.
func (c *Capture) SetBounds(s Size) {
	c.bounds = s
}

// State returns the current machine state.
func (c *Capture) State() CaptureState {
	return c.state
}

// Provisional returns the in-progress stroke while capturing.
func (c *Capture) Provisional() (Stroke, bool) {
	if c.state != Capturing {
		return Stroke{}, false
	}
	return c.provisional, true
}

// Handle feeds one event to the machine and reports whether the visible
// state changed.
func (c *Capture) Handle(ev PointerEvent) bool {
	switch ev.Phase {
	case PhaseDown:
		return c.down(ev)
	case PhaseMove:
		return c.move(ev)
	case PhaseUp:
		return c.up(ev)
	case PhaseCancel:
		return c.cancel(ev)
	}
	return false
}

// down starts a stroke. A down from the tracked pointer while still
// capturing means its up was never delivered: the open stroke is
// committed first.
func (c *Capture) down(ev PointerEvent) bool {
	if c.state == Capturing {
		if ev.PointerID != c.pointer {
			return false
		}
		c.commit()
	}
	settings := c.tools.Current()
	c.state = Capturing
	c.pointer = ev.PointerID
	c.points = []Point{ev.Location}
	c.provisional = NewStroke(c.points, settings.Color, settings.LineWidth, settings.Eraser)
	return true
}

func (c *Capture) move(ev PointerEvent) bool {
	if c.state != Capturing || ev.PointerID != c.pointer {
		return false
	}
	if !c.bounds.Contains(ev.Location) {
		return false
	}
	c.points = append(c.points, ev.Location)
	c.provisional.Points = c.points
	return true
}

func (c *Capture) up(ev PointerEvent) bool {
	if c.state != Capturing || ev.PointerID != c.pointer {
		return false
	}
	if c.points[len(c.points)-1] != ev.Location {
		c.points = append(c.points, ev.Location)
	}
	c.commit()
	return true
}

func (c *Capture) commit() {
	finished := c.provisional
	finished.Points = append([]Point(nil), c.points...)
	c.reset(Idle)
	c.sink.AddStroke(finished)
}

func (c *Capture) cancel(ev PointerEvent) bool {
	if c.state != Capturing || ev.PointerID != c.pointer {
		return false
	}
	c.reset(Discarded)
	return true
}

func (c *Capture) reset(next CaptureState) {
	c.state = next
	c.points = nil
	c.provisional = Stroke{}
}
