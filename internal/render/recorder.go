package render

import "MyDrawingPad/internal/state"

// Kind names a draw primitive.
type Kind string

const (
	KindClear    Kind = "clear"
	KindPolyline Kind = "stroke-polyline"
	KindCircle   Kind = "fill-circle"
)

// Primitive is one recorded draw call.
type Primitive struct {
	Kind   Kind          `json:"kind"`
	Size   state.Size    `json:"size,omitempty"`
	Points []state.Point `json:"points,omitempty"`
	Width  float64       `json:"width,omitempty"`
	Color  state.Color   `json:"color"`
}

// Recorder is a Surface that keeps the primitives it receives.
type Recorder struct {
	Primitives []Primitive
}

var _ Surface = (*Recorder)(nil)

func (r *Recorder) Clear(size state.Size, c state.Color) {
	r.Primitives = append(r.Primitives, Primitive{Kind: KindClear, Size: size, Color: c})
}

func (r *Recorder) StrokePolyline(points []state.Point, width float64, c state.Color) {
	pts := append([]state.Point(nil), points...)
	r.Primitives = append(r.Primitives, Primitive{Kind: KindPolyline, Points: pts, Width: width, Color: c})
}

func (r *Recorder) FillCircle(center state.Point, diameter float64, c state.Color) {
	r.Primitives = append(r.Primitives, Primitive{Kind: KindCircle, Points: []state.Point{center}, Width: diameter, Color: c})
}

// Replay sends the recorded primitives to another surface.
func (r *Recorder) Replay(s Surface) {
	for _, p := range r.Primitives {
		switch p.Kind {
		case KindClear:
			s.Clear(p.Size, p.Color)
		case KindPolyline:
			s.StrokePolyline(p.Points, p.Width, p.Color)
		case KindCircle:
			s.FillCircle(p.Points[0], p.Width, p.Color)
		}
	}
}
