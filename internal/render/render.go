// Package render replays a stroke list as draw primitives.
//
// The actual drawing is left to a Surface. Pen strokes are painted with
// their own color; eraser strokes paint over earlier ink with the
// background color, so erasing never removes stroke data and later strokes
// can paint back over an erased area.
package render

import "MyDrawingPad/internal/state"

// Background is the color every frame starts from.
var Background = state.White

// Surface is a 2D drawing target. Polylines are stroked with round caps and
// round joins.
type Surface interface {
	Clear(size state.Size, c state.Color)
	StrokePolyline(points []state.Point, width float64, c state.Color)
	FillCircle(center state.Point, diameter float64, c state.Color)
}

// Frame draws one full frame: background, committed strokes in order, then
// the in-progress stroke, if any, on top.
func Frame(s Surface, size state.Size, strokes []state.Stroke, provisional *state.Stroke) {
	s.Clear(size, Background)
	for _, st := range strokes {
		Stroke(s, st)
	}
	if provisional != nil {
		Stroke(s, *provisional)
	}
}

// Stroke draws a single stroke.
func Stroke(s Surface, st state.Stroke) {
	if len(st.Points) == 0 {
		return
	}
	if st.IsEraser {
		eraser(s, st)
		return
	}
	if st.IsDot() {
		s.FillCircle(st.Points[0], st.LineWidth, st.Color)
		return
	}
	s.StrokePolyline(st.Points, st.LineWidth, st.Color)
}

func eraser(s Surface, st state.Stroke) {
	width := st.EffectiveWidth()
	if st.IsDot() {
		s.FillCircle(st.Points[0], width, Background)
		return
	}
	s.StrokePolyline(st.Points, width, Background)
	// Cover the gaps line joins leave at sharp turns.
	for _, p := range st.Points {
		s.FillCircle(p, width, Background)
	}
}
