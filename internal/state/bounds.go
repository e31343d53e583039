package state

import "math"

// EraserScale widens eraser strokes so they fully cover the ink they cross.
const EraserScale = 1.2

// Rect is an axis-aligned area of the canvas.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether the rect covers no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.Width, o.X+o.Width)
	maxY := math.Max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// EffectiveWidth is the width the stroke is painted with.
func (s Stroke) EffectiveWidth() float64 {
	if s.IsEraser {
		return s.LineWidth * EraserScale
	}
	return s.LineWidth
}

// Bounds returns the area painted by the stroke, including half the
// effective width on every side.
func (s Stroke) Bounds() Rect {
	if len(s.Points) == 0 {
		return Rect{}
	}
	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	pad := s.EffectiveWidth() / 2
	return Rect{
		X:      minX - pad,
		Y:      minY - pad,
		Width:  maxX - minX + 2*pad,
		Height: maxY - minY + 2*pad,
	}
}

// Bounds returns the area painted by all strokes.
func Bounds(strokes []Stroke) Rect {
	var r Rect
	for _, s := range strokes {
		r = r.Union(s.Bounds())
	}
	return r
}

// ExtentOf returns the canvas size needed to show every stroke, measured
// from the origin, plus padding.
func ExtentOf(strokes []Stroke, padding float64) Size {
	r := Bounds(strokes)
	if r.Empty() {
		return Size{}
	}
	return Size{
		Width:  math.Max(0, r.X+r.Width) + padding,
		Height: math.Max(0, r.Y+r.Height) + padding,
	}
}
