package state

import (
	"image/color"
	"time"

	"github.com/google/uuid"
)

// Point is a location in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Color holds normalized RGBA components in [0,1], not premultiplied.
type Color struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

var (
	Black = Color{Alpha: 1}
	White = Color{Red: 1, Green: 1, Blue: 1, Alpha: 1}
)

var _ color.Color = Color{}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{
		R: unit8(c.Red),
		G: unit8(c.Green),
		B: unit8(c.Blue),
		A: unit8(c.Alpha),
	}.RGBA()
}

// ColorOf converts any color.Color (a swatch, a picker result) to a Color.
func ColorOf(c color.Color) Color {
	if own, ok := c.(Color); ok {
		return own
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		Red:   float64(n.R) / 255,
		Green: float64(n.G) / 255,
		Blue:  float64(n.B) / 255,
		Alpha: float64(n.A) / 255,
	}
}

func unit8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Stroke is one pen or eraser gesture. Once committed to a document its
// points are never modified again.
type Stroke struct {
	ID        uuid.UUID `json:"id"`
	Points    []Point   `json:"points"`
	Color     Color     `json:"color"`
	LineWidth float64   `json:"lineWidth"`
	IsEraser  bool      `json:"isEraser"`
}

// NewStroke builds a stroke with a fresh ID.
func NewStroke(points []Point, c Color, width float64, eraser bool) Stroke {
	return Stroke{
		ID:        uuid.New(),
		Points:    points,
		Color:     c,
		LineWidth: width,
		IsEraser:  eraser,
	}
}

// IsDot reports whether the stroke renders as a single filled circle.
func (s Stroke) IsDot() bool {
	return len(s.Points) == 1
}

// SavedDrawing is a named, timestamped copy of a document.
type SavedDrawing struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Date  time.Time `json:"date"`
	Paths []Stroke  `json:"paths"`
}

// CloneStrokes copies the slice. Stroke values are shared, which is safe
// because committed strokes are immutable.
func CloneStrokes(strokes []Stroke) []Stroke {
	out := make([]Stroke, len(strokes))
	copy(out, strokes)
	return out
}
