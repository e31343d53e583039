package export

import (
	"fmt"
	"io"

	"MyDrawingPad/internal/render"
	"MyDrawingPad/internal/state"

	"github.com/jung-kurt/gofpdf"
)

// PDF is a render.Surface writing vector primitives to a single page.
// Canvas units map 1:1 to points.
type PDF struct {
	doc *gofpdf.Fpdf
}

var _ render.Surface = (*PDF)(nil)

// NewPDF starts a document whose page matches size.
func NewPDF(size state.Size) *PDF {
	w, h := size.Width, size.Height
	if w <= 0 || h <= 0 {
		w, h = defaultSize.Width, defaultSize.Height
	}
	// Portrait keeps Wd and Ht as given; landscape would swap them.
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetLineCapStyle("round")
	doc.SetLineJoinStyle("round")
	return &PDF{doc: doc}
}

func (p *PDF) Clear(size state.Size, c state.Color) {
	p.setFill(c)
	w, h := p.doc.GetPageSize()
	p.doc.Rect(0, 0, w, h, "F")
}

func (p *PDF) StrokePolyline(points []state.Point, width float64, c state.Color) {
	if len(points) == 0 {
		return
	}
	r, g, b := rgb255(c)
	p.doc.SetDrawColor(r, g, b)
	p.doc.SetAlpha(c.Alpha, "Normal")
	p.doc.SetLineWidth(width)
	p.doc.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		p.doc.LineTo(pt.X, pt.Y)
	}
	p.doc.DrawPath("D")
}

func (p *PDF) FillCircle(center state.Point, diameter float64, c state.Color) {
	p.setFill(c)
	p.doc.Circle(center.X, center.Y, diameter/2, "F")
}

func (p *PDF) setFill(c state.Color) {
	r, g, b := rgb255(c)
	p.doc.SetFillColor(r, g, b)
	p.doc.SetAlpha(c.Alpha, "Normal")
}

// WriteTo finishes the document.
func (p *PDF) WriteTo(w io.Writer) error {
	if err := p.doc.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func rgb255(c state.Color) (int, int, int) {
	r, g, b, _ := state.Color{Red: c.Red, Green: c.Green, Blue: c.Blue, Alpha: 1}.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}
