package render

import (
	"image"
	"image/draw"
	"math"

	"MyDrawingPad/internal/state"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Raster is a Surface backed by an in-memory RGBA image. Scale maps canvas
// units to pixels, for high density displays.
type Raster struct {
	img     *image.RGBA
	scale   float64
	scanner *rasterx.ScannerGV
	stroker *rasterx.Stroker
	filler  *rasterx.Filler
}

var _ Surface = (*Raster)(nil)

// NewRaster allocates a surface of w×h pixels.
func NewRaster(w, h int, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	r := &Raster{scale: scale}
	r.resize(w, h)
	return r
}

func (r *Raster) resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.scanner = rasterx.NewScannerGV(w, h, r.img, r.img.Bounds())
	r.stroker = rasterx.NewStroker(w, h, r.scanner)
	r.filler = rasterx.NewFiller(w, h, r.scanner)
}

// Image returns the rendered pixels.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Clear resizes the image to the viewport when needed and fills it.
func (r *Raster) Clear(size state.Size, c state.Color) {
	w := int(math.Ceil(size.Width * r.scale))
	h := int(math.Ceil(size.Height * r.scale))
	if w > 0 && h > 0 && (w != r.img.Bounds().Dx() || h != r.img.Bounds().Dy()) {
		r.resize(w, h)
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) StrokePolyline(points []state.Point, width float64, c state.Color) {
	if len(points) == 0 {
		return
	}
	r.stroker.Clear()
	r.stroker.SetStroke(r.fixed(width), r.fixed(width), rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round)
	r.stroker.Start(r.point(points[0]))
	for _, p := range points[1:] {
		r.stroker.Line(r.point(p))
	}
	r.stroker.Stop(false)
	r.stroker.SetColor(c)
	r.stroker.Draw()
}

func (r *Raster) FillCircle(center state.Point, diameter float64, c state.Color) {
	if diameter <= 0 {
		return
	}
	r.filler.Clear()
	rasterx.AddCircle(center.X*r.scale, center.Y*r.scale, diameter*r.scale/2, r.filler)
	r.filler.SetColor(c)
	r.filler.Draw()
}

func (r *Raster) point(p state.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X*r.scale, p.Y*r.scale)
}

func (r *Raster) fixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * r.scale * 64)
}

// Rasterize renders a full frame into a new image.
func Rasterize(size state.Size, scale float64, strokes []state.Stroke, provisional *state.Stroke) *image.RGBA {
	r := NewRaster(int(math.Ceil(size.Width*scale)), int(math.Ceil(size.Height*scale)), scale)
	Frame(r, size, strokes, provisional)
	return r.Image()
}
