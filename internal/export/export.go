// Package export writes drawings to PNG and PDF files.
package export

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"MyDrawingPad/internal/render"
	"MyDrawingPad/internal/state"
)

// Margin is added around the strokes when no page size is given.
const Margin = 20

var defaultSize = state.Size{Width: 800, Height: 600}

// Format is an output file type.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q", filepath.Ext(path))
}

// PageSize returns size when set, otherwise the extent of the strokes.
func PageSize(strokes []state.Stroke, size state.Size) state.Size {
	if size.Width > 0 && size.Height > 0 {
		return size
	}
	if ext := state.ExtentOf(strokes, Margin); ext.Width > 0 {
		return ext
	}
	return defaultSize
}

// Write renders strokes in the given format.
func Write(w io.Writer, f Format, strokes []state.Stroke, size state.Size) error {
	size = PageSize(strokes, size)
	switch f {
	case FormatPNG:
		img := render.Rasterize(size, 1, strokes, nil)
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("failed to encode png: %w", err)
		}
		return nil
	case FormatPDF:
		doc := NewPDF(size)
		render.Frame(doc, size, strokes, nil)
		return doc.WriteTo(w)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// File renders strokes to path, choosing the format by extension.
func File(path string, strokes []state.Stroke, size state.Size) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(out, f, strokes, size); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
