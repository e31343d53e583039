package ui

import (
	"fmt"
	"log"

	"MyDrawingPad/internal/export"
	"MyDrawingPad/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// showExportDialog asks for a destination and writes strokes to it. The
// file extension picks PNG or PDF.
func showExportDialog(win fyne.Window, name string, strokes []state.Stroke, size state.Size) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if w == nil {
			return
		}
		if err := exportTo(w, strokes, size); err != nil {
			log.Printf("[EXPORT] %s: %v", w.URI(), err)
			dialog.ShowError(err, win)
			return
		}
		log.Printf("[EXPORT] wrote %s", w.URI())
	}, win)
	d.SetFileName(name + ".png")
	d.Show()
}

func exportTo(w fyne.URIWriteCloser, strokes []state.Stroke, size state.Size) error {
	f, err := export.FormatOf(w.URI().Name())
	if err != nil {
		w.Close()
		return err
	}
	if err := export.Write(w, f, strokes, size); err != nil {
		w.Close()
		return fmt.Errorf("export %s: %w", f, err)
	}
	return w.Close()
}
