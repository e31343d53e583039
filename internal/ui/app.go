// Package ui is the fyne front end: the author window with canvas,
// toolbar and saved drawings, and the read-only viewer window.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"MyDrawingPad/internal/config"
	"MyDrawingPad/internal/session"
	"MyDrawingPad/internal/state"
	"MyDrawingPad/internal/store"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const appName = "MyDrawingPad"

// authorWindow is the editable drawing window.
type authorWindow struct {
	sess  *session.Session
	tools *state.Tools
	win   fyne.Window

	board  *BoardWidget
	title  *widget.Label
	status *widget.Label

	undo, redo *widget.Button
}

// RunApp shows the author window and blocks until it is closed. shareLink
// is shown in the status bar when the live mirror is on.
func RunApp(sess *session.Session, tools *state.Tools, shareLink string) {
	a := app.NewWithID(config.AppID)
	prefs := a.Preferences()
	loadToolPrefs(prefs, tools)
	tools.Subscribe(func(t state.ToolSettings) { saveToolPrefs(prefs, t) })

	w := &authorWindow{
		sess:   sess,
		tools:  tools,
		win:    a.NewWindow(appName),
		board:  NewBoardWidget(sess.History(), tools),
		title:  widget.NewLabel(""),
		status: widget.NewLabel(""),
	}
	w.title.TextStyle = fyne.TextStyle{Bold: true}
	if shareLink != "" {
		w.status.SetText("Mirroring at " + shareLink)
	}

	w.win.SetContent(w.layout())
	w.win.Resize(fyne.NewSize(1024, 768))
	w.addShortcuts()

	sess.History().Subscribe(func(state.Snapshot) { w.refresh() })
	w.refresh()
	w.win.ShowAndRun()
}

func (w *authorWindow) layout() fyne.CanvasObject {
	h := w.sess.History()
	w.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() { h.Undo() })
	w.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() { h.Redo() })

	actions := container.NewHBox(
		widget.NewButtonWithIcon("New", theme.DocumentCreateIcon(), w.newDrawing),
		widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), w.openDrawings),
		widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), w.save),
		widget.NewButtonWithIcon("Export", theme.DownloadIcon(), w.export),
		widget.NewSeparator(),
		w.undo,
		w.redo,
		widget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), func() { h.Clear() }),
		layout.NewSpacer(),
		w.title,
	)
	top := container.NewVBox(actions, NewToolPicker(w.tools, w.win), widget.NewSeparator())
	return container.NewBorder(top, w.status, nil, nil, w.board)
}

func (w *authorWindow) addShortcuts() {
	h := w.sess.History()
	c := w.win.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { h.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { h.Redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { w.save() })
}

// refresh updates everything derived from the session.
func (w *authorWindow) refresh() {
	title := w.sess.Title()
	if w.sess.HasUnsavedChanges() {
		title += " *"
	}
	w.title.SetText(title)
	w.win.SetTitle(appName + " - " + title)

	h := w.sess.History()
	setEnabled(w.undo, h.CanUndo())
	setEnabled(w.redo, h.CanRedo())
}

func setEnabled(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}

func (w *authorWindow) setStatus(s string) {
	w.status.SetText(s)
}

func (w *authorWindow) reportError(err error) {
	w.setStatus("Error: " + err.Error())
}

func (w *authorWindow) newDrawing() {
	w.sess.New()
	w.refresh()
}

func (w *authorWindow) openDrawings() {
	showDrawingsDialog(w.sess, w.win, w.refresh, w.reportError)
}

// save overwrites the open drawing after confirmation, or asks for a
// name for a new one.
func (w *authorWindow) save() {
	if w.sess.Overwrites() {
		msg := fmt.Sprintf("Overwrite %q with the current canvas?", w.sess.SuggestedName())
		dialog.ShowConfirm("Save drawing", msg, func(ok bool) {
			if ok {
				w.commitSave("")
			}
		}, w.win)
		return
	}

	name := widget.NewEntry()
	name.SetPlaceHolder("Drawing name")
	name.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return store.ErrEmptyName
		}
		return nil
	}
	items := []*widget.FormItem{widget.NewFormItem("Name", name)}
	dialog.ShowForm("Save drawing", "Save", "Cancel", items, func(ok bool) {
		if ok {
			w.commitSave(strings.TrimSpace(name.Text))
		}
	}, w.win)
}

func (w *authorWindow) commitSave(name string) {
	d, err := w.sess.Save(name)
	switch {
	case errors.Is(err, store.ErrEmptyName):
		dialog.ShowError(err, w.win)
		return
	case err != nil:
		w.reportError(err)
	default:
		w.setStatus(fmt.Sprintf("Saved %q", d.Name))
	}
	w.refresh()
}

func (w *authorWindow) export() {
	name := w.sess.SuggestedName()
	if name == "" {
		name = "drawing"
	}
	showExportDialog(w.win, name, w.sess.History().Strokes(), w.board.CanvasSize())
}

// RunViewer shows a read-only window following a mirror and blocks until
// it is closed. attach is called once with callbacks that are safe to use
// from any goroutine.
func RunViewer(link string, attach func(show func(state.Snapshot), status func(string))) {
	a := app.NewWithID(config.AppID)
	win := a.NewWindow(appName + " - " + link)

	board := NewViewerWidget()
	status := widget.NewLabel("Connecting to " + link)
	win.SetContent(container.NewBorder(nil, status, nil, nil, board))
	win.Resize(fyne.NewSize(1024, 768))

	attach(
		func(s state.Snapshot) { fyne.Do(func() { board.ShowSnapshot(s) }) },
		func(s string) { fyne.Do(func() { status.SetText(s) }) },
	)
	win.ShowAndRun()
}
