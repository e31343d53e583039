package ui

import (
	"fmt"

	"MyDrawingPad/internal/session"
	"MyDrawingPad/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const dateLayout = "Jan 2, 2006 15:04"

// drawingsList shows the saved drawings, newest first. Tapping a row
// opens it; the trash button deletes after confirmation.
type drawingsList struct {
	sess     *session.Session
	win      fyne.Window
	list     *widget.List
	items    []state.SavedDrawing
	onOpen   func()
	onChange func()
	onError  func(error)
}

func newDrawingsList(sess *session.Session, win fyne.Window, onOpen, onChange func(), onError func(error)) *drawingsList {
	d := &drawingsList{sess: sess, win: win, onOpen: onOpen, onChange: onChange, onError: onError}
	d.list = widget.NewList(
		func() int { return len(d.items) },
		func() fyne.CanvasObject {
			name := widget.NewLabel("")
			name.TextStyle = fyne.TextStyle{Bold: true}
			return container.NewHBox(
				container.NewVBox(name, widget.NewLabel("")),
				layout.NewSpacer(),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
			)
		},
		func(id widget.ListItemID, o fyne.CanvasObject) {
			if id >= len(d.items) {
				return
			}
			item := d.items[id]
			row := o.(*fyne.Container)
			labels := row.Objects[0].(*fyne.Container)
			labels.Objects[0].(*widget.Label).SetText(item.Name)
			labels.Objects[1].(*widget.Label).SetText(item.Date.Local().Format(dateLayout))
			row.Objects[2].(*widget.Button).OnTapped = func() { d.confirmDelete(item) }
		},
	)
	d.list.OnSelected = func(id widget.ListItemID) {
		d.list.UnselectAll()
		if id < len(d.items) {
			d.sess.Open(d.items[id])
			d.onOpen()
		}
	}
	d.reload()
	return d
}

func (d *drawingsList) reload() {
	d.items = d.sess.Store().List()
	d.list.Refresh()
}

func (d *drawingsList) confirmDelete(item state.SavedDrawing) {
	msg := fmt.Sprintf("Delete %q? This cannot be undone.", item.Name)
	dialog.ShowConfirm("Delete drawing", msg, func(ok bool) {
		if !ok {
			return
		}
		if err := d.sess.Delete(item); err != nil {
			d.onError(err)
		}
		d.reload()
		d.onChange()
	}, d.win)
}

// showDrawingsDialog lists saved drawings in a modal dialog.
func showDrawingsDialog(sess *session.Session, win fyne.Window, onChange func(), onError func(error)) {
	var dlg dialog.Dialog
	list := newDrawingsList(sess, win, func() {
		onChange()
		if dlg != nil {
			dlg.Hide()
		}
	}, onChange, onError)

	var content fyne.CanvasObject = list.list
	if len(list.items) == 0 {
		content = container.NewCenter(widget.NewLabel("No saved drawings"))
	}
	dlg = dialog.NewCustom("Saved drawings", "Close", content, win)
	dlg.Resize(fyne.NewSize(420, 480))
	dlg.Show()
}
