package ui

import (
	"image"
	"sync"

	"MyDrawingPad/internal/render"
	"MyDrawingPad/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// mousePointer is the pointer ID used for mouse and single-touch input.
const mousePointer = 0

// BoardWidget is the drawing surface. In author mode pointer input feeds
// the capture state machine and committed strokes go to the history. In
// viewer mode it only shows snapshots pushed from a mirror.
type BoardWidget struct {
	widget.BaseWidget

	history *state.History
	capture *state.Capture

	mu       sync.RWMutex
	snapshot []state.Stroke // viewer mode only
	readOnly bool

	lastDrag fyne.Position
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

// NewBoardWidget creates an editable board over history.
func NewBoardWidget(history *state.History, tools *state.Tools) *BoardWidget {
	b := &BoardWidget{
		history: history,
		capture: state.NewCapture(tools, history),
	}
	b.ExtendBaseWidget(b)
	history.Subscribe(func(state.Snapshot) { b.Refresh() })
	return b
}

// NewViewerWidget creates a board that only displays pushed snapshots.
func NewViewerWidget() *BoardWidget {
	b := &BoardWidget{readOnly: true}
	b.ExtendBaseWidget(b)
	return b
}

// ShowSnapshot replaces what a viewer board displays.
func (b *BoardWidget) ShowSnapshot(s state.Snapshot) {
	b.mu.Lock()
	b.snapshot = s.Strokes
	b.mu.Unlock()
	b.Refresh()
}

// CanvasSize is the current viewport in canvas units.
func (b *BoardWidget) CanvasSize() state.Size {
	s := b.Size()
	return state.Size{Width: float64(s.Width), Height: float64(s.Height)}
}

func (b *BoardWidget) handle(phase state.Phase, pos fyne.Position) {
	if b.readOnly {
		return
	}
	b.capture.SetBounds(b.CanvasSize())
	ev := state.PointerEvent{
		Phase:     phase,
		PointerID: mousePointer,
		Location:  state.Point{X: float64(pos.X), Y: float64(pos.Y)},
	}
	if b.capture.Handle(ev) {
		b.Refresh()
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.handle(state.PhaseDown, e.Position)
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.handle(state.PhaseUp, e.Position)
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.lastDrag = e.Position
	b.handle(state.PhaseMove, e.Position)
}

// DragEnd commits the stroke at the last dragged position. Releasing over
// another widget or outside the window delivers no MouseUp to the board.
// A MouseUp arriving afterwards finds the capture idle and is ignored.
func (b *BoardWidget) DragEnd() {
	b.handle(state.PhaseUp, b.lastDrag)
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.handle(state.PhaseDown, e.Position)
}

func (b *BoardWidget) TouchUp(e *mobile.TouchEvent) {
	b.handle(state.PhaseUp, e.Position)
}

func (b *BoardWidget) TouchCancel(e *mobile.TouchEvent) {
	b.handle(state.PhaseCancel, e.Position)
}

// frame returns the committed strokes and the live stroke, if any.
func (b *BoardWidget) frame() ([]state.Stroke, *state.Stroke) {
	if b.readOnly {
		b.mu.RLock()
		defer b.mu.RUnlock()
		return b.snapshot, nil
	}
	strokes := b.history.Strokes()
	if p, ok := b.capture.Provisional(); ok {
		return strokes, &p
	}
	return strokes, nil
}

func (b *BoardWidget) draw(w, h int) image.Image {
	size := b.CanvasSize()
	scale := 1.0
	if size.Width > 0 {
		scale = float64(w) / size.Width
	}
	strokes, provisional := b.frame()
	return render.Rasterize(size, scale, strokes, provisional)
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.raster = canvas.NewRaster(b.draw)
	return r
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	raster *canvas.Raster
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *boardWidgetRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
