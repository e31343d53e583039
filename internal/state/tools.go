package state

// Palette lists the preset swatch colors offered by the toolbar.
var Palette = []Color{
	Black,
	{Red: 1, Alpha: 1},              // red
	{Blue: 1, Alpha: 1},             // blue
	{Green: 0.78, Alpha: 1},         // green
	{Red: 1, Green: 0.8, Alpha: 1},  // yellow
	{Red: 1, Green: 0.58, Alpha: 1}, // orange
	{Red: 0.69, Green: 0.32, Blue: 0.87, Alpha: 1}, // purple
	{Red: 1, Green: 0.18, Blue: 0.33, Alpha: 1},    // pink
	{Red: 0.64, Green: 0.52, Blue: 0.37, Alpha: 1}, // brown
	{Red: 0.56, Green: 0.56, Blue: 0.58, Alpha: 1}, // gray
}

// LineWidths lists the preset pen widths.
var LineWidths = []float64{1, 3, 5, 8, 12, 16, 20}

const (
	DefaultLineWidth = 5.0
	MinLineWidth     = 0.5
)

// ToolSettings is the tool selection a stroke is started with.
type ToolSettings struct {
	Color     Color
	LineWidth float64
	Eraser    bool
}

// Tools holds the current tool selection shared between the toolbar and
// the canvas. Capture reads it only when a stroke starts.
type Tools struct {
	current   ToolSettings
	observers []func(ToolSettings)
}

func NewTools() *Tools {
	return &Tools{current: ToolSettings{Color: Black, LineWidth: DefaultLineWidth}}
}

// Current returns the selection as a value.
func (t *Tools) Current() ToolSettings {
	return t.current
}

// SetColor selects a pen color and leaves eraser mode.
func (t *Tools) SetColor(c Color) {
	t.current.Color = c
	t.current.Eraser = false
	t.notify()
}

// SetLineWidth ignores widths below MinLineWidth.
func (t *Tools) SetLineWidth(w float64) {
	if w < MinLineWidth {
		return
	}
	t.current.LineWidth = w
	t.notify()
}

func (t *Tools) SetEraser(on bool) {
	t.current.Eraser = on
	t.notify()
}

// Subscribe registers fn to run after every change.
func (t *Tools) Subscribe(fn func(ToolSettings)) {
	t.observers = append(t.observers, fn)
}

func (t *Tools) notify() {
	for _, fn := range t.observers {
		fn(t.current)
	}
}
