package ui

import (
	"image/color"
	"strconv"

	"MyDrawingPad/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	prefRed   = "tool.color.red"
	prefGreen = "tool.color.green"
	prefBlue  = "tool.color.blue"
	prefAlpha = "tool.color.alpha"
	prefWidth = "tool.width"
)

// colorSwatch is a tappable color square. The border thickens while the
// swatch matches the pen color.
type colorSwatch struct {
	widget.BaseWidget
	Color    state.Color
	OnTapped func(state.Color)

	selected bool
	border   *canvas.Rectangle
}

func newColorSwatch(c state.Color, tapped func(state.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	s.border = canvas.NewRectangle(color.Transparent)
	s.border.StrokeColor = color.Gray{Y: 150}
	s.applySelection()

	return widget.NewSimpleRenderer(container.NewStack(rect, s.border))
}

func (s *colorSwatch) setSelected(on bool) {
	if s.selected == on {
		return
	}
	s.selected = on
	if s.border != nil {
		s.applySelection()
		s.border.Refresh()
	}
}

func (s *colorSwatch) applySelection() {
	if s.selected {
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeWidth = 1
	}
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func widthLabel(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// loadToolPrefs restores the last pen color and width.
func loadToolPrefs(p fyne.Preferences, tools *state.Tools) {
	cur := tools.Current()
	c := state.Color{
		Red:   p.FloatWithFallback(prefRed, cur.Color.Red),
		Green: p.FloatWithFallback(prefGreen, cur.Color.Green),
		Blue:  p.FloatWithFallback(prefBlue, cur.Color.Blue),
		Alpha: p.FloatWithFallback(prefAlpha, cur.Color.Alpha),
	}
	tools.SetColor(c)
	tools.SetLineWidth(p.FloatWithFallback(prefWidth, cur.LineWidth))
}

func saveToolPrefs(p fyne.Preferences, t state.ToolSettings) {
	p.SetFloat(prefRed, t.Color.Red)
	p.SetFloat(prefGreen, t.Color.Green)
	p.SetFloat(prefBlue, t.Color.Blue)
	p.SetFloat(prefAlpha, t.Color.Alpha)
	p.SetFloat(prefWidth, t.LineWidth)
}

// NewToolPicker builds the color, width and eraser controls. They both
// drive and follow tools.
func NewToolPicker(tools *state.Tools, win fyne.Window) fyne.CanvasObject {
	swatches := make([]*colorSwatch, 0, len(state.Palette))
	colorBox := container.NewHBox()
	for _, c := range state.Palette {
		s := newColorSwatch(c, tools.SetColor)
		swatches = append(swatches, s)
		colorBox.Add(s)
	}

	custom := widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), func() {
		picker := dialog.NewColorPicker("Pen color", "Choose a custom color", func(c color.Color) {
			tools.SetColor(state.ColorOf(c))
		}, win)
		picker.Advanced = true
		picker.SetColor(tools.Current().Color)
		picker.Show()
	})

	options := make([]string, len(state.LineWidths))
	for i, w := range state.LineWidths {
		options[i] = widthLabel(w)
	}
	// syncing is set while the controls follow tools, so their change
	// callbacks do not feed the same value back.
	syncing := false

	width := widget.NewSelect(options, func(s string) {
		if syncing {
			return
		}
		if w, err := strconv.ParseFloat(s, 64); err == nil {
			tools.SetLineWidth(w)
		}
	})
	width.PlaceHolder = "Width"

	eraser := widget.NewCheck("Eraser", func(on bool) {
		if !syncing {
			tools.SetEraser(on)
		}
	})

	sync := func(t state.ToolSettings) {
		syncing = true
		defer func() { syncing = false }()
		for _, s := range swatches {
			s.setSelected(!t.Eraser && s.Color == t.Color)
		}
		width.SetSelected(widthLabel(t.LineWidth))
		eraser.SetChecked(t.Eraser)
	}
	tools.Subscribe(sync)
	sync(tools.Current())

	return container.NewHBox(
		colorBox,
		custom,
		widget.NewSeparator(),
		widget.NewLabel("Width:"),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(80, 35)), width),
		eraser,
	)
}
