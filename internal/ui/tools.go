package ui

import (
	"context"
	"image/color"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/mbelkhode/drawingfun/internal/export"
)

const (
	EraseQuestion = "Erase the whole drawing?"
	saveTimeout   = 10 * time.Second
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)

	selected bool
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

// SetSelected marks the swatch as the active paint color.
func (s *colorSwatch) SetSelected(on bool) {
	if s.selected == on {
		return
	}
	s.selected = on
	s.Refresh()
}

func (s *colorSwatch) Selected() bool { return s.selected }

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	r := &swatchRenderer{
		swatch: s,
		fill:   canvas.NewRectangle(s.Color),
		border: canvas.NewRectangle(color.Transparent),
	}
	r.Refresh()
	return r
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

type swatchRenderer struct {
	swatch *colorSwatch
	fill   *canvas.Rectangle
	border *canvas.Rectangle
}

func (r *swatchRenderer) Layout(size fyne.Size) {
	for _, o := range r.Objects() {
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
}

func (r *swatchRenderer) MinSize() fyne.Size { return fyne.NewSize(32, 32) }

func (r *swatchRenderer) Refresh() {
	r.fill.FillColor = r.swatch.Color
	if r.swatch.selected {
		r.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
		r.border.StrokeWidth = 3
	} else {
		r.border.StrokeColor = color.Gray{Y: 150}
		r.border.StrokeWidth = 1
	}
	r.fill.Refresh()
	r.border.Refresh()
}

func (r *swatchRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.fill, r.border}
}

func (r *swatchRenderer) Destroy() {}

// swatchBar is a row of swatches with at most one selected.
type swatchBar struct {
	swatches []*colorSwatch
	box      *fyne.Container
}

func newSwatchBar(palette []color.Color, tapped func(color.Color)) *swatchBar {
	bar := &swatchBar{box: container.NewHBox()}
	for _, c := range palette {
		sw := newColorSwatch(c, tapped)
		bar.swatches = append(bar.swatches, sw)
		bar.box.Add(sw)
	}
	return bar
}

// Select highlights the swatch showing c. A color outside the palette, such
// as one from the advanced picker, leaves nothing highlighted.
func (bar *swatchBar) Select(c color.Color) {
	for _, sw := range bar.swatches {
		sw.SetSelected(sameColor(sw.Color, c))
	}
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// ShowColorSelection pops up the palette. Picking a swatch sets the paint
// color and closes the dialog; "More..." opens the full color picker.
func ShowColorSelection(win fyne.Window, board *BoardWidget, palette []color.Color) {
	var d dialog.Dialog
	pick := func(c color.Color) {
		board.SetPaintColor(c)
		d.Hide()
	}
	current := board.Rasterizer().LastColor()
	grid := container.NewGridWithColumns(4)
	for _, c := range palette {
		sw := newColorSwatch(c, pick)
		sw.SetSelected(sameColor(c, current))
		grid.Add(sw)
	}
	more := widget.NewButton("More...", func() {
		d.Hide()
		picker := dialog.NewColorPicker("Select a color", "Brush color", board.SetPaintColor, win)
		picker.Advanced = true
		picker.Show()
	})
	d = dialog.NewCustom("Select a color", "Cancel", container.NewVBox(grid, more), win)
	d.Show()
}

// ConfirmClear asks before erasing everything.
func ConfirmClear(win fyne.Window, board *BoardWidget) {
	dialog.ShowConfirm(EraseQuestion, "This cannot be undone.", func(ok bool) {
		if ok {
			board.ClearAll()
		}
	}, win)
}

func savePDF(win fyne.Window, board *BoardWidget) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			log.Printf("ExportPDF: %v", err)
			board.SetStatus("Error choosing file")
			return
		}
		if writer == nil {
			return
		}
		board.ExportPDF(writer)
	}, win)
	d.SetFileName("drawing.pdf")
	d.Show()
}

// --- The Main Toolbar ---
func NewToolbar(win fyne.Window, board *BoardWidget, palette []color.Color, gallery export.Gallery) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), board.SetBrushMode), // Brush
		widget.NewToolbarAction(theme.ContentClearIcon(), board.SetEraseMode),   // Eraser
		widget.NewToolbarAction(theme.ColorPaletteIcon(), func() {
			ShowColorSelection(win, board, palette)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			ConfirmClear(win, board)
		}),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			_ = board.SaveToGallery(ctx, gallery)
		}),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() {
			savePDF(win, board)
		}),
	)

	// --- Color Palette ---
	colors := newSwatchBar(palette, board.SetPaintColor)
	colors.Select(board.Rasterizer().LastColor())
	board.OnPaintColor = colors.Select

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colors.box,
		layout.NewSpacer(),
	)
}
