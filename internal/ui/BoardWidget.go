package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"github.com/mbelkhode/drawingfun/internal/board"
	"github.com/mbelkhode/drawingfun/internal/export"
)

const SaveMessage = "Saved your drawing..."

// BoardWidget forwards pointer input and toolbar commands to a Rasterizer
// and paints whatever it renders.
type BoardWidget struct {
	widget.BaseWidget
	raster    *board.Rasterizer
	drawing   bool
	statusBar *widget.Label

	// OnPaintColor is called after the paint color changes.
	OnPaintColor func(color.Color)
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

func NewBoardWidget(r *board.Rasterizer) *BoardWidget {
	b := &BoardWidget{
		raster:    r,
		statusBar: widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Rasterizer() *board.Rasterizer { return b.raster }

func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// --- input ---

func (b *BoardWidget) press(pos fyne.Position) {
	if err := b.raster.BeginStroke(pos.X, pos.Y); err != nil {
		log.Printf("[BOARD] press ignored: %v", err)
		return
	}
	b.drawing = true
	b.Refresh()
}

func (b *BoardWidget) move(pos fyne.Position) {
	if !b.drawing {
		return
	}
	if err := b.raster.ExtendStroke(pos.X, pos.Y); err != nil {
		log.Printf("[BOARD] move ignored: %v", err)
		return
	}
	b.Refresh()
}

func (b *BoardWidget) release() {
	if !b.drawing {
		return
	}
	b.drawing = false
	if err := b.raster.EndStroke(); err != nil {
		log.Printf("[BOARD] release ignored: %v", err)
	}
	b.Refresh()
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.press(e.Position)
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.release()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.move(e.Position)
}

func (b *BoardWidget) DragEnd() {
	b.release()
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) { b.press(e.Position) }
func (b *BoardWidget) TouchUp(*mobile.TouchEvent)     { b.release() }
func (b *BoardWidget) TouchCancel(*mobile.TouchEvent) { b.release() }
func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

// --- commands ---

func (b *BoardWidget) SetBrushMode() {
	b.raster.SetBrushMode()
	b.SetStatus("Brush")
}

func (b *BoardWidget) SetEraseMode() {
	b.raster.SetEraseMode()
	b.SetStatus("Eraser")
}

func (b *BoardWidget) SetPaintColor(c color.Color) {
	b.raster.SetPaintColor(c)
	b.SetStatus("Brush")
	if b.OnPaintColor != nil {
		b.OnPaintColor(c)
	}
}

func (b *BoardWidget) ClearAll() {
	if err := b.raster.ClearAll(); err != nil {
		log.Printf("[BOARD] clear: %v", err)
		return
	}
	b.SetStatus("Cleared")
	b.Refresh()
}

// SaveToGallery encodes the drawing and hands it to g.
func (b *BoardWidget) SaveToGallery(ctx context.Context, g export.Gallery) error {
	img, err := b.raster.ExportImage()
	if err != nil {
		log.Printf("[BOARD] save: %v", err)
		b.SetStatus("Nothing to save yet")
		return err
	}
	path, err := g.Insert(ctx, img)
	if err != nil {
		log.Printf("[BOARD] save %s: %v", img.Name, err)
		b.SetStatus("Error saving drawing")
		return err
	}
	log.Printf("[BOARD] saved %s", path)
	b.SetStatus(SaveMessage)
	return nil
}

// ExportPDF writes the drawing as a one-page PDF and closes writer.
func (b *BoardWidget) ExportPDF(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("Error closing writer: %v", err)
		}
	}()

	img, err := b.raster.ExportImage()
	if err != nil {
		log.Printf("ExportPDF: %v", err)
		b.SetStatus("Nothing to export yet")
		return
	}
	if err := export.WritePDF(writer, img); err != nil {
		log.Printf("ExportPDF: %v", err)
		b.SetStatus("Error writing PDF")
		return
	}
	b.SetStatus(fmt.Sprintf("Exported %s", writer.URI().Name()))
}

// --- rendering ---

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.raster = canvas.NewRaster(b.frame)
	return r
}

func (b *BoardWidget) frame(w, h int) image.Image {
	img, err := b.raster.RenderFrame()
	if err != nil {
		if !errors.Is(err, board.ErrNotReady) {
			log.Printf("[BOARD] render: %v", err)
		}
		blank := image.NewRGBA(image.Rect(0, 0, 1, 1))
		blank.Set(0, 0, color.White)
		return blank
	}
	return img
}

// establish makes the surface match the widget. A new size discards the
// drawing.
func (b *BoardWidget) establish(size fyne.Size) {
	w, h := int(size.Width), int(size.Height)
	if cw, ch := b.raster.Size(); cw == w && ch == h {
		return
	}
	if err := b.raster.SetSize(w, h); err != nil {
		log.Printf("[BOARD] layout %dx%d: %v", w, h, err)
	}
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	raster *canvas.Raster
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.establish(size)
	r.raster.Resize(size)
}

func (r *boardWidgetRenderer) Refresh() {
	r.raster.Refresh()
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
