package ui

import (
	"context"
	"image/color"
	"os"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbelkhode/drawingfun/internal/board"
	"github.com/mbelkhode/drawingfun/internal/export"
	"github.com/mbelkhode/drawingfun/internal/state"
)

func newTestBoard(t *testing.T) (*BoardWidget, *board.Rasterizer) {
	t.Helper()
	test.NewTempApp(t)
	r := board.New()
	b := NewBoardWidget(r)
	b.Resize(fyne.NewSize(200, 200))
	return b, r
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestBoardWidgetLayoutEstablishesSurface(t *testing.T) {
	_, r := newTestBoard(t)

	w, h := r.Size()
	assert.Equal(t, 200, w)
	assert.Equal(t, 200, h)
}

func TestBoardWidgetDrawsStroke(t *testing.T) {
	b, r := newTestBoard(t)

	b.MouseDown(mouse(20, 100))
	b.Dragged(drag(60, 100))
	b.Dragged(drag(100, 100))
	b.Dragged(drag(140, 100))
	require.Len(t, r.Segments(), 4)

	b.MouseUp(mouse(140, 100))
	b.DragEnd()
	assert.Nil(t, r.Segments())

	snap, err := r.Snapshot()
	require.NoError(t, err)
	c := snap.RGBAAt(80, 100)
	assert.True(t, c.G > 240 && c.R < 15, "stroke pixel %v", c)
}

func touch(x, y float32) *mobile.TouchEvent {
	return &mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestBoardWidgetTouchStroke(t *testing.T) {
	b, r := newTestBoard(t)

	b.TouchDown(touch(20, 60))
	b.Dragged(drag(60, 60))
	b.Dragged(drag(100, 60))
	require.Len(t, r.Segments(), 3)

	b.TouchUp(touch(100, 60))
	b.DragEnd()
	assert.Nil(t, r.Segments())

	snap, err := r.Snapshot()
	require.NoError(t, err)
	c := snap.RGBAAt(50, 60)
	assert.True(t, c.G > 240 && c.R < 15, "stroke pixel %v", c)

	// A canceled touch still commits what was drawn and ends the stroke.
	b.TouchDown(touch(20, 150))
	b.Dragged(drag(80, 150))
	b.TouchCancel(touch(80, 150))
	assert.Nil(t, r.Segments())
	b.Dragged(drag(120, 150))
	assert.Nil(t, r.Segments())

	snap, err = r.Snapshot()
	require.NoError(t, err)
	c = snap.RGBAAt(40, 150)
	assert.True(t, c.G > 240 && c.R < 15, "canceled stroke pixel %v", c)
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, snap.RGBAAt(120, 150))
}

func TestBoardWidgetTapLeavesDot(t *testing.T) {
	b, r := newTestBoard(t)

	b.TouchDown(touch(50, 50))
	b.TouchUp(touch(50, 50))

	snap, err := r.Snapshot()
	require.NoError(t, err)
	c := snap.RGBAAt(50, 50)
	assert.True(t, c.G > 240 && c.R < 15, "dot pixel %v", c)
}

func TestBoardWidgetIgnoresDragWithoutPress(t *testing.T) {
	b, r := newTestBoard(t)

	b.Dragged(drag(60, 60))
	b.DragEnd()
	assert.Nil(t, r.Segments())
}

func TestBoardWidgetCommands(t *testing.T) {
	b, r := newTestBoard(t)
	red := color.NRGBA{R: 255, A: 255}

	b.SetPaintColor(red)
	b.SetEraseMode()
	assert.Equal(t, state.ModeErase, r.Style().Mode)

	b.ClearAll()
	assert.Equal(t, state.BrushStyle(red), r.Style())
}

func TestBoardWidgetSaveToGallery(t *testing.T) {
	b, _ := newTestBoard(t)
	g, err := export.NewDirGallery(t.TempDir(), 0)
	require.NoError(t, err)

	require.NoError(t, b.SaveToGallery(context.Background(), g))

	entries, err := os.ReadDir(g.Dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	require.Len(t, names, 1)
	assert.Regexp(t, `^DrawingFun_\d{8}_\d{4}\.jpg$`, names[0])
}

func TestToolbarHighlightsPaintColor(t *testing.T) {
	b, r := newTestBoard(t)
	win := test.NewTempWindow(t, b)
	g, err := export.NewDirGallery(t.TempDir(), 0)
	require.NoError(t, err)

	red := color.NRGBA{R: 255, A: 255}
	palette := []color.Color{red, state.DefaultColor, color.Black}
	tb := NewToolbar(win, b, palette, g)

	var swatches []*colorSwatch
	for _, o := range tb.(*fyne.Container).Objects {
		if box, ok := o.(*fyne.Container); ok {
			for _, child := range box.Objects {
				if sw, ok := child.(*colorSwatch); ok {
					swatches = append(swatches, sw)
				}
			}
		}
	}
	require.Len(t, swatches, 3)

	selected := func() []bool {
		return []bool{swatches[0].Selected(), swatches[1].Selected(), swatches[2].Selected()}
	}
	assert.Equal(t, []bool{false, true, false}, selected())

	test.Tap(swatches[0])
	assert.Equal(t, red, r.LastColor())
	assert.Equal(t, []bool{true, false, false}, selected())

	// Colors from the advanced picker are not in the bar.
	b.SetPaintColor(color.NRGBA{R: 12, G: 34, B: 56, A: 255})
	assert.Equal(t, []bool{false, false, false}, selected())

	b.SetPaintColor(color.Gray{Y: 0})
	assert.Equal(t, []bool{false, false, true}, selected())
}
