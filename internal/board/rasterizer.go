// Package board turns pointer strokes into pixels on a fixed-size surface.
//
// A Rasterizer owns one surface and at most one stroke in progress. Input
// arrives as Begin/Extend/End calls, mode and color changes arrive from the
// toolbar, and the harness pulls pixels back out with RenderFrame or
// ExportImage. Every operation that needs a surface or a live stroke returns
// ErrNotReady, logs it, and leaves the surface untouched.
package board

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gg"

	"github.com/mbelkhode/drawingfun/internal/export"
	"github.com/mbelkhode/drawingfun/internal/state"
)

// ErrNotReady is returned when the surface or the stroke an operation needs
// does not exist yet.
var ErrNotReady = errors.New("board: not ready")

type Rasterizer struct {
	mu sync.RWMutex

	width, height int
	pixmap        *gg.Pixmap
	surface       *gg.Context

	stroke    state.Stroke
	style     state.Style
	lastColor color.Color

	opts options
}

func New(opts ...Option) *Rasterizer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Rasterizer{
		style:     state.BrushStyle(state.DefaultColor),
		lastColor: state.DefaultColor,
		opts:      o,
	}
}

// SetSize creates a fresh white surface of w×h, dropping the old surface and
// any stroke in progress.
func (r *Rasterizer) SetSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return r.notReady("SetSize", fmt.Errorf("%w: invalid size %dx%d", ErrNotReady, w, h))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surface != nil {
		_ = r.surface.Close()
	}
	r.pixmap = gg.NewPixmap(w, h)
	r.pixmap.Clear(gg.FromColor(state.Background))
	r.surface = gg.NewContext(w, h, gg.WithPixmap(r.pixmap))
	r.width, r.height = w, h
	r.stroke.Reset()

	Logger().Debug("surface created", "width", w, "height", h)
	return nil
}

func (r *Rasterizer) Size() (int, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.width, r.height
}

func (r *Rasterizer) BeginStroke(x, y float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surface == nil {
		return r.notReady("BeginStroke", ErrNotReady)
	}
	r.stroke.Begin(state.Point{X: x, Y: y})
	Logger().Debug("stroke started", "stroke", r.stroke.ID, "x", x, "y", y)
	return nil
}

func (r *Rasterizer) ExtendStroke(x, y float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surface == nil || !r.stroke.Live() {
		return r.notReady("ExtendStroke", ErrNotReady)
	}
	r.stroke.Extend(state.Point{X: x, Y: y})
	return nil
}

// EndStroke commits the stroke in progress to the surface with the current
// style.
func (r *Rasterizer) EndStroke() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surface == nil || !r.stroke.Live() {
		return r.notReady("EndStroke", ErrNotReady)
	}
	id := r.stroke.ID
	path := r.stroke.Finish()
	if err := paintPath(r.surface, path, r.style); err != nil {
		return fmt.Errorf("commit stroke %s: %w", id, err)
	}
	Logger().Info("stroke committed", "stroke", id, "segments", len(path), "mode", r.style.Mode)
	return nil
}

func (r *Rasterizer) SetBrushMode() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.style = state.BrushStyle(r.lastColor)
}

// SetEraseMode paints future strokes in the background color. The last
// paint color is kept for SetBrushMode.
func (r *Rasterizer) SetEraseMode() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.style = state.EraseStyle()
}

func (r *Rasterizer) SetPaintColor(c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastColor = c
	r.style = state.BrushStyle(c)
}

// ClearAll blanks the surface and switches back to brush mode with the last
// paint color, even when the eraser was active.
func (r *Rasterizer) ClearAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.surface == nil {
		return r.notReady("ClearAll", ErrNotReady)
	}
	r.surface.ClearWithColor(gg.FromColor(state.Background))
	r.style = state.BrushStyle(r.lastColor)
	Logger().Debug("surface cleared")
	return nil
}

func (r *Rasterizer) Style() state.Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.style
}

func (r *Rasterizer) LastColor() color.Color {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastColor
}

// StrokeID identifies the stroke in progress in log lines and commit
// errors. It is empty when idle.
func (r *Rasterizer) StrokeID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.stroke.Live() {
		return ""
	}
	return r.stroke.ID
}

// Segments returns the path of the stroke in progress, or nil when idle.
func (r *Rasterizer) Segments() []state.Segment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.stroke.Live() {
		return nil
	}
	return r.stroke.Segments()
}

// Snapshot returns a copy of the surface without the stroke in progress.
func (r *Rasterizer) Snapshot() (*image.RGBA, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.pixmap == nil {
		return nil, r.notReady("Snapshot", ErrNotReady)
	}
	return r.pixmap.ToImage(), nil
}

// RenderFrame returns the surface with the stroke in progress drawn over it.
// The surface itself is not modified.
func (r *Rasterizer) RenderFrame() (*image.RGBA, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.pixmap == nil {
		return nil, r.notReady("RenderFrame", ErrNotReady)
	}
	frame := gg.NewPixmap(r.width, r.height)
	copy(frame.Data(), r.pixmap.Data())
	if r.stroke.Live() {
		dc := gg.NewContext(r.width, r.height, gg.WithPixmap(frame))
		defer dc.Close()
		if err := paintPath(dc, r.stroke.Segments(), r.style); err != nil {
			return nil, fmt.Errorf("render stroke %s: %w", r.stroke.ID, err)
		}
	}
	return frame.ToImage(), nil
}

// ExportImage encodes the surface as a JPEG named after the app and the
// current time. The stroke in progress is not included.
func (r *Rasterizer) ExportImage() (export.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.surface == nil {
		return export.Image{}, r.notReady("ExportImage", ErrNotReady)
	}
	img, err := export.EncodeJPEG(r.surface, r.opts.appName, r.opts.now(), r.opts.quality)
	if err != nil {
		return export.Image{}, err
	}
	Logger().Info("drawing exported", "name", img.Name, "bytes", len(img.Data))
	return img, nil
}

func (r *Rasterizer) notReady(op string, err error) error {
	Logger().Warn(op+": canvas not ready", "err", err)
	return err
}

func paintPath(dc *gg.Context, path []state.Segment, st state.Style) error {
	if len(path) == 0 {
		return nil
	}
	dc.SetColor(st.Color)
	if p, ok := singlePoint(path); ok {
		// A tap: a zero-length stroke still leaves a round dot.
		dc.DrawCircle(float64(p.X), float64(p.Y), float64(st.Width)/2)
		return dc.Fill()
	}
	dc.SetLineWidth(float64(st.Width))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for _, seg := range path {
		switch seg.Kind {
		case state.SegMoveTo:
			dc.MoveTo(float64(seg.To.X), float64(seg.To.Y))
		case state.SegQuadTo:
			dc.QuadraticTo(float64(seg.Ctrl.X), float64(seg.Ctrl.Y), float64(seg.To.X), float64(seg.To.Y))
		case state.SegLineTo:
			dc.LineTo(float64(seg.To.X), float64(seg.To.Y))
		}
	}
	return dc.Stroke()
}

// singlePoint reports whether every point of path is the same one.
func singlePoint(path []state.Segment) (state.Point, bool) {
	p := path[0].To
	for _, seg := range path[1:] {
		if seg.To != p || (seg.Kind == state.SegQuadTo && seg.Ctrl != p) {
			return state.Point{}, false
		}
	}
	return p, true
}
