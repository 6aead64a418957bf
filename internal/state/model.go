package state

import (
	"image/color"
)

// Point is one pointer sample in view-local coordinates.
type Point struct{ X, Y float32 }

type Mode int

const (
	ModeBrush Mode = iota
	ModeErase
)

func (m Mode) String() string {
	switch m {
	case ModeBrush:
		return "brush"
	case ModeErase:
		return "erase"
	}
	return "unknown"
}

const (
	// TouchTolerance is the smallest per-axis movement that adds a curve segment.
	TouchTolerance = 4.0

	DefaultStrokeWidth float32 = 12
	DefaultEraseWidth  float32 = 20
)

var (
	// Background is the surface fill and the eraser color.
	Background color.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	DefaultColor color.Color = color.NRGBA{G: 255, A: 255}
)

// Style is how the next committed stroke is painted.
type Style struct {
	Color color.Color
	Width float32
	Mode  Mode
}

func BrushStyle(c color.Color) Style {
	return Style{Color: c, Width: DefaultStrokeWidth, Mode: ModeBrush}
}

func EraseStyle() Style {
	return Style{Color: Background, Width: DefaultEraseWidth, Mode: ModeErase}
}

type SegmentKind int

const (
	SegMoveTo SegmentKind = iota
	SegQuadTo
	SegLineTo
)

// Segment is one path command. Ctrl is only set for SegQuadTo.
type Segment struct {
	Kind SegmentKind
	Ctrl Point
	To   Point
}
