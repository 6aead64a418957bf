package state

import (
	"github.com/google/uuid"
)

// Stroke is the path under construction between a press and a release.
// The zero value is an idle stroke.
type Stroke struct {
	ID       string
	segments []Segment
	last     Point
	live     bool
}

// Begin discards whatever the stroke held and starts a new one at p.
func (s *Stroke) Begin(p Point) {
	s.ID = uuid.NewString()
	s.segments = append(s.segments[:0], Segment{Kind: SegMoveTo, To: p})
	s.last = p
	s.live = true
}

// Extend adds a quadratic segment toward p when the pointer has moved at
// least TouchTolerance on either axis since the last accepted sample.
// It reports whether p was accepted.
func (s *Stroke) Extend(p Point) bool {
	if !s.live {
		return false
	}
	dx := abs(p.X - s.last.X)
	dy := abs(p.Y - s.last.Y)
	if dx < TouchTolerance && dy < TouchTolerance {
		return false
	}
	mid := Point{X: (p.X + s.last.X) / 2, Y: (p.Y + s.last.Y) / 2}
	s.segments = append(s.segments, Segment{Kind: SegQuadTo, Ctrl: s.last, To: mid})
	s.last = p
	return true
}

// Finish closes the path with a line to the last accepted sample and
// returns it. The stroke is idle afterwards.
func (s *Stroke) Finish() []Segment {
	if !s.live {
		return nil
	}
	path := make([]Segment, len(s.segments), len(s.segments)+1)
	copy(path, s.segments)
	path = append(path, Segment{Kind: SegLineTo, To: s.last})
	s.Reset()
	return path
}

func (s *Stroke) Reset() {
	s.segments = s.segments[:0]
	s.live = false
}

func (s *Stroke) Live() bool { return s.live }

func (s *Stroke) Last() Point { return s.last }

// Segments returns a copy of the path accumulated so far.
func (s *Stroke) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
