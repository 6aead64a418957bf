package export

import (
	"bytes"
	"fmt"
	"io"
	"time"
)

const (
	// TimestampLayout renders as ddMMyyyy_HHmm.
	TimestampLayout = "02012006_1504"

	DefaultQuality = 90
)

// Image is an encoded drawing ready to be handed to a Gallery.
type Image struct {
	Name   string // <app>_<timestamp>.jpg
	Title  string // the timestamp alone
	Data   []byte
	Width  int
	Height int
	Taken  time.Time
}

// FileName returns the suggested gallery name for a drawing saved at t.
func FileName(appName string, t time.Time) string {
	return appName + "_" + t.Format(TimestampLayout) + ".jpg"
}

// Surface is a drawing surface that can encode itself as a JPEG.
// *gg.Context satisfies it.
type Surface interface {
	Width() int
	Height() int
	EncodeJPEG(w io.Writer, quality int) error
}

// EncodeJPEG encodes s at the given quality. Out of range qualities fall
// back to DefaultQuality.
func EncodeJPEG(s Surface, appName string, t time.Time, quality int) (Image, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}
	var buf bytes.Buffer
	if err := s.EncodeJPEG(&buf, quality); err != nil {
		return Image{}, fmt.Errorf("encode %s: %w", FileName(appName, t), err)
	}
	return Image{
		Name:   FileName(appName, t),
		Title:  t.Format(TimestampLayout),
		Data:   buf.Bytes(),
		Width:  s.Width(),
		Height: s.Height(),
		Taken:  t,
	}, nil
}
