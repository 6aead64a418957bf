package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF lays the drawing out on a single A4 page, scaled to fit inside
// the margins, and writes the document to w.
func WritePDF(w io.Writer, img Image) error {
	orientation := "P"
	if img.Width > img.Height {
		orientation = "L"
	}
	p := gofpdf.New(orientation, "mm", "A4", "")
	p.SetTitle(img.Title, true)
	p.SetCreator("drawingfun", true)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "JPG"}
	p.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))

	pageW, pageH := p.GetPageSize()
	left, top, right, bottom := p.GetMargins()
	boxW, boxH := pageW-left-right, pageH-top-bottom
	width, height := boxW, boxH
	if img.Width > 0 && img.Height > 0 {
		scale := boxW / float64(img.Width)
		if s := boxH / float64(img.Height); s < scale {
			scale = s
		}
		width, height = float64(img.Width)*scale, float64(img.Height)*scale
	}
	p.ImageOptions(img.Name, left+(boxW-width)/2, top+(boxH-height)/2, width, height, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("pdf %s: %w", img.Name, err)
	}
	return nil
}
