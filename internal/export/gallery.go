package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
)

// Gallery stores finished drawings. Insert returns where the drawing ended up.
type Gallery interface {
	Insert(ctx context.Context, img Image) (string, error)
}

const (
	thumbDir         = ".thumbnails"
	DefaultThumbSize = 96

	// maxNameTries bounds the _1, _2, ... suffixes tried when a name is taken.
	maxNameTries = 1000
)

var ErrNotJPEG = errors.New("export: data is not a JPEG image")

// DirGallery keeps drawings as files in a directory, with a small
// preview of each under .thumbnails/.
type DirGallery struct {
	Dir       string
	ThumbSize int
	Logger    *slog.Logger
}

func NewDirGallery(dir string, thumbSize int) (*DirGallery, error) {
	if thumbSize <= 0 {
		thumbSize = DefaultThumbSize
	}
	if err := os.MkdirAll(filepath.Join(dir, thumbDir), 0o755); err != nil {
		return nil, fmt.Errorf("could not create gallery %s: %w", dir, err)
	}
	return &DirGallery{Dir: dir, ThumbSize: thumbSize}, nil
}

func (g *DirGallery) Insert(ctx context.Context, img Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	kind, err := filetype.Match(img.Data)
	if err != nil {
		return "", fmt.Errorf("sniff %s: %w", img.Name, err)
	}
	if kind.MIME.Value != "image/jpeg" {
		return "", fmt.Errorf("%s (%s): %w", img.Name, kind.MIME.Value, ErrNotJPEG)
	}

	path, err := g.create(filepath.Base(img.Name), img.Data)
	if err != nil {
		return "", err
	}
	if err := g.writeThumbnail(filepath.Base(path), img.Data); err != nil {
		// The drawing is already on disk.
		g.logger().Warn("thumbnail failed", "name", img.Name, "err", err)
	}
	g.logger().Info("drawing saved", "path", path, "title", img.Title, "bytes", len(img.Data))
	return path, nil
}

// create writes data under name, or under name_1, name_2, ... when an earlier
// drawing already holds the name. Existing files are never overwritten.
func (g *DirGallery) create(name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < maxNameTries; i++ {
		candidate := name
		if i > 0 {
			candidate = stem + "_" + strconv.Itoa(i) + ext
		}
		path := filepath.Join(g.Dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", path, err)
		}
		_, err = f.Write(data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free name for %s in %s: %w", name, g.Dir, fs.ErrExist)
}

// ThumbnailPath is where Insert writes the preview for the drawing stored
// under name. Pass the base name of the path Insert returned.
func (g *DirGallery) ThumbnailPath(name string) string {
	return filepath.Join(g.Dir, thumbDir, filepath.Base(name))
}

func (g *DirGallery) writeThumbnail(name string, data []byte) error {
	src, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	w, h := fit(src.Bounds().Dx(), src.Bounds().Dy(), g.ThumbSize)
	thumb := transform.Resize(src, w, h, transform.Linear)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: DefaultQuality}); err != nil {
		return err
	}
	return os.WriteFile(g.ThumbnailPath(name), buf.Bytes(), 0o644)
}

func (g *DirGallery) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

// fit scales w×h down so the longer side is at most limit, keeping the aspect.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		nh := h * limit / w
		if nh < 1 {
			nh = 1
		}
		return limit, nh
	}
	nw := w * limit / h
	if nw < 1 {
		nw = 1
	}
	return nw, limit
}
