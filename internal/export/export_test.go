package export

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(t *testing.T, w, h int, c color.Color) *gg.Context {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	dc := gg.NewContextForImage(img)
	t.Cleanup(func() { _ = dc.Close() })
	return dc
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, time.March, 7, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "DrawingFun_07032024_0905.jpg", FileName("DrawingFun", at))
}

func TestEncodeJPEG(t *testing.T) {
	at := time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC)
	img, err := EncodeJPEG(solid(t, 40, 30, color.White), "DrawingFun", at, 0)
	require.NoError(t, err)

	assert.Equal(t, "DrawingFun_31122023_2359.jpg", img.Name)
	assert.Equal(t, "31122023_2359", img.Title)
	assert.Equal(t, 40, img.Width)
	assert.Equal(t, 30, img.Height)

	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), decoded.Bounds())
}

func TestDirGalleryInsert(t *testing.T) {
	dir := t.TempDir()
	g, err := NewDirGallery(dir, 16)
	require.NoError(t, err)

	img, err := EncodeJPEG(solid(t, 64, 32, color.White), "DrawingFun", time.Now(), 80)
	require.NoError(t, err)

	path, err := g.Insert(context.Background(), img)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, img.Data, data)

	f, err := os.Open(g.ThumbnailPath(filepath.Base(path)))
	require.NoError(t, err)
	defer f.Close()
	thumb, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 16, thumb.Bounds().Dx())
	assert.Equal(t, 8, thumb.Bounds().Dy())
}

func TestDirGalleryKeepsSameMinuteSaves(t *testing.T) {
	dir := t.TempDir()
	g, err := NewDirGallery(dir, 16)
	require.NoError(t, err)

	at := time.Date(2024, time.March, 7, 9, 5, 0, 0, time.UTC)
	first, err := EncodeJPEG(solid(t, 32, 32, color.White), "DrawingFun", at, 0)
	require.NoError(t, err)
	second, err := EncodeJPEG(solid(t, 32, 32, color.Black), "DrawingFun", at.Add(30*time.Second), 0)
	require.NoError(t, err)
	require.Equal(t, first.Name, second.Name)

	p1, err := g.Insert(context.Background(), first)
	require.NoError(t, err)
	p2, err := g.Insert(context.Background(), second)
	require.NoError(t, err)
	p3, err := g.Insert(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "DrawingFun_07032024_0905.jpg"), p1)
	assert.Equal(t, filepath.Join(dir, "DrawingFun_07032024_0905_1.jpg"), p2)
	assert.Equal(t, filepath.Join(dir, "DrawingFun_07032024_0905_2.jpg"), p3)

	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t, first.Data, data)
	data, err = os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, second.Data, data)

	for _, p := range []string{p1, p2, p3} {
		assert.FileExists(t, g.ThumbnailPath(filepath.Base(p)))
	}
}

func TestDirGalleryRejectsNonJPEG(t *testing.T) {
	g, err := NewDirGallery(t.TempDir(), 0)
	require.NoError(t, err)

	_, err = g.Insert(context.Background(), Image{Name: "x.jpg", Data: []byte("not an image at all")})
	assert.ErrorIs(t, err, ErrNotJPEG)
}

func TestDirGalleryCanceled(t *testing.T) {
	g, err := NewDirGallery(t.TempDir(), 0)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Insert(ctx, Image{Name: "x.jpg"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFit(t *testing.T) {
	for _, tt := range []struct {
		w, h, limit, ew, eh int
	}{
		{10, 10, 96, 10, 10},
		{200, 100, 96, 96, 48},
		{100, 400, 96, 24, 96},
		{1000, 1, 96, 96, 1},
	} {
		w, h := fit(tt.w, tt.h, tt.limit)
		assert.Equal(t, tt.ew, w)
		assert.Equal(t, tt.eh, h)
	}
}

func TestWritePDF(t *testing.T) {
	img, err := EncodeJPEG(solid(t, 300, 200, color.White), "DrawingFun", time.Now(), 0)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, img))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
