package images

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/flanksource/catalogpdf/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	return img
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func encoded(t *testing.T, encode func(*bytes.Buffer) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, encode(&buf))
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestOpen_Formats(t *testing.T) {
	img := solid(40, 20)
	tests := []struct {
		name     string
		file     string
		data     []byte
		wantType string
	}{
		{"png", "a.png", encoded(t, func(b *bytes.Buffer) error { return png.Encode(b, img) }), TypePNG},
		{"jpeg", "a.jpg", encoded(t, func(b *bytes.Buffer) error { return jpeg.Encode(b, img, nil) }), TypeJPEG},
		{"gif", "a.gif", encoded(t, func(b *bytes.Buffer) error { return gif.Encode(b, img, nil) }), TypePNG},
		{"bmp", "a.bmp", encoded(t, func(b *bytes.Buffer) error { return bmp.Encode(b, img) }), TypePNG},
		{"wrong extension", "a.dat", encoded(t, func(b *bytes.Buffer) error { return png.Encode(b, img) }), TypePNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Open(writeFile(t, tt.file, tt.data))

			w, h, err := f.Dimensions()
			require.NoError(t, err)
			assert.Equal(t, 40.0, w)
			assert.Equal(t, 20.0, h)

			imageType, data, err := f.Embed()
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, imageType)
			assert.NotEmpty(t, data)
			if imageType == TypePNG {
				assert.Equal(t, image.Rect(0, 0, 40, 20), decodePNG(t, data).Bounds())
			}
		})
	}
}

func TestOpen_SixteenBitPNGIsReencodedAsEightBit(t *testing.T) {
	src := image.NewRGBA64(image.Rect(0, 0, 8, 8))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	f := Open(writeFile(t, "deep.png", encoded(t, func(b *bytes.Buffer) error { return png.Encode(b, src) })))

	_, data, err := f.Embed()
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, cfg.ColorModel == color.RGBAModel, "expected 8-bit RGB output")
}

func TestOpen_LargeImageKeepsNaturalSize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, MaxEmbedSide*2, 10))
	f := Open(writeFile(t, "wide.png", encoded(t, func(b *bytes.Buffer) error { return png.Encode(b, img) })))

	w, h, err := f.Dimensions()
	require.NoError(t, err)
	assert.Equal(t, float64(MaxEmbedSide*2), w)
	assert.Equal(t, 10.0, h)

	_, data, err := f.Embed()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, MaxEmbedSide, 5), decodePNG(t, data).Bounds())
}

func TestOpen_SVG(t *testing.T) {
	svg := `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="300" height="100" viewBox="0 0 300 100">
    <rect x="0" y="0" width="300" height="100" fill="blue"/>
</svg>`
	f := Open(writeFile(t, "logo.svg", []byte(svg)))

	w, h, err := f.Dimensions()
	require.NoError(t, err)
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 100.0, h)

	imageType, data, err := f.Embed()
	require.NoError(t, err)
	assert.Equal(t, TypePNG, imageType)
	assert.Equal(t, image.Rect(0, 0, 600, 200), decodePNG(t, data).Bounds())
}

func TestOpen_Unavailable(t *testing.T) {
	tests := map[string]string{
		"missing":  filepath.Join(t.TempDir(), "missing.png"),
		"empty":    writeFile(t, "empty.png", nil),
		"garbage":  writeFile(t, "garbage.png", []byte("definitely not an image")),
		"truncate": writeFile(t, "cut.png", encoded(t, func(b *bytes.Buffer) error { return png.Encode(b, solid(20, 20)) })[:40]),
		"no path":  "",
	}

	for name, path := range tests {
		t.Run(name, func(t *testing.T) {
			f := Open(path)
			_, _, err := f.Dimensions()
			require.Error(t, err)
			assert.ErrorIs(t, err, layout.ErrImageUnavailable)

			_, _, err = f.Embed()
			assert.ErrorIs(t, err, layout.ErrImageUnavailable)
		})
	}
}

func TestOpen_LoadsOnce(t *testing.T) {
	path := writeFile(t, "once.png", encoded(t, func(b *bytes.Buffer) error { return png.Encode(b, solid(4, 4)) }))
	f := Open(path)
	_, _, err := f.Dimensions()
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	w, _, err := f.Dimensions()
	require.NoError(t, err)
	assert.Equal(t, 4.0, w)
}

func TestFitWithin(t *testing.T) {
	assert.Equal(t, image.Pt(10, 10), fitWithin(10, 10, 20))
	assert.Equal(t, image.Pt(20, 10), fitWithin(40, 20, 20))
	assert.Equal(t, image.Pt(5, 20), fitWithin(10, 40, 20))
	assert.Equal(t, image.Pt(20, 1), fitWithin(1000, 1, 20))
}

func TestFileIsImageSource(t *testing.T) {
	var _ layout.ImageSource = Open("x.png")
}
