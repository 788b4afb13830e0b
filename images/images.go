// Package images loads product pictures from disk and prepares them for
// embedding in a PDF.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // Register GIF format
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/flanksource/catalogpdf/layout"
	_ "golang.org/x/image/bmp" // Register BMP format
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format
)

// Embedded image types understood by the PDF writer
const (
	TypeJPEG = "JPG"
	TypePNG  = "PNG"
)

// MaxEmbedSide bounds the pixel size of re-encoded images. Larger pictures are
// resampled before embedding; their natural size is unchanged.
const MaxEmbedSide = 2048

var ErrNoPath = errors.New("no image path")

// Decoded is an image ready to embed
type Decoded struct {
	// Width and Height are the natural size in points (one pixel per point)
	Width  float64
	Height float64
	// Type is TypeJPEG or TypePNG
	Type string
	Data []byte
}

// File is a lazily loaded image on disk. It implements layout.ImageSource.
type File struct {
	Path string

	loaded  bool
	decoded *Decoded
	err     error
}

// Open returns the image at path without reading it
func Open(path string) *File {
	return &File{Path: path}
}

// Dimensions returns the natural size of the image
func (f *File) Dimensions() (float64, float64, error) {
	d, err := f.Load()
	if err != nil {
		return 0, 0, err
	}
	return d.Width, d.Height, nil
}

// Name identifies the image inside a document
func (f *File) Name() string {
	return f.Path
}

// Load reads and converts the image once. Every failure wraps
// layout.ErrImageUnavailable.
func (f *File) Load() (*Decoded, error) {
	if !f.loaded {
		f.decoded, f.err = load(f.Path)
		if f.err != nil {
			f.err = fmt.Errorf("%w: %s: %w", layout.ErrImageUnavailable, f.Path, f.err)
		}
		f.loaded = true
	}
	return f.decoded, f.err
}

// Embed returns the bytes and type to embed
func (f *File) Embed() (imageType string, data []byte, err error) {
	d, err := f.Load()
	if err != nil {
		return "", nil, err
	}
	return d.Type, d.Data, nil
}

func load(path string) (*Decoded, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrNoPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}
	if isSVG(path, data) {
		return rasterizeSVG(data)
	}
	return decode(data)
}

func decode(data []byte) (*Decoded, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unsupported image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	if format == "jpeg" && cfg.Width <= MaxEmbedSide && cfg.Height <= MaxEmbedSide {
		// The PDF writer parses the header itself; make sure the body decodes too
		if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("corrupt JPEG: %w", err)
		}
		return &Decoded{Width: float64(cfg.Width), Height: float64(cfg.Height), Type: TypeJPEG, Data: data}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	d := &Decoded{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	if format == "jpeg" {
		d.Type = TypeJPEG
		d.Data, err = encodeJPEG(resample(img))
	} else {
		d.Type = TypePNG
		d.Data, err = encodePNG(resample(img))
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// resample copies img into an 8-bit NRGBA image no larger than MaxEmbedSide
func resample(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	target := fitWithin(bounds.Dx(), bounds.Dy(), MaxEmbedSide)

	dst := image.NewNRGBA(image.Rect(0, 0, target.X, target.Y))
	if target.X == bounds.Dx() && target.Y == bounds.Dy() {
		draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	}
	return dst
}

// encodePNG writes an 8-bit, non-interlaced PNG, the only PNG flavour the PDF
// writer accepts without conversion. Fully opaque images get no alpha channel.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// fitWithin shrinks w x h so neither side exceeds limit, keeping the aspect ratio
func fitWithin(w, h, limit int) image.Point {
	if w <= limit && h <= limit {
		return image.Pt(w, h)
	}
	if w >= h {
		return image.Pt(limit, max(1, h*limit/w))
	}
	return image.Pt(max(1, w*limit/h), limit)
}

func isSVG(path string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return true
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(head, []byte("<svg"))
}
