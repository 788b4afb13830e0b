package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/flanksource/catalogpdf/layout"
)

// recorder is a Canvas that remembers every call
type recorder struct {
	pages  []PageSetup
	fills  []fill
	texts  []text
	images []placed
	guides []stroke
}

type fill struct {
	page  int
	rect  layout.Rect
	color Color
}

type stroke struct {
	page   int
	rect   layout.Rect
	width  float64
	dashed bool
}

type text struct {
	page int
	x, y float64
	font Font
	s    string
}

type placed struct {
	page                int
	name                string
	x, y, width, height float64
}

func (r *recorder) page() int { return len(r.pages) }

func (r *recorder) AddPage(setup PageSetup) {
	r.pages = append(r.pages, setup)
}

func (r *recorder) FillRect(rect layout.Rect, c Color) {
	r.fills = append(r.fills, fill{page: r.page(), rect: rect, color: c})
}

func (r *recorder) StrokeRect(rect layout.Rect, _ Color, lineWidth float64, dashed bool) {
	r.guides = append(r.guides, stroke{page: r.page(), rect: rect, width: lineWidth, dashed: dashed})
}

func (r *recorder) DrawImage(img Image, x, y, width, height float64) error {
	if _, _, err := img.Embed(); err != nil {
		return err
	}
	r.images = append(r.images, placed{page: r.page(), name: img.Name(), x: x, y: y, width: width, height: height})
	return nil
}

func (r *recorder) Text(x, y float64, font Font, _ Color, s string) {
	r.texts = append(r.texts, text{page: r.page(), x: x, y: y, font: font, s: s})
}

func (r *recorder) TextWidth(font Font, s string) float64 {
	return float64(len(s)) * font.Size / 2
}

func (r *recorder) PageCount() int { return len(r.pages) }

func (r *recorder) Output(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d pages", len(r.pages))
	return err
}

func (r *recorder) textsOn(page int, font Font) []text {
	var out []text
	for _, t := range r.texts {
		if t.page == page && t.font == font {
			out = append(out, t)
		}
	}
	return out
}

func (r *recorder) fillsWith(c Color) []fill {
	var out []fill
	for _, f := range r.fills {
		if f.color == c {
			out = append(out, f)
		}
	}
	return out
}

// fakeImage is an embeddable image of a fixed size
type fakeImage struct {
	name          string
	width, height float64
	embedErr      error
}

func (f fakeImage) Dimensions() (float64, float64, error) {
	return f.width, f.height, nil
}

func (f fakeImage) Name() string { return f.name }

func (f fakeImage) Embed() (string, []byte, error) {
	if f.embedErr != nil {
		return "", nil, f.embedErr
	}
	return "PNG", []byte("png"), nil
}

var errCorrupt = errors.New("corrupt image data")
