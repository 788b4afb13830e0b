package render

import (
	"io"

	"github.com/flanksource/catalogpdf/layout"
)

// Color is an 8-bit RGB color
type Color struct {
	R, G, B int
}

var (
	Black     = Color{0, 0, 0}
	Gray      = Color{128, 128, 128}
	LightGray = Color{211, 211, 211}
	DarkGray  = Color{64, 64, 64}
)

// Font selects one of the standard PDF fonts
type Font struct {
	Family string
	// Style is "" for regular, "B" for bold, "I" for italic
	Style string
	Size  float64
}

var (
	NameFont        = Font{Family: layout.NameFont, Style: layout.NameFontStyle, Size: layout.NameFontSize}
	DescriptionFont = Font{Family: layout.DescriptionFont, Style: layout.DescriptionFontStyle, Size: layout.DescriptionFontSize}
	PageNumberFont  = Font{Family: "Helvetica", Size: layout.PageNumberFontSize}
	PlaceholderFont = Font{Family: "Helvetica", Style: "I", Size: layout.PlaceholderFontSize}
)

// Image is a picture a Canvas can embed. images.File implements it.
type Image interface {
	// Name identifies the image; the same name is embedded once per document
	Name() string
	Embed() (imageType string, data []byte, err error)
}

// PageSetup describes a new page
type PageSetup struct {
	Size layout.Size
	// Trim is set when the page carries a bleed: the trim box inside the media box
	Trim *layout.Rect
}

// Canvas is the drawing surface pages are painted on. Coordinates follow the
// layout package: points, top-left origin, text at its baseline.
type Canvas interface {
	AddPage(setup PageSetup)
	FillRect(r layout.Rect, c Color)
	StrokeRect(r layout.Rect, c Color, lineWidth float64, dashed bool)
	// DrawImage fails without side effects when the image cannot be embedded
	DrawImage(img Image, x, y, width, height float64) error
	Text(x, y float64, font Font, c Color, s string)
	TextWidth(font Font, s string) float64
	PageCount() int
	Output(w io.Writer) error
}
