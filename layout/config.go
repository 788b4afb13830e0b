// Package layout computes the page geometry of a product catalog: grid cells,
// image scaling, text baselines, bleed guides and page labels.
//
// Coordinates are PDF points (1/72 inch) with the origin at the top-left corner
// of the physical page and y growing downwards. Text y values are baselines.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Size is a width/height pair in points
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

var (
	Letter = Size{Width: 612, Height: 792}
	Legal  = Size{Width: 612, Height: 1008}
	A4     = Size{Width: 595.28, Height: 841.89}
)

// BleedMode selects how the bleed margin relates to the physical page
type BleedMode string

const (
	// BleedExpand grows the physical page by the bleed margin on every side.
	// The trim box is the base page size.
	BleedExpand BleedMode = "expand"
	// BleedGuide keeps the physical page at the base size and draws the
	// guide inset by the bleed margin.
	BleedGuide BleedMode = "guide"
)

// ParseBleedMode accepts "expand" or "guide", case-insensitively
func ParseBleedMode(s string) (BleedMode, error) {
	switch BleedMode(strings.ToLower(strings.TrimSpace(s))) {
	case BleedExpand, "":
		return BleedExpand, nil
	case BleedGuide:
		return BleedGuide, nil
	}
	return "", fmt.Errorf("%w: %q (want expand or guide)", ErrInvalidBleedMode, s)
}

var (
	ErrInvalidGrid      = errors.New("invalid grid")
	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrInvalidBleedMode = errors.New("invalid bleed mode")
	ErrInvalidImageBox  = errors.New("invalid image box")
)

// Fixed card styling, in points
const (
	CardInset            = 10.0
	CardBottomInset      = 20.0
	ImageTopOffset       = 25.0
	NameOffset           = 20.0
	DescriptionOffset    = 15.0
	PageNumberOffset     = 3.0
	LabelWidth           = 12.0
	LabelHeight          = 48.0
	NameFontSize         = 14.0
	DescriptionFontSize  = 10.0
	PageNumberFontSize   = 10.0
	PlaceholderFontSize  = 10.0
	GuideLineWidth       = 0.5
	PlaceholderText      = "Image not available"
	NameFont             = "Helvetica"
	NameFontStyle        = "B"
	DescriptionFont      = "Helvetica"
	DescriptionFontStyle = ""
)

// PageGridConfig holds every constant the layout depends on. It does not
// change during a run.
type PageGridConfig struct {
	Columns        int       `json:"columns" yaml:"columns"`
	Rows           int       `json:"rows" yaml:"rows"`
	PageSize       Size      `json:"page_size" yaml:"page_size"`
	BleedMargin    float64   `json:"bleed_margin" yaml:"bleed_margin"`
	BleedMode      BleedMode `json:"bleed_mode" yaml:"bleed_mode"`
	DrawGuides     bool      `json:"draw_guides" yaml:"draw_guides"`
	MaxImageWidth  float64   `json:"max_image_width" yaml:"max_image_width"`
	MaxImageHeight float64   `json:"max_image_height" yaml:"max_image_height"`
}

// DefaultGridConfig returns the 2x3 Letter layout with an 8.5pt expanded bleed
func DefaultGridConfig() PageGridConfig {
	return PageGridConfig{
		Columns:        2,
		Rows:           3,
		PageSize:       Letter,
		BleedMargin:    8.5,
		BleedMode:      BleedExpand,
		DrawGuides:     true,
		MaxImageWidth:  150,
		MaxImageHeight: 150,
	}
}

// Validate reports configurations that cannot produce a page
func (c PageGridConfig) Validate() error {
	if c.Columns <= 0 || c.Rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, c.Columns, c.Rows)
	}
	if c.PageSize.Width <= 0 || c.PageSize.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidPageSize, c.PageSize.Width, c.PageSize.Height)
	}
	if c.BleedMode != BleedExpand && c.BleedMode != BleedGuide {
		return fmt.Errorf("%w: %q", ErrInvalidBleedMode, c.BleedMode)
	}
	if c.BleedMargin < 0 {
		return fmt.Errorf("%w: negative bleed margin %g", ErrInvalidPageSize, c.BleedMargin)
	}
	if c.BleedMode == BleedGuide && (2*c.BleedMargin >= c.PageSize.Width || 2*c.BleedMargin >= c.PageSize.Height) {
		return fmt.Errorf("%w: bleed margin %g leaves no printable area", ErrInvalidPageSize, c.BleedMargin)
	}
	if c.MaxImageWidth <= 0 || c.MaxImageHeight <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidImageBox, c.MaxImageWidth, c.MaxImageHeight)
	}
	return nil
}

// PerPage is the number of cells on one page
func (c PageGridConfig) PerPage() int {
	return c.Columns * c.Rows
}

// PhysicalSize is the media box of every page
func (c PageGridConfig) PhysicalSize() Size {
	if c.BleedMode == BleedGuide {
		return c.PageSize
	}
	return Size{
		Width:  c.PageSize.Width + 2*c.BleedMargin,
		Height: c.PageSize.Height + 2*c.BleedMargin,
	}
}

// Rect is an axis-aligned rectangle, X/Y being its top-left corner
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Trim is the area inside the bleed margin. The guide rectangle is drawn on
// its edge in both bleed modes.
func (c PageGridConfig) Trim() Rect {
	size := c.PhysicalSize()
	return Rect{
		X:      c.BleedMargin,
		Y:      c.BleedMargin,
		Width:  size.Width - 2*c.BleedMargin,
		Height: size.Height - 2*c.BleedMargin,
	}
}

// CellSize is the width and height of one grid cell
func (c PageGridConfig) CellSize() Size {
	trim := c.Trim()
	return Size{
		Width:  trim.Width / float64(c.Columns),
		Height: trim.Height / float64(c.Rows),
	}
}
