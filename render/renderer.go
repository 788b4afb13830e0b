// Package render paints a product catalog onto PDF pages using the geometry
// computed by the layout package.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/flanksource/catalogpdf/catalog"
	"github.com/flanksource/catalogpdf/images"
	"github.com/flanksource/catalogpdf/layout"
	"github.com/flanksource/commons/logger"
)

// ImageResolver turns a record's image path into an image source
type ImageResolver func(path string) layout.ImageSource

// CanvasFactory creates the drawing surface for one document
type CanvasFactory func(size layout.Size, meta Metadata) Canvas

// UnavailableImage is a record drawn with a placeholder instead of its image
type UnavailableImage struct {
	Index  int
	Record catalog.ProductRecord
	Err    error
}

// Result summarizes a rendered catalog
type Result struct {
	Path        string             `json:"path,omitempty"`
	Pages       int                `json:"pages"`
	Items       int                `json:"items"`
	Unavailable []UnavailableImage `json:"-"`
}

// Placeholders is the number of records drawn without their image
func (r Result) Placeholders() int {
	return len(r.Unavailable)
}

// Renderer lays records out on pages. It holds no per-document state and can
// render several catalogs one after the other.
type Renderer struct {
	cfg       layout.PageGridConfig
	meta      Metadata
	log       logger.Logger
	resolve   ImageResolver
	newCanvas CanvasFactory
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLogger sets the logger used for per-record warnings
func WithLogger(log logger.Logger) Option {
	return func(r *Renderer) {
		r.log = log
	}
}

// WithMetadata sets the document title, author and subject
func WithMetadata(meta Metadata) Option {
	return func(r *Renderer) {
		r.meta = meta
	}
}

// WithImageResolver replaces the file based image loader
func WithImageResolver(resolve ImageResolver) Option {
	return func(r *Renderer) {
		r.resolve = resolve
	}
}

// WithCanvas replaces the gofpdf canvas
func WithCanvas(factory CanvasFactory) Option {
	return func(r *Renderer) {
		r.newCanvas = factory
	}
}

// New validates cfg and creates a Renderer
func New(cfg layout.PageGridConfig, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &RenderError{Err: err}
	}

	r := &Renderer{
		cfg:     cfg,
		meta:    Metadata{Title: "Product Catalog"},
		log:     logger.GetLogger("catalogpdf"),
		resolve: fileResolver,
		newCanvas: func(size layout.Size, meta Metadata) Canvas {
			return NewPDFCanvas(size, meta)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func fileResolver(path string) layout.ImageSource {
	return images.Open(path)
}

// Render draws records and commits the PDF to outputPath atomically
func (r *Renderer) Render(records []catalog.ProductRecord, outputPath string) (*Result, error) {
	if outputPath == "" {
		return nil, &RenderError{Err: ErrNoOutput}
	}

	canvas := r.newCanvas(r.cfg.PhysicalSize(), r.meta)
	result := r.Draw(canvas, records)

	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		return nil, &RenderError{Path: outputPath, Err: fmt.Errorf("%w: %w", ErrGenerate, err)}
	}
	if err := WriteFileAtomic(outputPath, buf.Bytes(), 0o644); err != nil {
		return nil, &RenderError{Path: outputPath, Err: fmt.Errorf("%w: %w", ErrWriteOutput, err)}
	}

	result.Path = outputPath
	r.log.Infof("Wrote %s: %d products on %d pages", outputPath, result.Items, result.Pages)
	return result, nil
}

// Draw paints every record onto canvas. Image problems never stop it; they
// are listed in the result.
func (r *Renderer) Draw(canvas Canvas, records []catalog.ProductRecord) *Result {
	perPage := r.cfg.PerPage()
	state := layout.NewPageState(perPage)
	result := &Result{}

	for i, record := range records {
		if layout.IsPageStart(i, perPage) {
			r.startPage(canvas, state)
		}

		if err := r.drawItem(canvas, i, record); err != nil {
			r.log.Warnf("%s (line %d): %v, drawing placeholder", record.Name, record.Line, err)
			result.Unavailable = append(result.Unavailable, UnavailableImage{Index: i, Record: record, Err: err})
		}
		result.Items++

		if state.Place() {
			r.endPage(canvas, state)
		}
	}

	// A partial last page, or the single page of an empty catalog
	if len(records) == 0 {
		r.startPage(canvas, state)
	}
	if state.Open() {
		r.endPage(canvas, state)
	}

	result.Pages = state.PageNumber
	return result
}

func (r *Renderer) startPage(canvas Canvas, state *layout.PageState) {
	state.StartPage()

	setup := PageSetup{Size: r.cfg.PhysicalSize()}
	if r.cfg.BleedMode == layout.BleedExpand && r.cfg.BleedMargin > 0 {
		trim := r.cfg.Trim()
		setup.Trim = &trim
	}
	canvas.AddPage(setup)

	if r.cfg.DrawGuides {
		canvas.StrokeRect(layout.Guide(r.cfg), Gray, layout.GuideLineWidth, true)
	}
}

// drawItem draws one card. The returned error only reports a missing image,
// the card itself is always complete.
func (r *Renderer) drawItem(canvas Canvas, index int, record catalog.ProductRecord) error {
	src := r.resolve(record.ImagePath)
	g, err := layout.Place(index, r.cfg, src)

	canvas.FillRect(g.Card(), LightGray)

	if err == nil {
		err = r.drawImage(canvas, src, g)
	}
	if err != nil {
		x, y := g.PlaceholderOrigin(r.cfg)
		canvas.Text(x, y, PlaceholderFont, DarkGray, layout.PlaceholderText)
	}

	r.centeredText(canvas, g.NameX, g.NameY, NameFont, Black, record.Name)
	r.centeredText(canvas, g.NameX, g.DescriptionY, DescriptionFont, Gray, record.Description)
	return err
}

func (r *Renderer) drawImage(canvas Canvas, src layout.ImageSource, g layout.CellGeometry) error {
	img, ok := src.(Image)
	if !ok {
		return fmt.Errorf("%w: %T cannot be embedded", layout.ErrImageUnavailable, src)
	}
	if err := canvas.DrawImage(img, g.ImageX, g.ImageY, g.ScaledImageWidth, g.ScaledImageHeight); err != nil {
		if errors.Is(err, layout.ErrImageUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %w", layout.ErrImageUnavailable, err)
	}
	return nil
}

func (r *Renderer) endPage(canvas Canvas, state *layout.PageState) {
	x, y := layout.PageNumberPosition(r.cfg)
	r.centeredText(canvas, x, y, PageNumberFont, Black, strconv.Itoa(state.PageNumber))
	canvas.FillRect(layout.Label(state.PageNumber, r.cfg), DarkGray)

	r.log.Debugf("Finalized page %d (%s label)", state.PageNumber, layout.LabelSide(state.PageNumber))
	state.EndPage()
}

func (r *Renderer) centeredText(canvas Canvas, x, y float64, font Font, c Color, s string) {
	if s == "" {
		return
	}
	canvas.Text(x-canvas.TextWidth(font, s)/2, y, font, c, s)
}
