// Package catalogpdf turns a CSV product list into a print-ready PDF catalog:
// a fixed grid of product cards per page, with bleed guides, page numbers and
// alternating side labels.
package catalogpdf

import (
	"github.com/flanksource/catalogpdf/catalog"
	"github.com/flanksource/catalogpdf/layout"
	"github.com/flanksource/catalogpdf/render"
	"github.com/flanksource/commons/logger"
)

// Options configure a catalog run
type Options struct {
	Grid     layout.PageGridConfig
	Metadata render.Metadata
	Logger   logger.Logger

	// err is the first invalid option, reported before any file is read
	err error
}

type Option func(*Options)

// WithGrid replaces the default 2x3 Letter layout
func WithGrid(cfg layout.PageGridConfig) Option {
	return func(o *Options) {
		o.Grid = cfg
	}
}

func WithMetadata(meta render.Metadata) Option {
	return func(o *Options) {
		o.Metadata = meta
	}
}

func WithLogger(log logger.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// WithRunConfig applies the bleed mode, guides and metadata of a run config.
// An invalid config fails the run without touching the grid.
func WithRunConfig(config RunConfig) Option {
	return func(o *Options) {
		grid, err := config.Grid()
		if err != nil {
			if o.err == nil {
				o.err = &render.RenderError{Err: err}
			}
			return
		}
		o.Grid = grid
		o.Metadata = config.Metadata()
	}
}

func newOptions(opts []Option) Options {
	o := Options{
		Grid:     layout.DefaultGridConfig(),
		Metadata: RunConfig{}.Metadata(),
		Logger:   logger.GetLogger("catalogpdf"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// LoadCatalog reads the products of a CSV file. Any failure is a
// *catalog.DataLoadError and no records are returned.
func LoadCatalog(csvPath string) ([]catalog.ProductRecord, error) {
	return catalog.Load(csvPath)
}

// RenderCatalog lays records out and writes the PDF to outputPath. Products
// whose image cannot be used get a placeholder and are listed in the result.
func RenderCatalog(records []catalog.ProductRecord, outputPath string, opts ...Option) (*render.Result, error) {
	o := newOptions(opts)
	if o.err != nil {
		return nil, o.err
	}
	return renderCatalog(records, outputPath, o)
}

func renderCatalog(records []catalog.ProductRecord, outputPath string, o Options) (*render.Result, error) {
	r, err := render.New(o.Grid, render.WithLogger(o.Logger), render.WithMetadata(o.Metadata))
	if err != nil {
		return nil, err
	}
	return r.Render(records, outputPath)
}

// Generate is LoadCatalog followed by RenderCatalog. Nothing is written when
// the options are invalid or the CSV cannot be loaded.
func Generate(csvPath, outputPath string, opts ...Option) (*render.Result, error) {
	o := newOptions(opts)
	if o.err != nil {
		return nil, o.err
	}
	records, err := LoadCatalog(csvPath)
	if err != nil {
		return nil, err
	}
	o.Logger.Debugf("Loaded %d products from %s", len(records), csvPath)

	return renderCatalog(records, outputPath, o)
}
