package render

import (
	"fmt"
	"io"
	"os"

	"github.com/flanksource/catalogpdf/layout"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Info describes a PDF read back from disk
type Info struct {
	Path  string        `json:"path"`
	Pages int           `json:"pages"`
	Sizes []layout.Size `json:"sizes"`
	Bytes int64         `json:"bytes"`
}

func pdfcpuConfig() *model.Configuration {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Inspect reads the page count and page sizes of the PDF at path
func Inspect(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return InspectReader(f, path, stat.Size())
}

// InspectReader is Inspect for an already opened document
func InspectReader(rs io.ReadSeeker, name string, size int64) (*Info, error) {
	conf := pdfcpuConfig()

	pages, err := api.PageCount(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	dims, err := api.PageDims(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("reading page sizes of %s: %w", name, err)
	}

	info := &Info{Path: name, Pages: pages, Bytes: size}
	for _, d := range dims {
		info.Sizes = append(info.Sizes, layout.Size{Width: d.Width, Height: d.Height})
	}
	return info, nil
}
