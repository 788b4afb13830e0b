package render

import (
	"errors"
	"fmt"
)

var (
	ErrGenerate    = errors.New("PDF generation failed")
	ErrWriteOutput = errors.New("cannot write output file")
	ErrNoOutput    = errors.New("no output path")
)

// RenderError is a fatal rendering failure; no output file was committed
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("rendering catalog: %v", e.Err)
	}
	return fmt.Sprintf("rendering %s: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
