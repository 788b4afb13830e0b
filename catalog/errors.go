package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound  = errors.New("CSV file not found")
	ErrUnreadable    = errors.New("CSV file is not readable")
	ErrMalformed     = errors.New("malformed CSV")
	ErrMissingColumn = errors.New("missing required column")
	ErrNoProducts    = errors.New("CSV file contains no products")
)

// DataLoadError reports why a catalog could not be loaded. It is always fatal:
// no records are returned alongside it.
type DataLoadError struct {
	Path string
	// Line is the 1-based line the failure was detected on, 0 when unknown
	Line int
	Err  error
}

func (e *DataLoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("loading %s: line %d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("loading catalog: line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("loading catalog: %v", e.Err)
	}
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}
