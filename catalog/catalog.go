// Package catalog loads product lists from CSV files.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Column headers a catalog CSV must carry. Matching is exact and case-sensitive.
const (
	ColumnName        = "Product Name"
	ColumnDescription = "Description"
	ColumnImagePath   = "Image Path"
)

// RequiredColumns lists the headers in the order they are reported when missing
var RequiredColumns = []string{ColumnName, ColumnDescription, ColumnImagePath}

const utf8BOM = "\ufeff"

// ProductRecord is one product row of the catalog
type ProductRecord struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	// ImagePath is absolute once loaded, or empty when the row has no image
	ImagePath string `json:"image_path" yaml:"image_path"`
	// Line is the 1-based line of the row in the source file
	Line int `json:"line" yaml:"line"`
}

// Load reads the CSV file at path. Relative image paths are resolved against
// the directory containing the file.
func Load(path string) ([]ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &DataLoadError{Path: path, Err: ErrFileNotFound}
		}
		return nil, &DataLoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrUnreadable, err)}
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return nil, &DataLoadError{Path: path, Err: fmt.Errorf("%w: is a directory", ErrUnreadable)}
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: fmt.Errorf("%w: %v", ErrUnreadable, err)}
	}

	records, err := Parse(f, baseDir)
	if err != nil {
		var loadErr *DataLoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
			return nil, loadErr
		}
		return nil, &DataLoadError{Path: path, Err: err}
	}
	return records, nil
}

// Parse reads catalog rows from r, resolving relative image paths against baseDir
func Parse(r io.Reader, baseDir string) ([]ProductRecord, error) {
	reader := csv.NewReader(r)
	// Short rows are padded below, long rows are rejected explicitly
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &DataLoadError{Err: ErrNoProducts}
	}
	if err != nil {
		return nil, &DataLoadError{Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, &DataLoadError{Line: 1, Err: err}
	}

	var records []ProductRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var line int
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return nil, &DataLoadError{Line: line, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
		}
		line, _ := reader.FieldPos(0)
		if len(row) > len(header) {
			return nil, &DataLoadError{
				Line: line,
				Err:  fmt.Errorf("%w: expected %d fields, got %d", ErrMalformed, len(header), len(row)),
			}
		}
		if isBlank(row) {
			continue
		}

		records = append(records, ProductRecord{
			Name:        field(row, columns[ColumnName]),
			Description: field(row, columns[ColumnDescription]),
			ImagePath:   ResolveImagePath(baseDir, field(row, columns[ColumnImagePath])),
			Line:        line,
		})
	}

	if len(records) == 0 {
		return nil, &DataLoadError{Err: ErrNoProducts}
	}
	return records, nil
}

// ResolveImagePath joins a relative image path onto baseDir. Absolute and
// empty paths are returned unchanged.
func ResolveImagePath(baseDir, imagePath string) string {
	imagePath = strings.TrimSpace(imagePath)
	if imagePath == "" || filepath.IsAbs(imagePath) {
		return imagePath
	}
	return filepath.Join(baseDir, imagePath)
}

func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, name := range RequiredColumns {
		idx := lo.IndexOf(header, name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}
		columns[name] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return columns, nil
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	return lo.EveryBy(row, func(v string) bool { return strings.TrimSpace(v) == "" })
}
