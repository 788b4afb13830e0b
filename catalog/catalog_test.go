package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_PreservesRowOrderAndResolvesImages(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "abs.png")
	path := writeCSV(t, "Product Name,Description,Image Path\n"+
		"Lamp,Desk lamp,images/lamp.png\n"+
		"Chair,Oak chair,"+abs+"\n"+
		"Table,No picture,\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	dir := filepath.Dir(path)
	assert.Equal(t, ProductRecord{Name: "Lamp", Description: "Desk lamp", ImagePath: filepath.Join(dir, "images", "lamp.png"), Line: 2}, records[0])
	assert.Equal(t, "Chair", records[1].Name)
	assert.Equal(t, abs, records[1].ImagePath)
	assert.Equal(t, "", records[2].ImagePath)
	assert.Equal(t, 4, records[2].Line)
}

func TestLoad_IgnoresExtraColumnsAndHeaderOrder(t *testing.T) {
	path := writeCSV(t, "\ufeffSKU,Image Path,Price,Description,Product Name\n"+
		"A1,a.jpg,10,First,Alpha\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alpha", records[0].Name)
	assert.Equal(t, "First", records[0].Description)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "a.jpg"), records[0].ImagePath)
}

func TestLoad_QuotedFields(t *testing.T) {
	path := writeCSV(t, "Product Name,Description,Image Path\n"+
		"\"Sofa, large\",\"Seats \"\"four\"\"\",sofa.png\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Sofa, large", records[0].Name)
	assert.Equal(t, `Seats "four"`, records[0].Description)
}

func TestLoad_ShortRowsArePadded(t *testing.T) {
	path := writeCSV(t, "Product Name,Description,Image Path\nMug\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Mug", records[0].Name)
	assert.Empty(t, records[0].Description)
	assert.Empty(t, records[0].ImagePath)
}

func TestLoad_SkipsBlankRows(t *testing.T) {
	path := writeCSV(t, "Product Name,Description,Image Path\n,,\nMug,Cup,mug.png\n")

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Line)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
		line    int
	}{
		{"empty file", "", ErrNoProducts, 0},
		{"header only", "Product Name,Description,Image Path\n", ErrNoProducts, 0},
		{"missing column", "Product Name,Image Path\nA,a.png\n", ErrMissingColumn, 1},
		{"case sensitive header", "product name,Description,Image Path\nA,B,c.png\n", ErrMissingColumn, 1},
		{"too many fields", "Product Name,Description,Image Path\nA,B,c.png,extra\n", ErrMalformed, 2},
		{"bad quoting", "Product Name,Description,Image Path\n\"A,B,c.png\n", ErrMalformed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.content)

			records, err := Load(path)
			require.Error(t, err)
			assert.Nil(t, records)
			assert.ErrorIs(t, err, tt.want)

			var loadErr *DataLoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, path, loadErr.Path)
			if tt.line > 0 {
				assert.Equal(t, tt.line, loadErr.Line)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Contains(t, err.Error(), path)
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestMissingColumnMessageNamesColumns(t *testing.T) {
	_, err := Parse(strings.NewReader("Product Name\nA\n"), "/base")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Description, Image Path")
}

func TestResolveImagePath(t *testing.T) {
	base := filepath.FromSlash("/data/catalog")
	abs := filepath.Join(base, "other", "x.png")
	if !filepath.IsAbs(abs) {
		t.Skip("platform without rooted slash paths")
	}

	assert.Equal(t, filepath.Join(base, "img", "a.png"), ResolveImagePath(base, "img/a.png"))
	assert.Equal(t, filepath.Join(base, "a.png"), ResolveImagePath(base, "  a.png "))
	assert.Equal(t, abs, ResolveImagePath(base, abs))
	assert.Equal(t, "", ResolveImagePath(base, "   "))
}
