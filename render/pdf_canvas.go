package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/flanksource/catalogpdf/layout"
	"github.com/jung-kurt/gofpdf"
)

// Metadata is written to the PDF information dictionary
type Metadata struct {
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Author  string `json:"author,omitempty" yaml:"author,omitempty"`
	Subject string `json:"subject,omitempty" yaml:"subject,omitempty"`
}

const Creator = "catalogpdf"

// PDFCanvas draws onto a gofpdf document held in memory
type PDFCanvas struct {
	pdf *gofpdf.Fpdf
	// tr converts UTF-8 to the cp1252 encoding of the standard fonts
	tr func(string) string
}

// NewPDFCanvas creates an empty document whose default page size is size
func NewPDFCanvas(size layout.Size, meta Metadata) *PDFCanvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	pdf.SetCreator(Creator, true)

	return &PDFCanvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (c *PDFCanvas) AddPage(setup PageSetup) {
	c.pdf.AddPageFormat("P", gofpdf.SizeType{Wd: setup.Size.Width, Ht: setup.Size.Height})
	if setup.Trim != nil {
		c.pdf.SetPageBox("trim", setup.Trim.X, setup.Trim.Y, setup.Trim.Width, setup.Trim.Height)
		c.pdf.SetPageBox("bleed", 0, 0, setup.Size.Width, setup.Size.Height)
	}
}

func (c *PDFCanvas) FillRect(r layout.Rect, col Color) {
	c.pdf.SetFillColor(col.R, col.G, col.B)
	c.pdf.Rect(r.X, r.Y, r.Width, r.Height, "F")
}

func (c *PDFCanvas) StrokeRect(r layout.Rect, col Color, lineWidth float64, dashed bool) {
	c.pdf.SetDrawColor(col.R, col.G, col.B)
	c.pdf.SetLineWidth(lineWidth)
	if dashed {
		c.pdf.SetDashPattern([]float64{4, 2}, 0)
	}
	c.pdf.Rect(r.X, r.Y, r.Width, r.Height, "D")
	if dashed {
		c.pdf.SetDashPattern([]float64{}, 0)
	}
}

func (c *PDFCanvas) DrawImage(img Image, x, y, width, height float64) error {
	if !c.pdf.Ok() {
		return c.pdf.Error()
	}
	imageType, data, err := img.Embed()
	if err != nil {
		return err
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	c.pdf.RegisterImageOptionsReader(img.Name(), opts, bytes.NewReader(data))
	if !c.pdf.Ok() {
		// gofpdf errors are sticky; a rejected image must not poison the document
		err := c.pdf.Error()
		c.pdf.ClearError()
		return fmt.Errorf("embedding %s: %w", img.Name(), err)
	}
	c.pdf.ImageOptions(img.Name(), x, y, width, height, false, opts, 0, "")
	return nil
}

func (c *PDFCanvas) Text(x, y float64, font Font, col Color, s string) {
	c.pdf.SetFont(font.Family, font.Style, font.Size)
	c.pdf.SetTextColor(col.R, col.G, col.B)
	c.pdf.Text(x, y, c.tr(s))
}

func (c *PDFCanvas) TextWidth(font Font, s string) float64 {
	c.pdf.SetFont(font.Family, font.Style, font.Size)
	return c.pdf.GetStringWidth(c.tr(s))
}

func (c *PDFCanvas) PageCount() int {
	return c.pdf.PageCount()
}

// Output serializes the document. It fails if any earlier drawing call failed.
func (c *PDFCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}
