// Package preview draws the page geometry of a catalog as an SVG wireframe,
// without loading any images.
package preview

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/ajstarks/svgo"
	"github.com/flanksource/catalogpdf/layout"
)

// units is the number of SVG user units per PDF point. svgo only takes
// integers, so coordinates are drawn in tenths of a point.
const units = 10

const (
	pageStyle     = "fill:white;stroke:black;stroke-width:5"
	guideStyle    = "fill:none;stroke:#808080;stroke-width:5;stroke-dasharray:40,20"
	cellStyle     = "fill:none;stroke:#c0c0c0;stroke-width:3"
	cardStyle     = "fill:#d3d3d3;stroke:none"
	slotStyle     = "fill:white;stroke:#4682b4;stroke-width:4;stroke-dasharray:30,15"
	baselineStyle = "stroke:#b22222;stroke-width:3"
	labelStyle    = "fill:#404040;stroke:none"
	textStyle     = "font-family:Helvetica,Arial,sans-serif;font-size:%dpx;fill:%s;text-anchor:%s"
)

func u(v float64) int {
	return int(math.Round(v * units))
}

// errWriter keeps the first write error, svgo ignores them
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// Write draws the first page of a catalog with count records
func Write(w io.Writer, cfg layout.PageGridConfig, count int) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("negative record count %d", count)
	}
	cells := min(count, cfg.PerPage())

	out := &errWriter{w: w}
	canvas := svg.New(out)

	size := cfg.PhysicalSize()
	canvas.Startview(int(math.Ceil(size.Width)), int(math.Ceil(size.Height)), 0, 0, u(size.Width), u(size.Height))
	canvas.Title(fmt.Sprintf("%dx%d grid, %d of %d cells, %s bleed", cfg.Columns, cfg.Rows, cells, cfg.PerPage(), cfg.BleedMode))

	canvas.Rect(0, 0, u(size.Width), u(size.Height), pageStyle)
	if cfg.DrawGuides {
		rect(canvas, layout.Guide(cfg), guideStyle)
	}

	canvas.Gid("cells")
	for i := 0; i < cells; i++ {
		drawCell(canvas, layout.Cell(i, cfg), cfg)
	}
	canvas.Gend()

	x, y := layout.PageNumberPosition(cfg)
	canvas.Text(u(x), u(y), "1", text(layout.PageNumberFontSize, "black", "middle"))
	rect(canvas, layout.Label(1, cfg), labelStyle)

	canvas.End()
	return out.err
}

func drawCell(canvas *svg.SVG, g layout.CellGeometry, cfg layout.PageGridConfig) {
	canvas.Gid("cell-" + strconv.Itoa(g.Index))
	rect(canvas, layout.Rect{X: g.CellX, Y: g.CellY, Width: g.CellWidth, Height: g.CellHeight}, cellStyle)
	rect(canvas, g.Card(), cardStyle)
	rect(canvas, g.Slot(cfg), slotStyle)

	slot := g.Slot(cfg)
	canvas.Text(u(slot.X+slot.Width/2), u(slot.Y+slot.Height/2), fmt.Sprintf("#%d", g.Index+1), text(layout.NameFontSize, "#4682b4", "middle"))

	left, right := u(slot.X), u(slot.X+slot.Width)
	canvas.Line(left, u(g.NameY), right, u(g.NameY), baselineStyle)
	canvas.Line(left, u(g.DescriptionY), right, u(g.DescriptionY), baselineStyle)
	canvas.Text(u(g.NameX), u(g.NameY), "name", text(layout.NameFontSize, "black", "middle"))
	canvas.Text(u(g.NameX), u(g.DescriptionY), "description", text(layout.DescriptionFontSize, "#808080", "middle"))
	canvas.Gend()
}

func rect(canvas *svg.SVG, r layout.Rect, style string) {
	canvas.Rect(u(r.X), u(r.Y), u(r.Width), u(r.Height), style)
}

func text(size float64, fill, anchor string) string {
	return fmt.Sprintf(textStyle, u(size), fill, anchor)
}
