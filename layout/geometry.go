package layout

import "math"

// CellGeometry is everything the renderer needs to draw one record
type CellGeometry struct {
	Index  int `json:"index"`
	Column int `json:"column"`
	Row    int `json:"row"`

	CellX      float64 `json:"cell_x"`
	CellY      float64 `json:"cell_y"`
	CellWidth  float64 `json:"cell_width"`
	CellHeight float64 `json:"cell_height"`

	// Slot is the MaxImageWidth x MaxImageHeight box the image is centered in
	SlotX float64 `json:"slot_x"`
	SlotY float64 `json:"slot_y"`

	// Image fields are zero until Fit succeeds
	ImageX            float64 `json:"image_x"`
	ImageY            float64 `json:"image_y"`
	ScaledImageWidth  float64 `json:"scaled_image_width"`
	ScaledImageHeight float64 `json:"scaled_image_height"`

	NameX        float64 `json:"name_x"`
	NameY        float64 `json:"name_y"`
	DescriptionY float64 `json:"description_y"`
}

// Cell places the record with the given sequential index. It does not look at
// the image; call Fit for that.
func Cell(index int, cfg PageGridConfig) CellGeometry {
	size := cfg.CellSize()
	column := index % cfg.Columns
	row := (index / cfg.Columns) % cfg.Rows

	cellX := cfg.BleedMargin + float64(column)*size.Width
	cellY := cfg.BleedMargin + float64(row)*size.Height
	slotY := cellY + ImageTopOffset
	nameY := slotY + cfg.MaxImageHeight + NameOffset

	return CellGeometry{
		Index:        index,
		Column:       column,
		Row:          row,
		CellX:        cellX,
		CellY:        cellY,
		CellWidth:    size.Width,
		CellHeight:   size.Height,
		SlotX:        cellX + (size.Width-cfg.MaxImageWidth)/2,
		SlotY:        slotY,
		NameX:        cellX + size.Width/2,
		NameY:        nameY,
		DescriptionY: nameY + DescriptionOffset,
	}
}

// Card is the light background rectangle behind a cell's content
func (g CellGeometry) Card() Rect {
	return Rect{
		X:      g.CellX + CardInset,
		Y:      g.CellY + CardInset,
		Width:  g.CellWidth - 2*CardInset,
		Height: g.CellHeight - CardInset - CardBottomInset,
	}
}

// Slot is the image box of the cell
func (g CellGeometry) Slot(cfg PageGridConfig) Rect {
	return Rect{X: g.SlotX, Y: g.SlotY, Width: cfg.MaxImageWidth, Height: cfg.MaxImageHeight}
}

// PlaceholderOrigin is the baseline start of the "image not available" text:
// the lower-left corner of the image slot.
func (g CellGeometry) PlaceholderOrigin(cfg PageGridConfig) (x, y float64) {
	return g.SlotX, g.SlotY + cfg.MaxImageHeight
}

// Fit scales an image of the given natural size into the slot and centers it
func (g CellGeometry) Fit(width, height float64, cfg PageGridConfig) CellGeometry {
	scale := ScaleFactor(width, height, cfg.MaxImageWidth, cfg.MaxImageHeight)
	g.ScaledImageWidth = width * scale
	g.ScaledImageHeight = height * scale
	g.ImageX = g.SlotX + (cfg.MaxImageWidth-g.ScaledImageWidth)/2
	g.ImageY = g.SlotY + (cfg.MaxImageHeight-g.ScaledImageHeight)/2
	return g
}

// Place computes the cell of a record and fits its image. When the image is
// unavailable the geometry is still returned, without image fields, together
// with an error wrapping ErrImageUnavailable.
func Place(index int, cfg PageGridConfig, src ImageSource) (CellGeometry, error) {
	g := Cell(index, cfg)
	width, height, err := Dimensions(src)
	if err != nil {
		return g, err
	}
	return g.Fit(width, height, cfg), nil
}

// ScaleFactor shrinks width x height to fit maxWidth x maxHeight. It never
// enlarges: the result is at most 1.
func ScaleFactor(width, height, maxWidth, maxHeight float64) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return math.Min(math.Min(maxWidth/width, maxHeight/height), 1)
}

// PageNumberPosition is the baseline center of the page number
func PageNumberPosition(cfg PageGridConfig) (x, y float64) {
	trim := cfg.Trim()
	return trim.X + trim.Width/2, trim.Y + trim.Height - PageNumberOffset
}

// Guide is the bleed guide rectangle, drawn at the trim edge
func Guide(cfg PageGridConfig) Rect {
	return cfg.Trim()
}
