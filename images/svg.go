package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// SVGScale is the rasterization density: pixels per SVG user unit
const SVGScale = 2.0

// rasterizeSVG renders an SVG to PNG. The natural size is the viewBox size.
func rasterizeSVG(data []byte) (*Decoded, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	width, height := icon.ViewBox.W, icon.ViewBox.H
	if width <= 0 || height <= 0 {
		return nil, errors.New("SVG has no usable viewBox")
	}

	target := fitWithin(int(math.Ceil(width*SVGScale)), int(math.Ceil(height*SVGScale)), MaxEmbedSide)
	icon.SetTarget(0, 0, float64(target.X), float64(target.Y))

	rgba := image.NewRGBA(image.Rect(0, 0, target.X, target.Y))
	scanner := rasterx.NewScannerGV(target.X, target.Y, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(target.X, target.Y, scanner)
	icon.Draw(raster, 1.0)

	pngBytes, err := encodePNG(rgba)
	if err != nil {
		return nil, err
	}
	return &Decoded{Width: width, Height: height, Type: TypePNG, Data: pngBytes}, nil
}
