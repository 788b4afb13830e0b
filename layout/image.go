package layout

import (
	"errors"
	"fmt"
)

// ErrImageUnavailable marks an image that cannot be loaded or measured. It is
// never fatal: the renderer draws a placeholder instead.
var ErrImageUnavailable = errors.New("image unavailable")

// ImageSource supplies the natural size of a product image, in points
type ImageSource interface {
	Dimensions() (width, height float64, err error)
}

// Dimensions queries src and normalizes every failure, including a missing
// source or a degenerate size, to an error wrapping ErrImageUnavailable.
func Dimensions(src ImageSource) (float64, float64, error) {
	if src == nil {
		return 0, 0, fmt.Errorf("%w: no image", ErrImageUnavailable)
	}
	width, height, err := src.Dimensions()
	if err != nil {
		if errors.Is(err, ErrImageUnavailable) {
			return 0, 0, err
		}
		return 0, 0, fmt.Errorf("%w: %w", ErrImageUnavailable, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: invalid size %gx%g", ErrImageUnavailable, width, height)
	}
	return width, height, nil
}

// FixedSize is an ImageSource with known dimensions
type FixedSize struct {
	Width, Height float64
}

func (f FixedSize) Dimensions() (float64, float64, error) {
	return f.Width, f.Height, nil
}
