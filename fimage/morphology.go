package fimage

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNilField is returned when an operation is given no field to work on.
	ErrNilField = errors.New("field must be a non-nil matrix")
	// ErrInvalidNeighborhood is returned for neighborhoods without a definable
	// center cell.
	ErrInvalidNeighborhood = errors.New("invalid neighborhood")
)

// StructuringElement is the neighborhood shape used by the morphological
// operators. Offsets are relative to the center cell, which is always part of
// the element.
type StructuringElement struct {
	size    int
	offsets []image.Point
}

// NewSquareElement returns a full size x size window centered on the cell.
// The size must be odd so the center is well defined.
func NewSquareElement(size int) (*StructuringElement, error) {
	if err := checkElementSize(size); err != nil {
		return nil, err
	}
	half := size / 2
	offsets := make([]image.Point, 0, size*size)
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			offsets = append(offsets, image.Point{dx, dy})
		}
	}
	return &StructuringElement{size: size, offsets: offsets}, nil
}

// NewCrossElement returns a plus-shaped window of the given odd size, the
// center cell plus its horizontal and vertical arms.
func NewCrossElement(size int) (*StructuringElement, error) {
	if err := checkElementSize(size); err != nil {
		return nil, err
	}
	half := size / 2
	offsets := make([]image.Point, 0, 2*size-1)
	for d := -half; d <= half; d++ {
		offsets = append(offsets, image.Point{d, 0})
		if d != 0 {
			offsets = append(offsets, image.Point{0, d})
		}
	}
	return &StructuringElement{size: size, offsets: offsets}, nil
}

func checkElementSize(size int) error {
	if size <= 0 {
		return errors.Wrapf(ErrInvalidNeighborhood, "size %d must be positive", size)
	}
	if size%2 == 0 {
		return errors.Wrapf(ErrInvalidNeighborhood, "size %d has no center cell", size)
	}
	return nil
}

// Size returns the window extent of the element.
func (se *StructuringElement) Size() int {
	return se.size
}

// Dilate replaces every sample with the maximum over its neighborhood.
// Samples outside the field are replicated from the nearest edge, so a border
// cell only competes against samples that actually exist.
func Dilate(field *mat.Dense, se *StructuringElement) (*mat.Dense, error) {
	return morphoApply(field, se, math.Inf(-1), math.Max)
}

// Erode replaces every sample with the minimum over its neighborhood, with the
// same border replication as Dilate.
func Erode(field *mat.Dense, se *StructuringElement) (*mat.Dense, error) {
	return morphoApply(field, se, math.Inf(1), math.Min)
}

func morphoApply(field *mat.Dense, se *StructuringElement, init float64, pick func(a, b float64) float64) (*mat.Dense, error) {
	if field == nil {
		return nil, ErrNilField
	}
	if se == nil || len(se.offsets) == 0 {
		return nil, errors.Wrap(ErrInvalidNeighborhood, "nil or empty structuring element")
	}
	half := se.size / 2
	padded, err := PaddingFloat64(field, image.Point{se.size, se.size}, image.Point{half, half}, BorderReplicate)
	if err != nil {
		return nil, err
	}
	nRows, nCols := field.Dims()
	out := mat.NewDense(nRows, nCols, nil)
	for r := 0; r < nRows; r++ {
		for c := 0; c < nCols; c++ {
			v := init
			for _, off := range se.offsets {
				v = pick(v, padded.At(r+half+off.Y, c+half+off.X))
			}
			out.Set(r, c, v)
		}
	}
	return out, nil
}

// DilateSquare performs a dilation with a square structuring element of the
// given size.
func DilateSquare(field *mat.Dense, size int) (*mat.Dense, error) {
	se, err := NewSquareElement(size)
	if err != nil {
		return nil, err
	}
	return Dilate(field, se)
}

// ErodeSquare performs an erosion with a square structuring element of the
// given size.
func ErodeSquare(field *mat.Dense, size int) (*mat.Dense, error) {
	se, err := NewSquareElement(size)
	if err != nil {
		return nil, err
	}
	return Erode(field, se)
}

// DilateCross performs a dilation with the 3x3 cross element.
func DilateCross(field *mat.Dense) (*mat.Dense, error) {
	se, err := NewCrossElement(3)
	if err != nil {
		return nil, err
	}
	return Dilate(field, se)
}

// ErodeCross performs an erosion with the 3x3 cross element.
func ErodeCross(field *mat.Dense) (*mat.Dense, error) {
	se, err := NewCrossElement(3)
	if err != nil {
		return nil, err
	}
	return Erode(field, se)
}

// MorphoGradientCross returns the morphological gradient, dilation minus
// erosion with the 3x3 cross element, a cheap edge strength map.
func MorphoGradientCross(field *mat.Dense) (*mat.Dense, error) {
	dilated, err := DilateCross(field)
	if err != nil {
		return nil, err
	}
	eroded, err := ErodeCross(field)
	if err != nil {
		return nil, err
	}
	nRows, nCols := field.Dims()
	out := mat.NewDense(nRows, nCols, nil)
	out.Sub(dilated, eroded)
	return out, nil
}
