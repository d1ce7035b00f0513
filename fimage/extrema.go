// Package fimage implements processing primitives over float64 scalar fields
// stored as gonum dense matrices: border padding, convolution, morphological
// operators, corner response computation and regional-maximum extraction for
// interest point localization.
package fimage

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// RegionalMaxima returns a same-shaped mask holding 1 at the local maxima of
// the field and 0 elsewhere. A cell is marked iff it equals the dilation of
// the field (no neighbor exceeds it) and strictly exceeds its erosion (it is
// not inside a constant neighborhood).
//
// Flat plateaus are therefore not reported: the interior of a constant region
// equals both its dilation and its erosion, while the ring of cells just
// inside the region boundary still sees a smaller neighbor and is kept. This
// is an intentional two-pass approximation, not a connected-component
// labeling of flat regions.
func RegionalMaxima(field *mat.Dense, se *StructuringElement) (*mat.Dense, error) {
	dilated, err := Dilate(field, se)
	if err != nil {
		return nil, err
	}
	eroded, err := Erode(field, se)
	if err != nil {
		return nil, err
	}
	nRows, nCols := field.Dims()
	mask := mat.NewDense(nRows, nCols, nil)
	for r := 0; r < nRows; r++ {
		for c := 0; c < nCols; c++ {
			v := field.At(r, c)
			if v >= dilated.At(r, c) && v > eroded.At(r, c) {
				mask.Set(r, c, 1)
			}
		}
	}
	return mask, nil
}

// RegionalMaxima3x3 runs RegionalMaxima with the default 8-connected window.
func RegionalMaxima3x3(field *mat.Dense) (*mat.Dense, error) {
	se, err := NewSquareElement(3)
	if err != nil {
		return nil, err
	}
	return RegionalMaxima(field, se)
}

// RegionalMaximaPoints returns the coordinates of the cells marked by
// RegionalMaxima, with X indexing the column and Y the row, ordered row-major.
func RegionalMaximaPoints(field *mat.Dense, se *StructuringElement) ([]image.Point, error) {
	mask, err := RegionalMaxima(field, se)
	if err != nil {
		return nil, err
	}
	nRows, nCols := mask.Dims()
	points := make([]image.Point, 0)
	for r := 0; r < nRows; r++ {
		for c := 0; c < nCols; c++ {
			if mask.At(r, c) > 0 {
				points = append(points, image.Point{c, r})
			}
		}
	}
	return points, nil
}
