package transform

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// zeroWeightTol bounds the homogeneous weight below which a projected point is
// treated as mapped to infinity.
const zeroWeightTol = 1e-12

// Homography is a 3x3 matrix representing a projective transform between two
// image planes, defined up to a nonzero scale factor. It is immutable once
// constructed.
type Homography struct {
	matrix *mat.Dense
}

// NewHomography creates a Homography from a row-major slice of 9 values.
func NewHomography(vals []float64) (*Homography, error) {
	if len(vals) != 9 {
		return nil, errors.Errorf("input to NewHomography must have length of 9. Has length of %d", len(vals))
	}
	return &Homography{mat.NewDense(3, 3, vals)}, nil
}

// At returns the value of the homography at the given index.
func (h *Homography) At(row, col int) float64 {
	return h.matrix.At(row, col)
}

// Apply projects a point through the homography: the point is lifted to
// homogeneous coordinates, multiplied, and divided by the resulting weight. A
// weight of zero means the point maps to infinity and is surfaced as a
// degenerate geometry error rather than divided through.
func (h *Homography) Apply(pt r2.Point) (r2.Point, error) {
	x := h.At(0, 0)*pt.X + h.At(0, 1)*pt.Y + h.At(0, 2)
	y := h.At(1, 0)*pt.X + h.At(1, 1)*pt.Y + h.At(1, 2)
	w := h.At(2, 0)*pt.X + h.At(2, 1)*pt.Y + h.At(2, 2)
	if math.Abs(w) < zeroWeightTol {
		return r2.Point{}, errors.Wrapf(ErrDegenerateGeometry, "point (%v, %v) has homogeneous weight %v", pt.X, pt.Y, w)
	}
	return r2.Point{X: x / w, Y: y / w}, nil
}

// ApplyPoints projects every point in the set through the homography,
// preserving order. The first point mapped to infinity aborts the batch.
func (h *Homography) ApplyPoints(pts []r2.Point) ([]r2.Point, error) {
	out := make([]r2.Point, len(pts))
	for i, pt := range pts {
		p, err := h.Apply(pt)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// Inverse returns the inverse homography, mapping destination coordinates
// back to source coordinates.
func (h *Homography) Inverse() (*Homography, error) {
	var inv mat.Dense
	if err := inv.Inverse(h.matrix); err != nil {
		return nil, errors.Wrap(ErrDegenerateGeometry, "homography is not invertible")
	}
	return &Homography{&inv}, nil
}

// ReprojectionError returns the mean Euclidean distance between the projected
// source points and the destination points. Callers use it to validate a
// correspondence set against an estimated transform.
func ReprojectionError(h *Homography, src, dst []r2.Point) (float64, error) {
	if len(src) != len(dst) {
		return 0, errors.Wrapf(ErrShapeMismatch, "%d source points, %d destination points", len(src), len(dst))
	}
	if len(src) == 0 {
		return 0, errors.Wrap(ErrShapeMismatch, "no points to score")
	}
	projected, err := h.ApplyPoints(src)
	if err != nil {
		return 0, err
	}
	total := 0.
	for i, p := range projected {
		total += math.Hypot(p.X-dst[i].X, p.Y-dst[i].Y)
	}
	return total / float64(len(src)), nil
}
