package fimage

import (
	"image"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Border selects how samples outside the field are synthesized when padding.
type Border int

const (
	// BorderConstant fills the margin with zeros.
	BorderConstant Border = iota
	// BorderReplicate repeats the nearest edge sample.
	BorderReplicate
	// BorderReflect mirrors the samples adjacent to the edge.
	BorderReflect
)

// PaddingFloat64 returns a copy of m enlarged to fit a kernel of the given
// size, with the original samples offset by the anchor and the margin filled
// according to the border policy. The anchor must lie inside the kernel.
func PaddingFloat64(m *mat.Dense, kernelSize, anchor image.Point, border Border) (*mat.Dense, error) {
	if m == nil {
		return nil, ErrNilField
	}
	if kernelSize.X <= 0 || kernelSize.Y <= 0 {
		return nil, errors.Wrapf(ErrInvalidNeighborhood, "kernel size %v", kernelSize)
	}
	if anchor.X < 0 || anchor.Y < 0 || anchor.X >= kernelSize.X || anchor.Y >= kernelSize.Y {
		return nil, errors.Wrapf(ErrInvalidNeighborhood, "anchor %v outside kernel of size %v", anchor, kernelSize)
	}
	nRows, nCols := m.Dims()
	top, left := anchor.Y, anchor.X
	bottom, right := kernelSize.Y-anchor.Y-1, kernelSize.X-anchor.X-1
	padded := mat.NewDense(nRows+top+bottom, nCols+left+right, nil)
	for r := 0; r < nRows+top+bottom; r++ {
		for c := 0; c < nCols+left+right; c++ {
			sr, sc := r-top, c-left
			inside := sr >= 0 && sr < nRows && sc >= 0 && sc < nCols
			switch {
			case inside:
				padded.Set(r, c, m.At(sr, sc))
			case border == BorderConstant:
				// margin stays zero
			case border == BorderReplicate:
				padded.Set(r, c, m.At(clampInt(sr, 0, nRows-1), clampInt(sc, 0, nCols-1)))
			case border == BorderReflect:
				padded.Set(r, c, m.At(reflectIndex(sr, nRows), reflectIndex(sc, nCols)))
			}
		}
	}
	return padded, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// reflectIndex mirrors an out of range index back into [0, n), repeating the
// edge sample (the "reflect 101" style without the doubled edge is not needed
// for the small margins used here).
func reflectIndex(v, n int) int {
	for v < 0 || v >= n {
		if v < 0 {
			v = -v - 1
		}
		if v >= n {
			v = 2*n - v - 1
		}
	}
	return v
}
