package transform

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShapeMismatch is returned when the source and destination point sets
	// cannot form a correspondence.
	ErrShapeMismatch = errors.New("source and destination shapes do not match")
	// ErrInsufficientCorrespondences is returned when fewer than four pairs
	// are supplied.
	ErrInsufficientCorrespondences = errors.New("not enough correspondences")
	// ErrDegenerateGeometry is returned for rank-deficient correspondence
	// sets and for points mapped to infinity.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// minHomographyPoints is the smallest correspondence count that pins down the
// 8 degrees of freedom of a homography up to scale.
const minHomographyPoints = 4

// rankTol is the relative singular value threshold under which the linear
// system is considered rank deficient.
const rankTol = 1e-9

// EstimateHomography estimates the homography mapping src[i] onto dst[i] with
// the direct linear transform: each correspondence contributes two rows to a
// 2Nx9 system A*h = 0, and h is the right singular vector of the smallest
// singular value of A. With exactly consistent correspondences the returned
// matrix satisfies the system exactly; otherwise it is the least-squares
// minimizer of |A*h| subject to |h| = 1. The result is defined up to scale;
// callers needing a fixed scale must normalize it themselves, e.g. by the
// bottom-right entry.
//
// With normalize set, both point sets are conditioned as described in
// Multiple View Geometry, Alg 4.2 (centroid shift and sqrt(2) mean distance)
// and the estimate is mapped back afterwards. Pixel-scale coordinates should
// use it.
//
// Correspondence sets whose system has a null space of more than one
// dimension (collinear or repeated points) are rejected with
// ErrDegenerateGeometry instead of returning a numerically meaningless
// matrix.
func EstimateHomography(src, dst []r2.Point, normalize bool) (*Homography, error) {
	if err := validateCorrespondences(src, dst); err != nil {
		return nil, err
	}

	points1, points2 := src, dst
	var t1, t2 *mat.Dense
	if normalize {
		points1, t1 = normalizePoints(src)
		points2, t2 = normalizePoints(dst)
	}

	nPoints := len(points1)
	a := mat.NewDense(2*nPoints, 9, nil)
	for i := range points1 {
		s := points1[i]
		d := points2[i]
		a.SetRow(2*i, []float64{s.X, s.Y, 1, 0, 0, 0, -d.X * s.X, -d.X * s.Y, -d.X})
		a.SetRow(2*i+1, []float64{0, 0, 0, s.X, s.Y, 1, -d.Y * s.X, -d.Y * s.Y, -d.Y})
	}

	mats, err := performSVD(a)
	if err != nil {
		return nil, err
	}
	// a rank below 8 leaves a null space spanning more than one dimension
	if mats.values[0] < rankTol || mats.values[7] < rankTol*mats.values[0] {
		return nil, errors.Wrap(ErrDegenerateGeometry, "correspondences are collinear or repeated")
	}
	lastColV := mats.V.ColView(8)
	h := make([]float64, 9)
	for i := range h {
		h[i] = lastColV.AtVec(i)
	}
	homography := mat.NewDense(3, 3, h)

	if normalize {
		// rescale: H = T2^-1 @ Hn @ T1
		var t2Inv mat.Dense
		if err := t2Inv.Inverse(t2); err != nil {
			return nil, errors.Wrap(ErrDegenerateGeometry, "conditioning transform is singular")
		}
		homography.Mul(&t2Inv, homography)
		homography.Mul(homography, t1)
	}
	return &Homography{homography}, nil
}

// normalizePoints conditions points as described in Multiple View Geometry,
// Alg 4.2: shift to the centroid and scale the mean distance to sqrt(2).
// Returns the transformed points and the 3x3 transform that produced them.
func normalizePoints(pts []r2.Point) ([]r2.Point, *mat.Dense) {
	nPoints := len(pts)
	// compute centroid of points
	mu := r2.Point{}
	for _, pt := range pts {
		mu.X += pt.X
		mu.Y += pt.Y
	}
	mu = mu.Mul(1. / float64(nPoints))
	// compute scale factor
	d := 0.0
	for _, pt := range pts {
		x2 := (pt.X - mu.X) * (pt.X - mu.X)
		y2 := (pt.Y - mu.Y) * (pt.Y - mu.Y)
		d += math.Sqrt(x2+y2) / float64(nPoints)
	}
	if d < zeroWeightTol {
		// all points coincide; the rank check downstream rejects the set
		out := make([]r2.Point, nPoints)
		copy(out, pts)
		return out, eye(3)
	}
	scale := math.Sqrt(2) / d
	transformData := []float64{
		scale, 0, -scale * mu.X,
		0, scale, -scale * mu.Y,
		0, 0, 1,
	}
	t := mat.NewDense(3, 3, transformData)
	// apply transform to points
	pointsTransformed := make([]r2.Point, nPoints)
	for i := range pointsTransformed {
		pointsTransformed[i] = r2.Point{X: scale * (pts[i].X - mu.X), Y: scale * (pts[i].Y - mu.Y)}
	}
	return pointsTransformed, t
}

// eye creates an identity matrix of size nxn.
func eye(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// matsSVD stores the matrices from SVD decomposition, with the singular
// values in descending order.
type matsSVD struct {
	U      *mat.Dense
	V      *mat.Dense
	values []float64
}

// performSVD performs a full SVD on the input matrix and returns the factors.
func performSVD(inputMatrix *mat.Dense) (*matsSVD, error) {
	var svd mat.SVD
	if ok := svd.Factorize(inputMatrix, mat.SVDFull); !ok {
		return nil, errors.New("svd factorization failed")
	}
	u, v := &mat.Dense{}, &mat.Dense{}
	svd.UTo(u)
	svd.VTo(v)
	return &matsSVD{u, v, svd.Values(nil)}, nil
}
