package transform

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestNewHomography(t *testing.T) {
	_, err := NewHomography([]float64{})
	test.That(t, err, test.ShouldBeError, errors.New("input to NewHomography must have length of 9. Has length of 0"))

	vals := []float64{2.32700501e-01, -8.33535395e-03, -3.61894025e+01, -1.90671303e-03, 2.35303232e-01, 8.38582614e+00, -6.39101664e-05, -4.64582754e-05, 1.00000000e+00}
	h, err := NewHomography(vals)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, h.At(0, 0), test.ShouldAlmostEqual, 2.32700501e-01)
	test.That(t, h.At(2, 2), test.ShouldAlmostEqual, 1.)
}

func TestHomographyApply(t *testing.T) {
	translate, err := NewHomography([]float64{
		1, 0, 5,
		0, 1, -2,
		0, 0, 1,
	})
	test.That(t, err, test.ShouldBeNil)
	pt, err := translate.Apply(r2.Point{X: 3, Y: 4})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pt.X, test.ShouldAlmostEqual, 8)
	test.That(t, pt.Y, test.ShouldAlmostEqual, 2)

	pts, err := translate.ApplyPoints([]r2.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pts[0].X, test.ShouldAlmostEqual, 5)
	test.That(t, pts[0].Y, test.ShouldAlmostEqual, -2)
	test.That(t, pts[1].X, test.ShouldAlmostEqual, 6)
	test.That(t, pts[1].Y, test.ShouldAlmostEqual, -1)
}

func TestHomographyApplyZeroWeight(t *testing.T) {
	// bottom row (1, 0, 0) sends the x = 0 line to infinity
	h, err := NewHomography([]float64{
		1, 0, 0,
		0, 1, 0,
		1, 0, 0,
	})
	test.That(t, err, test.ShouldBeNil)

	pt, err := h.Apply(r2.Point{X: 2, Y: 3})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pt.X, test.ShouldAlmostEqual, 1)

	_, err = h.Apply(r2.Point{X: 0, Y: 3})
	test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)

	_, err = h.ApplyPoints([]r2.Point{{X: 2, Y: 3}, {X: 0, Y: 1}})
	test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)
}

func TestHomographyInverse(t *testing.T) {
	h, err := NewHomography([]float64{
		2, 0, 3,
		0, 4, -1,
		0, 0, 1,
	})
	test.That(t, err, test.ShouldBeNil)
	inv, err := h.Inverse()
	test.That(t, err, test.ShouldBeNil)

	orig := r2.Point{X: 1.5, Y: -2.5}
	fwd, err := h.Apply(orig)
	test.That(t, err, test.ShouldBeNil)
	back, err := inv.Apply(fwd)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, back.X, test.ShouldAlmostEqual, orig.X)
	test.That(t, back.Y, test.ShouldAlmostEqual, orig.Y)

	singular, err := NewHomography([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 0,
	})
	test.That(t, err, test.ShouldBeNil)
	_, err = singular.Inverse()
	test.That(t, errors.Is(err, ErrDegenerateGeometry), test.ShouldBeTrue)
}

func TestReprojectionError(t *testing.T) {
	identity, err := NewHomography([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	test.That(t, err, test.ShouldBeNil)
	pts := []r2.Point{{X: 0, Y: 0}, {X: 2, Y: 1}, {X: -1, Y: 4}}

	residual, err := ReprojectionError(identity, pts, pts)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, residual, test.ShouldAlmostEqual, 0)

	shifted := []r2.Point{{X: 3, Y: 4}, {X: 5, Y: 5}, {X: 2, Y: 8}}
	residual, err = ReprojectionError(identity, pts, shifted)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, residual, test.ShouldAlmostEqual, 5)

	_, err = ReprojectionError(identity, pts, shifted[:2])
	test.That(t, errors.Is(err, ErrShapeMismatch), test.ShouldBeTrue)
	_, err = ReprojectionError(identity, nil, nil)
	test.That(t, errors.Is(err, ErrShapeMismatch), test.ShouldBeTrue)
}
