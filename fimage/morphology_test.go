package fimage

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func rampField() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
}

func TestDilateSquare(t *testing.T) {
	dilated, err := DilateSquare(rampField(), 3)
	test.That(t, err, test.ShouldBeNil)
	expected := mat.NewDense(3, 3, []float64{
		5, 6, 6,
		8, 9, 9,
		8, 9, 9,
	})
	test.That(t, mat.EqualApprox(dilated, expected, 1e-12), test.ShouldBeTrue)
}

func TestErodeSquare(t *testing.T) {
	eroded, err := ErodeSquare(rampField(), 3)
	test.That(t, err, test.ShouldBeNil)
	expected := mat.NewDense(3, 3, []float64{
		1, 1, 2,
		1, 1, 2,
		4, 4, 5,
	})
	test.That(t, mat.EqualApprox(eroded, expected, 1e-12), test.ShouldBeTrue)
}

func TestDilateCross(t *testing.T) {
	dilated, err := DilateCross(rampField())
	test.That(t, err, test.ShouldBeNil)
	expected := mat.NewDense(3, 3, []float64{
		4, 5, 6,
		7, 8, 9,
		8, 9, 9,
	})
	test.That(t, mat.EqualApprox(dilated, expected, 1e-12), test.ShouldBeTrue)
}

func TestErodeCross(t *testing.T) {
	eroded, err := ErodeCross(rampField())
	test.That(t, err, test.ShouldBeNil)
	expected := mat.NewDense(3, 3, []float64{
		1, 1, 2,
		1, 2, 3,
		4, 5, 6,
	})
	test.That(t, mat.EqualApprox(eroded, expected, 1e-12), test.ShouldBeTrue)
}

func TestMorphoGradientCross(t *testing.T) {
	gradient, err := MorphoGradientCross(rampField())
	test.That(t, err, test.ShouldBeNil)
	expected := mat.NewDense(3, 3, []float64{
		3, 4, 4,
		6, 6, 6,
		4, 4, 3,
	})
	test.That(t, mat.EqualApprox(gradient, expected, 1e-12), test.ShouldBeTrue)
}

func TestStructuringElementErrors(t *testing.T) {
	_, err := NewSquareElement(0)
	test.That(t, errors.Is(err, ErrInvalidNeighborhood), test.ShouldBeTrue)
	_, err = NewSquareElement(4)
	test.That(t, errors.Is(err, ErrInvalidNeighborhood), test.ShouldBeTrue)
	_, err = NewCrossElement(-3)
	test.That(t, errors.Is(err, ErrInvalidNeighborhood), test.ShouldBeTrue)

	se, err := NewSquareElement(3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, se.Size(), test.ShouldEqual, 3)
	_, err = Dilate(nil, se)
	test.That(t, errors.Is(err, ErrNilField), test.ShouldBeTrue)
	_, err = Erode(rampField(), nil)
	test.That(t, errors.Is(err, ErrInvalidNeighborhood), test.ShouldBeTrue)
}
