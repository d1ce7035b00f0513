package fimage

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// HarrisConfig stores the parameters of the Harris corner response.
type HarrisConfig struct {
	K          float64 `json:"k"`        // trace sensitivity, usually 0.04-0.06
	WindowSize int     `json:"win-size"` // odd extent of the second-moment window
}

// DefaultHarrisConfig stores the usual parameters for corner detection.
var DefaultHarrisConfig = HarrisConfig{
	K:          0.04,
	WindowSize: 3,
}

// HarrisResponse computes the Harris corner response det(M) - k*trace(M)^2 of
// a grayscale field, where M is the windowed second-moment matrix of the
// Sobel gradients. Corner-like cells score high positive, edges negative and
// flat regions zero; feed the result to RegionalMaxima to localize interest
// points.
func HarrisResponse(img *mat.Dense, cfg *HarrisConfig) (*mat.Dense, error) {
	if img == nil {
		return nil, ErrNilField
	}
	if cfg == nil {
		cfg = &DefaultHarrisConfig
	}
	if err := checkElementSize(cfg.WindowSize); err != nil {
		return nil, err
	}
	nRows, nCols := img.Dims()
	sobelX := GetSobelX()
	sobelY := GetSobelY()
	gX, err := ConvolveFloat64(img, &sobelX)
	if err != nil {
		return nil, err
	}
	gY, err := ConvolveFloat64(img, &sobelY)
	if err != nil {
		return nil, err
	}
	ixx := mat.NewDense(nRows, nCols, nil)
	iyy := mat.NewDense(nRows, nCols, nil)
	ixy := mat.NewDense(nRows, nCols, nil)
	ixx.MulElem(gX, gX)
	iyy.MulElem(gY, gY)
	ixy.MulElem(gX, gY)
	box := boxKernel(cfg.WindowSize)
	sxx, err := ConvolveFloat64(ixx, &box)
	if err != nil {
		return nil, err
	}
	syy, err := ConvolveFloat64(iyy, &box)
	if err != nil {
		return nil, err
	}
	sxy, err := ConvolveFloat64(ixy, &box)
	if err != nil {
		return nil, err
	}
	det := mat.NewDense(nRows, nCols, nil)
	tmp := mat.NewDense(nRows, nCols, nil)
	det.MulElem(sxx, syy)
	tmp.MulElem(sxy, sxy)
	det.Sub(det, tmp)
	trace := mat.NewDense(nRows, nCols, nil)
	trace.Add(sxx, syy)
	trace.MulElem(trace, trace)
	trace.Scale(cfg.K, trace)
	response := mat.NewDense(nRows, nCols, nil)
	response.Sub(det, trace)
	return response, nil
}

// ConvertGrayToFloat copies an 8 bit grayscale image into a float64 field,
// with rows indexing y and columns indexing x. Decoding images from disk is a
// caller concern.
func ConvertGrayToFloat(img *image.Gray) *mat.Dense {
	bounds := img.Bounds()
	nRows, nCols := bounds.Dy(), bounds.Dx()
	if nRows == 0 || nCols == 0 {
		return nil
	}
	out := mat.NewDense(nRows, nCols, nil)
	for y := 0; y < nRows; y++ {
		for x := 0; x < nCols; x++ {
			out.Set(y, x, float64(img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y))
		}
	}
	return out
}
