package fimage

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// Kernel is a 2D convolution kernel. Indices of Content are [row][column].
type Kernel struct {
	Content [][]float64
	Width   int
	Height  int
}

// Size returns the kernel extent.
func (k *Kernel) Size() image.Point {
	return image.Point{k.Width, k.Height}
}

// At returns the kernel coefficient at (x, y).
func (k *Kernel) At(x, y int) float64 {
	return k.Content[y][x]
}

// GetSobelX returns the Kernel corresponding to the Sobel kernel in the x direction.
func GetSobelX() Kernel {
	return Kernel{[][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}, 3, 3}
}

// GetSobelY returns the Kernel corresponding to the Sobel kernel in the y direction.
func GetSobelY() Kernel {
	return Kernel{[][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}, 3, 3}
}

// boxKernel returns a size x size kernel of ones, used for windowed sums.
func boxKernel(size int) Kernel {
	content := make([][]float64, size)
	for y := range content {
		row := make([]float64, size)
		for x := range row {
			row[x] = 1
		}
		content[y] = row
	}
	return Kernel{content, size, size}
}

// ConvolveFloat64 implements a float64 field convolution with the Kernel
// filter. The output keeps the input shape; samples outside the field read as
// zero. There is no clamping of the result.
func ConvolveFloat64(m *mat.Dense, filter *Kernel) (*mat.Dense, error) {
	if m == nil {
		return nil, ErrNilField
	}
	h, w := m.Dims()
	result := mat.NewDense(h, w, nil)
	kernelSize := filter.Size()
	anchor := image.Point{kernelSize.X / 2, kernelSize.Y / 2}
	padded, err := PaddingFloat64(m, kernelSize, anchor, BorderConstant)
	if err != nil {
		return nil, err
	}
	parallelForEachCell(image.Point{w, h}, func(x, y int) {
		sum := float64(0)
		for ky := 0; ky < kernelSize.Y; ky++ {
			for kx := 0; kx < kernelSize.X; kx++ {
				sum += padded.At(y+ky, x+kx) * filter.At(kx, ky)
			}
		}
		result.Set(y, x, sum)
	})
	return result, nil
}
