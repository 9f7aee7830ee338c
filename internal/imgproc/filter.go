package imgproc

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// SobelDerivatives computes the horizontal and vertical 3x3 Sobel
// derivatives of a single-channel Mat at 64-bit float precision.
// Multi-channel input is rejected; the caller must convert first.
func SobelDerivatives(gray gocv.Mat) (ix, iy *mat.Dense, err error) {
	if gray.Empty() {
		return nil, nil, fmt.Errorf("empty image")
	}
	if gray.Channels() != 1 {
		return nil, nil, fmt.Errorf("gradient input must be single-channel, got %d channels", gray.Channels())
	}

	sobelX := gocv.NewMat()
	defer sobelX.Close()
	gocv.Sobel(gray, &sobelX, gocv.MatTypeCV64F, 1, 0, 3, 1, 0, gocv.BorderDefault)

	sobelY := gocv.NewMat()
	defer sobelY.Close()
	gocv.Sobel(gray, &sobelY, gocv.MatTypeCV64F, 0, 1, 3, 1, 0, gocv.BorderDefault)

	ix, err = DenseFromMat(sobelX)
	if err != nil {
		return nil, nil, fmt.Errorf("horizontal derivative: %w", err)
	}
	iy, err = DenseFromMat(sobelY)
	if err != nil {
		return nil, nil, fmt.Errorf("vertical derivative: %w", err)
	}

	if !allFinite(ix) || !allFinite(iy) {
		return nil, nil, fmt.Errorf("non-finite values in gradient field")
	}
	return ix, iy, nil
}

// BoxFilterDense applies a normalized window x window box filter (local mean)
// to a dense matrix, round-tripping through OpenCV.
func BoxFilterDense(src *mat.Dense, window int) *mat.Dense {
	in := matFromDense(src)
	defer in.Close()

	out := gocv.NewMat()
	defer out.Close()
	gocv.BoxFilter(in, &out, -1, image.Point{X: window, Y: window})

	filtered, err := DenseFromMat(out)
	if err != nil {
		// BoxFilter preserves CV64F single-channel type, so this cannot fail
		// for inputs produced by matFromDense.
		panic(fmt.Sprintf("box filter output conversion: %v", err))
	}
	return filtered
}

func allFinite(d *mat.Dense) bool {
	rows, cols := d.Dims()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := d.At(y, x)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
