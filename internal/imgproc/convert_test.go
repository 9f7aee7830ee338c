package imgproc

import (
	"image"
	"image/color"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestGrayFromImage(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			rgba.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(40 * y), B: 0, A: 255})
		}
	}
	gray := GrayFromImage(rgba)
	test.That(t, gray.Bounds().Dx(), test.ShouldEqual, 4)
	test.That(t, gray.Bounds().Dy(), test.ShouldEqual, 4)

	// already-gray input is returned as is
	same := GrayFromImage(gray)
	test.That(t, same, test.ShouldEqual, gray)
}

func TestToGrayMat(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 6, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			gray.SetGray(x, y, color.Gray{uint8(10*x + y)})
		}
	}
	m, err := ToGrayMat(gray)
	test.That(t, err, test.ShouldBeNil)
	defer m.Close()
	test.That(t, m.Rows(), test.ShouldEqual, 5)
	test.That(t, m.Cols(), test.ShouldEqual, 6)
	test.That(t, m.Channels(), test.ShouldEqual, 1)
	test.That(t, m.GetUCharAt(2, 3), test.ShouldEqual, uint8(32))
}

func TestSobelDerivativesRejectsColor(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 8, 8))
	bgr, err := ImageToMat(rgba)
	test.That(t, err, test.ShouldBeNil)
	defer bgr.Close()

	_, _, err = SobelDerivatives(bgr)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSobelDerivativesFlatImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			gray.SetGray(x, y, color.Gray{77})
		}
	}
	m, err := ToGrayMat(gray)
	test.That(t, err, test.ShouldBeNil)
	defer m.Close()

	ix, iy, err := SobelDerivatives(m)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mat.Max(ix), test.ShouldEqual, 0)
	test.That(t, mat.Min(ix), test.ShouldEqual, 0)
	test.That(t, mat.Max(iy), test.ShouldEqual, 0)
	test.That(t, mat.Min(iy), test.ShouldEqual, 0)
}

func TestBoxFilterDense(t *testing.T) {
	// a centered unit impulse spreads to the window mean
	src := mat.NewDense(9, 9, nil)
	src.Set(4, 4, 25)

	out := BoxFilterDense(src, 5)
	rows, cols := out.Dims()
	test.That(t, rows, test.ShouldEqual, 9)
	test.That(t, cols, test.ShouldEqual, 9)
	for y := 2; y <= 6; y++ {
		for x := 2; x <= 6; x++ {
			test.That(t, out.At(y, x), test.ShouldAlmostEqual, 1.0, 1e-9)
		}
	}
	test.That(t, out.At(0, 0), test.ShouldAlmostEqual, 0, 1e-9)
}
