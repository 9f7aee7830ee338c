// Package imgproc wraps the OpenCV primitives the feature pipeline consumes:
// grayscale conversion, the Sobel first-derivative operator, and uniform box
// filtering. Everything else in the module works on gonum matrices and plain
// Go images; gocv.Mat handles never escape this package's callers.
package imgproc

import (
	"fmt"
	"image"
	"runtime"
	"sync"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// ImageToMat converts a Go image.Image to a BGR gocv.Mat (parallelized).
func ImageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return gocv.Mat{}, fmt.Errorf("empty image: %dx%d", width, height)
	}

	// Create BGR Mat (OpenCV default)
	m := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)

	// Parallelize by horizontal stripes
	numWorkers := runtime.NumCPU()
	rowsPerWorker := (height + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		startY := w * rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > height {
			endY = height
		}
		if startY >= height {
			break
		}

		wg.Add(1)
		go func(yStart, yEnd int) {
			defer wg.Done()
			for y := yStart; y < yEnd; y++ {
				for x := 0; x < width; x++ {
					r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
					// OpenCV uses BGR order
					m.SetUCharAt(y, x*3+0, uint8(b>>8))
					m.SetUCharAt(y, x*3+1, uint8(g>>8))
					m.SetUCharAt(y, x*3+2, uint8(r>>8))
				}
			}
		}(startY, endY)
	}
	wg.Wait()

	return m, nil
}

// ToGrayMat converts an image to a single-channel 8-bit Mat. Grayscale
// inputs are copied directly; color inputs go through CvtColor.
func ToGrayMat(img image.Image) (gocv.Mat, error) {
	if gray, ok := img.(*image.Gray); ok {
		bounds := gray.Bounds()
		m := gocv.NewMatWithSize(bounds.Dy(), bounds.Dx(), gocv.MatTypeCV8UC1)
		for y := 0; y < bounds.Dy(); y++ {
			for x := 0; x < bounds.Dx(); x++ {
				m.SetUCharAt(y, x, gray.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
			}
		}
		return m, nil
	}

	bgr, err := ImageToMat(img)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer bgr.Close()

	grayMat := gocv.NewMat()
	gocv.CvtColor(bgr, &grayMat, gocv.ColorBGRToGray)
	return grayMat, nil
}

// GrayFromImage converts any image.Image to *image.Gray using the standard
// luminance conversion. Used by the descriptor stage, which samples raw
// pixel values and never needs a Mat.
func GrayFromImage(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			gray.Set(x, y, img.At(x+bounds.Min.X, y+bounds.Min.Y))
		}
	}
	return gray
}

// DenseFromMat copies a single-channel CV64F Mat into a gonum dense matrix.
func DenseFromMat(m gocv.Mat) (*mat.Dense, error) {
	if m.Channels() != 1 {
		return nil, fmt.Errorf("expected single-channel mat, got %d channels", m.Channels())
	}
	if m.Type() != gocv.MatTypeCV64F {
		return nil, fmt.Errorf("expected CV64F mat, got type %d", m.Type())
	}
	rows, cols := m.Rows(), m.Cols()
	out := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out.Set(y, x, m.GetDoubleAt(y, x))
		}
	}
	return out, nil
}

// matFromDense copies a gonum dense matrix into a CV64F Mat.
// The caller owns the returned Mat and must Close it.
func matFromDense(d *mat.Dense) gocv.Mat {
	rows, cols := d.Dims()
	m := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV64F)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			m.SetDoubleAt(y, x, d.At(y, x))
		}
	}
	return m
}
