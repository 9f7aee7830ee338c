package features

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"featmatch/internal/imgproc"
)

// Scorer turns a gradient field into a per-pixel corner response map.
// Higher values mean stronger corner evidence. Implementations are
// stateless and deterministic.
type Scorer interface {
	Score(g *GradientPair) *mat.Dense
}

// DefaultHarrisK is the standard Harris sensitivity constant; it penalizes
// edge-like regions where one eigenvalue dominates the other.
const DefaultHarrisK = 0.04

// DefaultWindowSize is the default tensor aggregation / NMS window size.
const DefaultWindowSize = 5

// windowedTensor box-filters the three structure tensor entries over a
// window x window neighborhood, approximating the windowed structure
// tensor. The pointwise tensor is the outer product of a single gradient
// vector and therefore rank one, so both scoring rules need the local
// aggregation to produce a usable corner signal.
func windowedTensor(g *GradientPair, window int) (sx2, sy2, sxy *mat.Dense) {
	rows, cols := g.Dims()
	ix2 := mat.NewDense(rows, cols, nil)
	iy2 := mat.NewDense(rows, cols, nil)
	ixy := mat.NewDense(rows, cols, nil)
	ix2.MulElem(g.Ix, g.Ix)
	iy2.MulElem(g.Iy, g.Iy)
	ixy.MulElem(g.Ix, g.Iy)

	sx2 = imgproc.BoxFilterDense(ix2, window)
	sy2 = imgproc.BoxFilterDense(iy2, window)
	sxy = imgproc.BoxFilterDense(ixy, window)
	return sx2, sy2, sxy
}

// LambdaMinScorer scores each pixel with the smaller eigenvalue of the
// structure tensor aggregated over a WindowSize window. The smaller
// eigenvalue stays low in flat regions and along edges and rises only
// where intensity varies in both principal directions.
type LambdaMinScorer struct {
	WindowSize int // aggregation window side length, DefaultWindowSize if zero
}

// Score implements Scorer.
func (s LambdaMinScorer) Score(g *GradientPair) *mat.Dense {
	window := s.WindowSize
	if window <= 0 {
		window = DefaultWindowSize
	}
	sx2, sy2, sxy := windowedTensor(g, window)

	rows, cols := g.Dims()
	resp := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			a := sx2.At(y, x)
			b := sy2.At(y, x)
			c := sxy.At(y, x)

			// Closed-form eigenvalues of [[a, c], [c, b]]:
			// lambda = (tr +- sqrt(tr^2 - 4*det)) / 2
			tr := a + b
			det := a*b - c*c
			disc := tr*tr - 4*det
			if disc < 0 {
				// rounding only; the tensor is positive semi-definite
				disc = 0
			}
			resp.Set(y, x, (tr-math.Sqrt(disc))/2)
		}
	}
	return resp
}

// HarrisScorer scores the windowed structure tensor with the Harris
// response R = Sx2*Sy2 - Sxy^2 - k*(Sx2+Sy2)^2, avoiding the explicit
// eigenvalue computation.
type HarrisScorer struct {
	WindowSize int     // aggregation window side length, DefaultWindowSize if zero
	K          float64 // edge sensitivity constant, DefaultHarrisK if zero
}

// Score implements Scorer.
func (s HarrisScorer) Score(g *GradientPair) *mat.Dense {
	window := s.WindowSize
	if window <= 0 {
		window = DefaultWindowSize
	}
	k := s.K
	if k == 0 {
		k = DefaultHarrisK
	}
	sx2, sy2, sxy := windowedTensor(g, window)

	rows, cols := g.Dims()
	resp := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			a := sx2.At(y, x)
			b := sy2.At(y, x)
			c := sxy.At(y, x)
			tr := a + b
			resp.Set(y, x, a*b-c*c-k*tr*tr)
		}
	}
	return resp
}
