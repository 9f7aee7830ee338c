// Package features implements the corner detection and matching pipeline:
// Sobel gradients, structure-tensor corner response (lambda-minus and
// Harris), corner selection, patch descriptors, and exhaustive descriptor
// matching.
//
// Every stage is a pure function of its inputs. Corners use the module-wide
// (X=column, Y=row) convention documented in pkg/geometry.
package features

import (
	"image"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"featmatch/internal/imgproc"
)

// GradientPair holds the horizontal and vertical intensity derivatives of a
// grayscale image. Ix.At(y, x) is the horizontal derivative at pixel (x, y),
// Iy.At(y, x) the vertical one.
type GradientPair struct {
	Ix *mat.Dense
	Iy *mat.Dense
}

// Dims returns the height and width of the gradient fields.
func (g *GradientPair) Dims() (rows, cols int) {
	return g.Ix.Dims()
}

// ComputeGradients computes 3x3 Sobel derivatives of an image at double
// precision. Color input is converted to grayscale first; the derivative
// operator itself only ever sees a single channel and rejects anything else.
func ComputeGradients(img image.Image) (*GradientPair, error) {
	grayMat, err := imgproc.ToGrayMat(img)
	if err != nil {
		return nil, errors.Wrap(err, "grayscale conversion")
	}
	defer grayMat.Close()

	ix, iy, err := imgproc.SobelDerivatives(grayMat)
	if err != nil {
		return nil, errors.Wrap(err, "sobel derivatives")
	}
	return &GradientPair{Ix: ix, Iy: iy}, nil
}
