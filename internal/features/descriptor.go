package features

import (
	"image"

	"github.com/pkg/errors"

	"featmatch/pkg/geometry"
)

// Descriptor is the row-major flattening of a patchSize x patchSize
// grayscale patch centered on a corner. All descriptors produced by one
// extraction call have identical length patchSize*patchSize.
type Descriptor []float64

// DefaultPatchSize is the default descriptor patch side length.
const DefaultPatchSize = 16

// ExtractDescriptors crops a patch around each corner and flattens it into
// a descriptor. Corners whose patch would be clipped by the image boundary
// produce no descriptor and are silently dropped, so the output can be
// shorter than the input. The returned corner slice holds the corners that
// survived, in their original relative order, aligned index-for-index with
// the descriptors.
//
// patchSize must be positive and even so the patch centers cleanly.
func ExtractDescriptors(img *image.Gray, corners []geometry.PointInt, patchSize int) ([]Descriptor, []geometry.PointInt, error) {
	if patchSize <= 0 || patchSize%2 != 0 {
		return nil, nil, errors.Errorf("patch size must be positive and even, got %d", patchSize)
	}
	bounds := img.Bounds()
	imgRect := geometry.NewRectInt(0, 0, bounds.Dx(), bounds.Dy())
	half := patchSize / 2

	descriptors := make([]Descriptor, 0, len(corners))
	kept := make([]geometry.PointInt, 0, len(corners))
	for _, c := range corners {
		window := geometry.NewRectInt(c.X-half, c.Y-half, patchSize, patchSize)
		if window.Intersect(imgRect) != window {
			// Patch runs past an image edge; the corner is excluded, not an error.
			continue
		}
		desc := make(Descriptor, 0, patchSize*patchSize)
		for y := window.Y; y < window.Y+window.Height; y++ {
			for x := window.X; x < window.X+window.Width; x++ {
				desc = append(desc, float64(img.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y))
			}
		}
		descriptors = append(descriptors, desc)
		kept = append(kept, c)
	}
	return descriptors, kept, nil
}
