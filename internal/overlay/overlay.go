// Package overlay renders detection results for inspection: corner markers
// on a single image and side-by-side match lines for an image pair.
package overlay

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"

	"featmatch/internal/features"
	"featmatch/pkg/geometry"
)

const cornerRadius = 3.0

// PlotCorners draws a circle on every corner and writes the result as PNG.
func PlotCorners(img image.Image, corners []geometry.PointInt, outPath string) error {
	bounds := img.Bounds()
	dc := gg.NewContext(bounds.Dx(), bounds.Dy())
	dc.DrawImage(img, 0, 0)

	dc.SetRGBA(0, 0, 1, 0.5)
	for _, c := range corners {
		dc.DrawCircle(float64(c.X), float64(c.Y), cornerRadius)
		dc.Fill()
	}
	return errors.Wrap(dc.SavePNG(outPath), "save corner plot")
}

// DrawMatches renders the two images side by side and draws a line between
// every matched corner pair. Entries without a partner are skipped.
func DrawMatches(imgA, imgB image.Image, res *features.MatchResult, outPath string) error {
	if res == nil {
		return errors.New("nil match result")
	}
	ba, bb := imgA.Bounds(), imgB.Bounds()
	width := ba.Dx() + bb.Dx()
	height := max(ba.Dy(), bb.Dy())

	dc := gg.NewContext(width, height)
	dc.DrawImage(imgA, 0, 0)
	dc.DrawImage(imgB, ba.Dx(), 0)

	// right-hand corners shift by the width of the left image
	offset := geometry.NewPoint2D(float64(ba.Dx()), 0)

	dc.SetRGBA(0, 1, 0, 0.7)
	dc.SetLineWidth(1)
	for _, m := range res.Matches {
		if m.Partner == features.NoPartner {
			continue
		}
		a := res.A.Corners[m.Index].ToFloat()
		b := res.B.Corners[m.Partner].ToFloat().Add(offset)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()

		dc.DrawCircle(a.X, a.Y, cornerRadius)
		dc.Fill()
		dc.DrawCircle(b.X, b.Y, cornerRadius)
		dc.Fill()
	}
	return errors.Wrap(dc.SavePNG(outPath), "save match plot")
}
