package features

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"featmatch/pkg/geometry"
)

// SelectionStrategy picks corner coordinates out of a response map.
// Returned corners use the (X=col, Y=row) convention and are emitted in
// row-major scan order: Y ascending, then X ascending within a row.
type SelectionStrategy interface {
	Select(resp *mat.Dense) []geometry.PointInt
}

// NMSSelector thresholds the response at ThresholdFrac of its global
// maximum and keeps only pixels whose response equals the maximum of the
// (2w+1)x(2w+1) window around them. The comparison is greater-or-equal, so
// adjacent pixels with equal maximal response are all kept. Pixels within
// WindowSize of the image border are never selected.
//
// Selection is idempotent: a surviving corner is still the maximum of its
// window on a second pass over the same response map.
type NMSSelector struct {
	WindowSize    int
	ThresholdFrac float64
}

// Select implements SelectionStrategy.
func (s NMSSelector) Select(resp *mat.Dense) []geometry.PointInt {
	rows, cols := resp.Dims()
	w := s.WindowSize
	threshold := s.ThresholdFrac * mat.Max(resp)

	var corners []geometry.PointInt
	for y := w; y < rows-w; y++ {
		for x := w; x < cols-w; x++ {
			v := resp.At(y, x)
			if v <= threshold {
				continue
			}
			if v == windowMax(resp, y, x, w) {
				corners = append(corners, geometry.PointInt{X: x, Y: y})
			}
		}
	}
	return corners
}

func windowMax(resp *mat.Dense, cy, cx, w int) float64 {
	m := math.Inf(-1)
	for y := cy - w; y <= cy+w; y++ {
		for x := cx - w; x <= cx+w; x++ {
			if v := resp.At(y, x); v > m {
				m = v
			}
		}
	}
	return m
}

// ThresholdSelector keeps every pixel whose response exceeds ThresholdFrac
// of the global maximum, with no locality constraint, so a strong corner
// typically yields a dense cluster of candidates. MinDistance > 0 enables a
// greedy post-filter that drops candidates closer than MinDistance pixels
// to an already kept corner (first candidate in scan order wins);
// 0 keeps every candidate.
type ThresholdSelector struct {
	ThresholdFrac float64
	MinDistance   int
}

// Select implements SelectionStrategy.
func (s ThresholdSelector) Select(resp *mat.Dense) []geometry.PointInt {
	rows, cols := resp.Dims()
	threshold := s.ThresholdFrac * mat.Max(resp)

	var corners []geometry.PointInt
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if resp.At(y, x) > threshold {
				corners = append(corners, geometry.PointInt{X: x, Y: y})
			}
		}
	}
	if s.MinDistance > 0 {
		corners = thinByDistance(corners, s.MinDistance)
	}
	return corners
}

func thinByDistance(corners []geometry.PointInt, minDist int) []geometry.PointInt {
	kept := make([]geometry.PointInt, 0, len(corners))
	minDistSq := minDist * minDist
	for _, c := range corners {
		tooClose := false
		for _, k := range kept {
			if c.DistanceSq(k) < minDistSq {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c)
		}
	}
	return kept
}
