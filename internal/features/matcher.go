package features

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Metric selects the descriptor similarity measure.
type Metric int

const (
	// MetricSSD minimizes the sum of squared differences.
	MetricSSD Metric = iota
	// MetricNCC maximizes normalized cross-correlation.
	MetricNCC
)

func (m Metric) String() string {
	switch m {
	case MetricSSD:
		return "ssd"
	case MetricNCC:
		return "ncc"
	default:
		return "unknown"
	}
}

// ParseMetric parses a metric name as used on the command line.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "ssd", "SSD":
		return MetricSSD, nil
	case "ncc", "NCC":
		return MetricNCC, nil
	default:
		return 0, errors.Errorf("unknown metric %q (want ssd or ncc)", s)
	}
}

// NoPartner marks a match with no counterpart in set B.
const NoPartner = -1

// Match pairs a descriptor index in set A with the index of its
// best-scoring partner in set B, or NoPartner when B is empty.
type Match struct {
	Index   int
	Partner int
}

// Matcher matches two descriptor sets. Implementations return exactly one
// entry per element of A, in A's order.
type Matcher interface {
	Match(a, b []Descriptor) []Match
}

// nccSentinel sits below the valid NCC range [-1, 1], so any real score
// replaces it.
const nccSentinel = -2.0

// BruteForceMatcher scans all of B for every descriptor in A with no
// pruning; O(m*n*d) for descriptor length d. Ties go to the lowest B index,
// since only a strictly better score replaces the current best.
type BruteForceMatcher struct {
	Metric Metric
}

// Match implements Matcher.
func (m BruteForceMatcher) Match(a, b []Descriptor) []Match {
	matches := make([]Match, len(a))
	for i, da := range a {
		best := NoPartner
		bestScore := math.Inf(1)
		if m.Metric == MetricNCC {
			bestScore = nccSentinel
		}
		for j, db := range b {
			switch m.Metric {
			case MetricNCC:
				if score := ncc(da, db); score > bestScore {
					bestScore = score
					best = j
				}
			default:
				if score := ssd(da, db); score < bestScore {
					bestScore = score
					best = j
				}
			}
		}
		matches[i] = Match{Index: i, Partner: best}
	}
	return matches
}

// ssd is the sum of squared differences between two descriptors.
func ssd(a, b Descriptor) float64 {
	d := floats.Distance(a, b, 2)
	return d * d
}

// ncc is the normalized cross-correlation (a.b)/(|a||b|).
func ncc(a, b Descriptor) float64 {
	return floats.Dot(a, b) / (floats.Norm(a, 2) * floats.Norm(b, 2))
}
