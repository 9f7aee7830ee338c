package features

import (
	"image"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"featmatch/internal/imgproc"
	"featmatch/pkg/geometry"
)

// Variant selects the corner scoring and selection rule.
type Variant string

const (
	// VariantLambdaMin scores with the pointwise smaller structure tensor
	// eigenvalue and selects corners with windowed non-maximum suppression.
	VariantLambdaMin Variant = "lambda-minus"
	// VariantHarris scores with the windowed Harris response and selects
	// corners by plain thresholding.
	VariantHarris Variant = "harris"
)

// ParseVariant parses a variant name as used on the command line.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantLambdaMin, VariantHarris:
		return Variant(s), nil
	default:
		return "", errors.Errorf("unknown variant %q (want %s or %s)", s, VariantLambdaMin, VariantHarris)
	}
}

// Params configures the detection pipeline.
type Params struct {
	Variant       Variant
	WindowSize    int     // NMS window radius / Harris aggregation window
	K             float64 // Harris sensitivity constant
	ThresholdFrac float64 // threshold as a fraction of the global response maximum
	PatchSize     int     // descriptor patch side length, must be even
	MinDistance   int     // cluster thinning for the threshold-only selector, 0 = off
}

// DefaultParams returns the pipeline defaults: lambda-minus scoring with a
// 5-pixel NMS window, 1% threshold and 16-pixel descriptor patches.
func DefaultParams() Params {
	return Params{
		Variant:       VariantLambdaMin,
		WindowSize:    DefaultWindowSize,
		K:             DefaultHarrisK,
		ThresholdFrac: 0.01,
		PatchSize:     DefaultPatchSize,
	}
}

// WithVariant returns a copy of the params with a different scoring variant.
func (p Params) WithVariant(v Variant) Params {
	p.Variant = v
	return p
}

// WithWindowSize returns a copy of the params with a different window size.
func (p Params) WithWindowSize(w int) Params {
	p.WindowSize = w
	return p
}

// WithThreshold returns a copy of the params with a different threshold fraction.
func (p Params) WithThreshold(frac float64) Params {
	p.ThresholdFrac = frac
	return p
}

// WithPatchSize returns a copy of the params with a different patch size.
func (p Params) WithPatchSize(size int) Params {
	p.PatchSize = size
	return p
}

// WithMinDistance returns a copy of the params with cluster thinning enabled
// for the threshold-only selector.
func (p Params) WithMinDistance(d int) Params {
	p.MinDistance = d
	return p
}

// Scorer returns the response scorer for the configured variant.
func (p Params) Scorer() Scorer {
	if p.Variant == VariantHarris {
		return HarrisScorer{WindowSize: p.WindowSize, K: p.K}
	}
	return LambdaMinScorer{WindowSize: p.WindowSize}
}

// Selector returns the corner selection strategy for the configured variant.
func (p Params) Selector() SelectionStrategy {
	if p.Variant == VariantHarris {
		return ThresholdSelector{ThresholdFrac: p.ThresholdFrac, MinDistance: p.MinDistance}
	}
	return NMSSelector{WindowSize: p.WindowSize, ThresholdFrac: p.ThresholdFrac}
}

// ImageFeatures holds the corners that produced descriptors and the
// descriptors themselves, aligned index-for-index.
type ImageFeatures struct {
	Corners     []geometry.PointInt
	Descriptors []Descriptor
}

// DetectAndDescribe runs gradient computation, response scoring, corner
// selection and descriptor extraction on a single image.
func DetectAndDescribe(img image.Image, p Params, logger golog.Logger) (*ImageFeatures, error) {
	grad, err := ComputeGradients(img)
	if err != nil {
		return nil, errors.Wrap(err, "gradients")
	}

	resp := p.Scorer().Score(grad)
	candidates := p.Selector().Select(resp)
	if logger != nil {
		logger.Debugf("%d corner candidates (%s)", len(candidates), p.Variant)
	}

	gray := imgproc.GrayFromImage(img)
	descs, kept, err := ExtractDescriptors(gray, candidates, p.PatchSize)
	if err != nil {
		return nil, errors.Wrap(err, "descriptors")
	}
	if logger != nil && len(kept) < len(candidates) {
		logger.Debugf("dropped %d corners too close to the border", len(candidates)-len(kept))
	}

	return &ImageFeatures{Corners: kept, Descriptors: descs}, nil
}

// MatchResult holds per-image features and the matches between them.
type MatchResult struct {
	A       *ImageFeatures
	B       *ImageFeatures
	Matches []Match
}

// Matched returns the number of matches with a partner.
func (r *MatchResult) Matched() int {
	n := 0
	for _, m := range r.Matches {
		if m.Partner != NoPartner {
			n++
		}
	}
	return n
}

// MatchImages runs the full pipeline on two images and matches their
// descriptors under the given metric.
func MatchImages(imgA, imgB image.Image, p Params, metric Metric, logger golog.Logger) (*MatchResult, error) {
	fa, err := DetectAndDescribe(imgA, p, logger)
	if err != nil {
		return nil, errors.Wrap(err, "first image")
	}
	fb, err := DetectAndDescribe(imgB, p, logger)
	if err != nil {
		return nil, errors.Wrap(err, "second image")
	}

	matcher := BruteForceMatcher{Metric: metric}
	return &MatchResult{
		A:       fa,
		B:       fb,
		Matches: matcher.Match(fa.Descriptors, fb.Descriptors),
	}, nil
}
