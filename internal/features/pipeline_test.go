package features

import (
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"featmatch/pkg/geometry"
)

func TestParamsBuilders(t *testing.T) {
	p := DefaultParams()
	test.That(t, p.Variant, test.ShouldEqual, VariantLambdaMin)
	test.That(t, p.WindowSize, test.ShouldEqual, 5)
	test.That(t, p.ThresholdFrac, test.ShouldEqual, 0.01)
	test.That(t, p.PatchSize, test.ShouldEqual, 16)

	q := p.WithVariant(VariantHarris).WithWindowSize(7).WithThreshold(0.05).WithPatchSize(8).WithMinDistance(4)
	test.That(t, q.Variant, test.ShouldEqual, VariantHarris)
	test.That(t, q.WindowSize, test.ShouldEqual, 7)
	test.That(t, q.ThresholdFrac, test.ShouldEqual, 0.05)
	test.That(t, q.PatchSize, test.ShouldEqual, 8)
	test.That(t, q.MinDistance, test.ShouldEqual, 4)
	// builders copy, the original is untouched
	test.That(t, p.Variant, test.ShouldEqual, VariantLambdaMin)
}

func TestParamsStrategySelection(t *testing.T) {
	p := DefaultParams()
	_, isLambda := p.Scorer().(LambdaMinScorer)
	test.That(t, isLambda, test.ShouldBeTrue)
	_, isNMS := p.Selector().(NMSSelector)
	test.That(t, isNMS, test.ShouldBeTrue)

	h := p.WithVariant(VariantHarris)
	_, isHarris := h.Scorer().(HarrisScorer)
	test.That(t, isHarris, test.ShouldBeTrue)
	_, isThreshold := h.Selector().(ThresholdSelector)
	test.That(t, isThreshold, test.ShouldBeTrue)
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("harris")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, VariantHarris)

	v, err = ParseVariant("lambda-minus")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, VariantLambdaMin)

	_, err = ParseVariant("fast")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDetectAndDescribe(t *testing.T) {
	logger := golog.NewTestLogger(t)
	img := quadrantImage(32, 255)
	trueCorner := geometry.PointInt{X: 16, Y: 16}

	feats, err := DetectAndDescribe(img, DefaultParams(), logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(feats.Corners), test.ShouldEqual, 1)
	test.That(t, chebyshev(feats.Corners[0], trueCorner), test.ShouldBeLessThanOrEqualTo, 1)
	test.That(t, len(feats.Descriptors), test.ShouldEqual, 1)
	test.That(t, len(feats.Descriptors[0]), test.ShouldEqual, 16*16)
}

func TestMatchImagesSelf(t *testing.T) {
	logger := golog.NewTestLogger(t)
	img := quadrantImage(32, 255)

	res, err := MatchImages(img, img, DefaultParams(), MetricSSD, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(res.A.Corners), test.ShouldEqual, 1)
	test.That(t, len(res.B.Corners), test.ShouldEqual, 1)
	test.That(t, res.Matches, test.ShouldResemble, []Match{{Index: 0, Partner: 0}})
	test.That(t, res.Matched(), test.ShouldEqual, 1)

	// repeated runs are identical
	again, err := MatchImages(img, img, DefaultParams(), MetricSSD, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, again.Matches, test.ShouldResemble, res.Matches)
}
