// Command cornertest detects corners in a single image, prints them, and
// optionally writes an overlay plot.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/edaniels/golog"
	_ "golang.org/x/image/tiff"

	"featmatch/internal/features"
	"featmatch/internal/overlay"
	"featmatch/internal/version"
)

func main() {
	input := flag.String("i", "", "Path to input image")
	variant := flag.String("variant", string(features.VariantLambdaMin), "Scoring variant: lambda-minus or harris")
	window := flag.Int("window", 5, "NMS / Harris aggregation window size")
	threshold := flag.Float64("threshold", 0.01, "Threshold as a fraction of the maximum response")
	minDist := flag.Int("mindist", 0, "Minimum corner spacing for the harris variant (0 = keep all)")
	out := flag.String("o", "", "Optional corner overlay output PNG")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *input == "" {
		fmt.Println("Usage: cornertest -i <image> [-variant harris] [-o overlay.png]")
		os.Exit(1)
	}

	logger := golog.NewLogger("cornertest")
	if *debug {
		logger = golog.NewDebugLogger("cornertest")
	}

	img, err := loadImage(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *input, err)
		os.Exit(1)
	}

	v, err := features.ParseVariant(*variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	params := features.DefaultParams().
		WithVariant(v).
		WithWindowSize(*window).
		WithThreshold(*threshold).
		WithMinDistance(*minDist)

	feats, err := features.DetectAndDescribe(img, params, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%d corners with descriptors (%s)\n", len(feats.Corners), params.Variant)
	for _, c := range feats.Corners {
		fmt.Printf("  (%d, %d)\n", c.X, c.Y)
	}

	if *out != "" {
		if err := overlay.PlotCorners(img, feats.Corners, *out); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write overlay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Corner overlay written to %s\n", *out)
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
