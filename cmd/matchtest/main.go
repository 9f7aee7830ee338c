// Command matchtest runs the full corner detection and matching pipeline on
// two images, prints the matches, and optionally writes a side-by-side
// overlay.
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
	pathA := flag.String("a", "", "Path to first image")
	pathB := flag.String("b", "", "Path to second image")
	variant := flag.String("variant", string(features.VariantLambdaMin), "Scoring variant: lambda-minus or harris")
	metricName := flag.String("metric", "ssd", "Matching metric: ssd or ncc")
	patchSize := flag.Int("patch", features.DefaultPatchSize, "Descriptor patch size (must be even)")
	out := flag.String("o", "", "Optional match overlay output PNG")
	debug := flag.Bool("debug", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *pathA == "" || *pathB == "" {
		fmt.Println("Usage: matchtest -a <image> -b <image> [-metric ncc] [-o overlay.png]")
		os.Exit(1)
	}

	logger := golog.NewLogger("matchtest")
	if *debug {
		logger = golog.NewDebugLogger("matchtest")
	}

	imgA, err := loadImage(*pathA)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *pathA, err)
		os.Exit(1)
	}
	imgB, err := loadImage(*pathB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", *pathB, err)
		os.Exit(1)
	}

	v, err := features.ParseVariant(*variant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	metric, err := features.ParseMetric(*metricName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	params := features.DefaultParams().WithVariant(v).WithPatchSize(*patchSize)

	res, err := features.MatchImages(imgA, imgB, params, metric, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Matching failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Image A: %d corners, image B: %d corners\n", len(res.A.Corners), len(res.B.Corners))
	fmt.Printf("%d matches (%s)\n", res.Matched(), metric)
	for _, m := range res.Matches {
		if m.Partner == features.NoPartner {
			continue
		}
		a := res.A.Corners[m.Index]
		b := res.B.Corners[m.Partner]
		fmt.Printf("  A[%d] (%d, %d) -> B[%d] (%d, %d)\n", m.Index, a.X, a.Y, m.Partner, b.X, b.Y)
	}

	if *out != "" {
		if err := overlay.DrawMatches(imgA, imgB, res, *out); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write overlay: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Match overlay written to %s\n", *out)
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
