package imaging

import (
	"context"
	"fmt"
	"image"
	_ "image/gif" // Register GIF format decoder
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Swatch names in enumeration order.
const (
	Vibrant      = "Vibrant"
	LightVibrant = "LightVibrant"
	DarkVibrant  = "DarkVibrant"
	Muted        = "Muted"
	LightMuted   = "LightMuted"
	DarkMuted    = "DarkMuted"
)

// Luma and saturation targets, all in the 0-1 HSL range.
const (
	targetDarkLuma          = 0.26
	maxDarkLuma             = 0.45
	minLightLuma            = 0.55
	targetLightLuma         = 0.74
	minNormalLuma           = 0.3
	targetNormalLuma        = 0.5
	maxNormalLuma           = 0.7
	targetMutedSaturation   = 0.3
	maxMutedSaturation      = 0.4
	targetVibrantSaturation = 1.0
	minVibrantSaturation    = 0.35

	weightSaturation = 3.0
	weightLuma       = 6.5
	weightPopulation = 0.5
)

// target describes the saturation and luma window of one named swatch.
type target struct {
	name                         string
	minSat, targetSat, maxSat    float64
	minLuma, targetLuma, maxLuma float64
}

var targets = []target{
	{Vibrant, minVibrantSaturation, targetVibrantSaturation, 1, minNormalLuma, targetNormalLuma, maxNormalLuma},
	{LightVibrant, minVibrantSaturation, targetVibrantSaturation, 1, minLightLuma, targetLightLuma, 1},
	{DarkVibrant, minVibrantSaturation, targetVibrantSaturation, 1, 0, targetDarkLuma, maxDarkLuma},
	{Muted, 0, targetMutedSaturation, maxMutedSaturation, minNormalLuma, targetNormalLuma, maxNormalLuma},
	{LightMuted, 0, targetMutedSaturation, maxMutedSaturation, minLightLuma, targetLightLuma, 1},
	{DarkMuted, 0, targetMutedSaturation, maxMutedSaturation, 0, targetDarkLuma, maxDarkLuma},
}

// VibrantQuantizer extracts up to six named swatches from an image:
// Vibrant, LightVibrant, DarkVibrant, Muted, LightMuted and DarkMuted.
//
// # Algorithm
//
//  1. Downsample: the image is shrunk by Quality (linear resampling) to
//     bound the work on large photos.
//  2. Histogram: pixels are bucketed at 5 bits per channel and the MaxColors
//     most populous buckets become candidates.
//  3. Selection: for each swatch role, in the order above, the unused
//     candidate inside the role's saturation and luma window with the best
//     score wins. The score is the weighted mean of saturation closeness (3),
//     luma closeness (6.5) and relative population (0.5).
//  4. Generation: a missing Vibrant is derived from DarkVibrant or
//     LightVibrant, and missing Light/DarkVibrant from Vibrant, by changing
//     lightness only. Generated swatches have population 0.
//
// Roles that still have no color are omitted from the result.
type VibrantQuantizer struct {
	// Quality is the downsampling factor. 1 disables downsampling.
	Quality int

	// MaxColors bounds the number of histogram candidates.
	MaxColors int

	// GenerateMissing enables step 4.
	GenerateMissing bool
}

// NewVibrantQuantizer returns a quantizer with the default settings:
// quality 5, 64 colors and generation of missing vibrant swatches.
func NewVibrantQuantizer() *VibrantQuantizer {
	return &VibrantQuantizer{
		Quality:         5,
		MaxColors:       64,
		GenerateMissing: true,
	}
}

// Swatches loads the image at path and returns its named swatches in
// enumeration order. PNG, JPEG and GIF files are readable.
//
// An image where every pixel is transparent or near-white yields an empty
// slice and no error.
func (q *VibrantQuantizer) Swatches(ctx context.Context, path string) ([]Swatch, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return q.FromImage(img), nil
}

// FromImage computes the named swatches of an already decoded image.
func (q *VibrantQuantizer) FromImage(img image.Image) []Swatch {
	img = q.downsample(img)
	candidates := histogram(img, q.MaxColors)
	if len(candidates) == 0 {
		return nil
	}

	found := selectSwatches(candidates)
	if q.GenerateMissing {
		generateMissing(found)
	}

	swatches := make([]Swatch, 0, len(targets))
	for _, t := range targets {
		if c, ok := found[t.name]; ok {
			swatches = append(swatches, c.swatch(t.name))
		}
	}
	return swatches
}

func (q *VibrantQuantizer) downsample(img image.Image) image.Image {
	if q.Quality <= 1 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx()/q.Quality, b.Dy()/q.Quality
	if w < 1 || h < 1 {
		return img
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// selectSwatches picks at most one candidate per target. A candidate is used
// by at most one target.
func selectSwatches(candidates []candidate) map[string]candidate {
	maxPopulation := 0
	for _, c := range candidates {
		if c.population > maxPopulation {
			maxPopulation = c.population
		}
	}

	used := make([]bool, len(candidates))
	found := make(map[string]candidate, len(targets))

	for _, t := range targets {
		best := -1
		bestScore := 0.0
		for i, c := range candidates {
			if used[i] {
				continue
			}
			if c.saturation < t.minSat || c.saturation > t.maxSat {
				continue
			}
			if c.luma < t.minLuma || c.luma > t.maxLuma {
				continue
			}
			score := scoreCandidate(c, t, maxPopulation)
			if best == -1 || score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best >= 0 {
			used[best] = true
			found[t.name] = candidates[best]
		}
	}
	return found
}

func scoreCandidate(c candidate, t target, maxPopulation int) float64 {
	pop := 0.0
	if maxPopulation > 0 {
		pop = float64(c.population) / float64(maxPopulation)
	}
	sum := invertDiff(c.saturation, t.targetSat)*weightSaturation +
		invertDiff(c.luma, t.targetLuma)*weightLuma +
		pop*weightPopulation
	return sum / (weightSaturation + weightLuma + weightPopulation)
}

func invertDiff(value, targetValue float64) float64 {
	return 1 - math.Abs(value-targetValue)
}

// generateMissing fills in vibrant roles that selection left empty.
func generateMissing(found map[string]candidate) {
	if _, ok := found[Vibrant]; !ok {
		if c, ok := found[DarkVibrant]; ok {
			found[Vibrant] = withLuma(c, targetNormalLuma)
		} else if c, ok := found[LightVibrant]; ok {
			found[Vibrant] = withLuma(c, targetNormalLuma)
		}
	}

	v, ok := found[Vibrant]
	if !ok {
		return
	}
	if _, ok := found[DarkVibrant]; !ok {
		found[DarkVibrant] = withLuma(v, targetDarkLuma)
	}
	if _, ok := found[LightVibrant]; !ok {
		found[LightVibrant] = withLuma(v, targetLightLuma)
	}
}

func withLuma(c candidate, luma float64) candidate {
	return newCandidate(colorful.Hsl(c.hue, c.saturation, luma), 0)
}
