package imaging

import (
	"image"
	"image/color"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Swatch is a named bucket of similar colors.
type Swatch struct {
	// Name is the swatch role, e.g. "Vibrant" or "DarkMuted".
	Name string `json:"name"`

	// Population is the number of sampled pixels represented by the swatch.
	// Generated swatches have a population of 0.
	Population int `json:"population"`

	// Hex is the representative color as "#rrggbb".
	Hex string `json:"hex"`
}

// candidate is a quantized color bucket considered during swatch selection.
type candidate struct {
	color      colorful.Color
	population int
	hue        float64
	saturation float64
	luma       float64
}

func newCandidate(c colorful.Color, population int) candidate {
	h, s, l := c.Hsl()
	return candidate{color: c, population: population, hue: h, saturation: s, luma: l}
}

func (c candidate) swatch(name string) Swatch {
	return Swatch{Name: name, Population: c.population, Hex: c.color.Clamped().Hex()}
}

// Histogram settings. Each channel keeps its top sigBits bits.
const (
	sigBits  = 5
	rshift   = 8 - sigBits
	minAlpha = 125
	maxWhite = 250
)

type bucket struct {
	key     int
	r, g, b int
	count   int
}

// histogram groups the pixels of img into 5-bit-per-channel buckets and
// returns at most maxColors of them, most populous first. Each bucket is
// represented by the average color of its pixels.
//
// Pixels with alpha below 125 and near-white pixels (every channel above
// 250) are skipped. Ties in population are broken by bucket key so the
// result is deterministic.
func histogram(img image.Image, maxColors int) []candidate {
	bounds := img.Bounds()
	buckets := make(map[int]*bucket)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < minAlpha {
				continue
			}
			if c.R > maxWhite && c.G > maxWhite && c.B > maxWhite {
				continue
			}

			key := int(c.R>>rshift)<<(2*sigBits) | int(c.G>>rshift)<<sigBits | int(c.B>>rshift)
			bk, ok := buckets[key]
			if !ok {
				bk = &bucket{key: key}
				buckets[key] = bk
			}
			bk.r += int(c.R)
			bk.g += int(c.G)
			bk.b += int(c.B)
			bk.count++
		}
	}

	sorted := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		sorted = append(sorted, bk)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].key < sorted[j].key
	})
	if maxColors > 0 && len(sorted) > maxColors {
		sorted = sorted[:maxColors]
	}

	candidates := make([]candidate, len(sorted))
	for i, bk := range sorted {
		n := float64(bk.count)
		c := colorful.Color{
			R: float64(bk.r) / n / 255.0,
			G: float64(bk.g) / n / 255.0,
			B: float64(bk.b) / n / 255.0,
		}
		candidates[i] = newCandidate(c, bk.count)
	}
	return candidates
}
