package lqip

import (
	"sort"

	"github.com/ironsheep/lqip/internal/imaging"
)

// Swatch is a named bucket of similar colors with its pixel population and
// representative "#rrggbb" color.
type Swatch = imaging.Swatch

// ToPalette orders swatches from most to least popular and keeps only their
// hex colors. Swatches with equal population keep their input order.
// Swatches without a hex color are skipped.
func ToPalette(swatches []Swatch) []string {
	sorted := make([]Swatch, 0, len(swatches))
	for _, s := range swatches {
		if s.Hex == "" {
			continue
		}
		sorted = append(sorted, s)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Population > sorted[j].Population
	})

	palette := make([]string, len(sorted))
	for i, s := range sorted {
		palette[i] = s.Hex
	}
	return palette
}
