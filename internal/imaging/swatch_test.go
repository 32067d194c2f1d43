package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestHistogram_AveragesBucket(t *testing.T) {
	// 200 and 201 share a 5-bit bucket, so both land in one candidate
	img := createSplitImage(2, 1, 1, color.RGBA{200, 0, 0, 255}, color.RGBA{201, 0, 0, 255})

	candidates := histogram(img, 64)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].population != 2 {
		t.Errorf("population: got %d, want 2", candidates[0].population)
	}
	r, _, _ := candidates[0].color.RGB255()
	if r != 201 {
		t.Errorf("averaged red: got %d, want 201", r)
	}
}

func TestHistogram_OrderAndLimit(t *testing.T) {
	img := createPatternImage(4, 4)

	candidates := histogram(img, 2)
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.population != 4 {
			t.Errorf("population: got %d, want 4", c.population)
		}
	}

	// Equal populations are ordered by bucket key: blue sorts before red
	if got := candidates[0].swatch("x").Hex; got != "#0000ff" {
		t.Errorf("first candidate: got %s, want #0000ff", got)
	}
}

func TestHistogram_SkipsWhiteAndTransparent(t *testing.T) {
	img := createPatternImage(4, 4)
	img.Set(0, 0, color.NRGBA{0, 0, 0, 0})

	candidates := histogram(img, 64)
	total := 0
	for _, c := range candidates {
		total += c.population
		if c.swatch("x").Hex == "#ffffff" {
			t.Error("white must be skipped")
		}
	}
	// 12 colored pixels minus the transparent one
	if total != 11 {
		t.Errorf("total population: got %d, want 11", total)
	}
}

func TestCandidate_Swatch(t *testing.T) {
	img := createInMemoryImage(3, 3, color.RGBA{16, 32, 48, 255})
	candidates := histogram(img, 0)
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}

	s := candidates[0].swatch(DarkMuted)
	if s.Name != DarkMuted || s.Population != 9 || s.Hex != "#102030" {
		t.Errorf("swatch: got %+v", s)
	}
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}
