package annotate

import (
	"image"
	"math"

	"github.com/bnema/mira/internal/domain"
)

type namedColor struct {
	name    string
	r, g, b float64
}

var palette = []namedColor{
	{"black", 20, 20, 20},
	{"white", 240, 240, 240},
	{"gray", 128, 128, 128},
	{"red", 200, 30, 30},
	{"orange", 240, 140, 30},
	{"yellow", 235, 220, 50},
	{"green", 40, 150, 60},
	{"blue", 40, 90, 210},
	{"navy", 25, 35, 90},
	{"purple", 120, 50, 150},
	{"pink", 240, 150, 190},
	{"brown", 110, 70, 40},
	{"beige", 220, 200, 160},
}

// centerFraction is the share of each box side that gets sampled.
const centerFraction = 0.5

// DominantColor averages the central region of box and returns the nearest
// palette name, or "unknown" when the box does not overlap the image.
func DominantColor(img image.Image, box domain.BBox) string {
	region := centralRegion(img.Bounds(), box)
	if region.Empty() {
		return domain.UnknownColor
	}

	var sumR, sumG, sumB, count float64
	step := max(1, min(region.Dx(), region.Dy())/32)
	for y := region.Min.Y; y < region.Max.Y; y += step {
		for x := region.Min.X; x < region.Max.X; x += step {
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += float64(r >> 8)
			sumG += float64(g >> 8)
			sumB += float64(b >> 8)
			count++
		}
	}
	if count == 0 {
		return domain.UnknownColor
	}

	return nearestColor(sumR/count, sumG/count, sumB/count)
}

func centralRegion(bounds image.Rectangle, box domain.BBox) image.Rectangle {
	width := box.Width()
	height := box.Height()
	if width <= 0 || height <= 0 {
		return image.Rectangle{}
	}

	marginX := width * (1 - centerFraction) / 2
	marginY := height * (1 - centerFraction) / 2
	region := image.Rect(
		int(math.Round(box.X1+marginX)),
		int(math.Round(box.Y1+marginY)),
		int(math.Round(box.X2-marginX)),
		int(math.Round(box.Y2-marginY)),
	)
	if region.Empty() {
		region = image.Rect(int(box.X1), int(box.Y1), int(box.X2), int(box.Y2))
	}

	return region.Intersect(bounds)
}

func nearestColor(r, g, b float64) string {
	best := domain.UnknownColor
	bestDistance := math.MaxFloat64
	for _, candidate := range palette {
		// weighted RGB distance
		dr := r - candidate.r
		dg := g - candidate.g
		db := b - candidate.b
		distance := 2*dr*dr + 4*dg*dg + 3*db*db
		if distance < bestDistance {
			bestDistance = distance
			best = candidate.name
		}
	}
	return best
}
