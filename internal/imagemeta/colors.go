package imagemeta

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"go-image-describer/pkg/models"
)

const (
	// thumbnailMax bounds the longer image side before pixel enumeration.
	thumbnailMax = 200
	// candidateThreshold is the minimum Manhattan distance a pixel must keep
	// to the recently accepted candidates to enter the filtered pool.
	candidateThreshold = 30
	// distinctThreshold is the minimum Manhattan distance between any two
	// reported swatches.
	distinctThreshold = 60
	// filterWindow limits the similarity scan to the last N accepted
	// candidates, bounding the filter to O(n*N) instead of O(n^2).
	filterWindow = 100
)

type pixel [3]uint8

type colorCount struct {
	color pixel
	count int
	seen  int
}

// DominantColors extracts up to targetCount perceptually distinct dominant
// colors. The image is downscaled first so the pairwise comparisons stay
// cheap regardless of source resolution. Images with fewer distinct colors
// than requested yield fewer swatches; the result is never padded.
func DominantColors(img image.Image, targetCount int) []models.ColorSwatch {
	if targetCount <= 0 {
		return nil
	}

	small := imaging.Fit(img, thumbnailMax, thumbnailMax, imaging.Lanczos)
	pixels := enumeratePixels(small)
	if len(pixels) == 0 {
		return nil
	}

	// Filter near-duplicates to diversify the candidate pool, but fall back
	// to the full pixel set when the palette is too thin to survive filtering.
	filtered := filterSimilar(pixels)
	pool := pixels
	if len(filtered) > targetCount*10 {
		pool = filtered
	}

	ranked := rankByFrequency(pool)

	limit := targetCount * 2
	if limit > len(ranked) {
		limit = len(ranked)
	}

	selected := make([]colorCount, 0, targetCount)
	for _, cand := range ranked[:limit] {
		diverse := true
		for _, s := range selected {
			if manhattan(cand.color, s.color) < distinctThreshold {
				diverse = false
				break
			}
		}
		if diverse {
			selected = append(selected, cand)
			if len(selected) >= targetCount {
				break
			}
		}
	}

	total := float64(len(pixels))
	swatches := make([]models.ColorSwatch, 0, len(selected))
	for _, sc := range selected {
		r, g, b := sc.color[0], sc.color[1], sc.color[2]
		swatches = append(swatches, models.ColorSwatch{
			Hex:        fmt.Sprintf("#%02x%02x%02x", r, g, b),
			RGB:        models.RGB{R: int(r), G: int(g), B: int(b)},
			Name:       ColorName(r, g, b),
			Percentage: math.Round(float64(sc.count)/total*1000) / 10,
		})
	}
	return swatches
}

// enumeratePixels flattens the thumbnail into RGB triples in scan order,
// dropping the alpha channel.
func enumeratePixels(img *image.NRGBA) []pixel {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]pixel, 0, width*height)
	for y := 0; y < height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			i := x * 4
			pixels = append(pixels, pixel{row[i], row[i+1], row[i+2]})
		}
	}
	return pixels
}

// filterSimilar keeps a pixel only if it differs from every one of the last
// filterWindow accepted pixels by at least candidateThreshold. This is an
// approximate sliding-window filter, not global de-duplication.
func filterSimilar(pixels []pixel) []pixel {
	filtered := make([]pixel, 0, len(pixels)/4)
	for _, p := range pixels {
		start := len(filtered) - filterWindow
		if start < 0 {
			start = 0
		}
		unique := true
		for _, q := range filtered[start:] {
			if manhattan(p, q) < candidateThreshold {
				unique = false
				break
			}
		}
		if unique {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// rankByFrequency counts distinct colors in the pool and orders them by
// descending count. Ties resolve by first appearance in scan order so the
// ranking is deterministic.
func rankByFrequency(pool []pixel) []colorCount {
	counts := make(map[pixel]int, len(pool))
	order := make([]colorCount, 0)
	for i, p := range pool {
		if idx, ok := counts[p]; ok {
			order[idx].count++
			continue
		}
		counts[p] = len(order)
		order = append(order, colorCount{color: p, count: 1, seen: i})
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].seen < order[j].seen
	})
	return order
}

func manhattan(a, b pixel) int {
	d := 0
	for i := 0; i < 3; i++ {
		v := int(a[i]) - int(b[i])
		if v < 0 {
			v = -v
		}
		d += v
	}
	return d
}
