package rasterbate

import "math"

// BT.601 luma coefficients.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// areaSample is the per-cell measurement of a region of the source image.
// Samples are transient: computed, consumed, and discarded per cell.
type areaSample struct {
	color      RGB     // selected per color mode
	brightness float64 // mean luma in [0,1]
	background bool    // filled in by the classifier, not the sampler
}

// quantKey is a color quantized to 8 buckets per channel (floor to the
// nearest multiple of 32). Keying the dominant-color tally by a small
// array avoids string allocation in the sampling loop.
type quantKey [3]uint8

func quantize(c RGB) quantKey {
	return quantKey{c.R &^ 31, c.G &^ 31, c.B &^ 31}
}

// sampleArea measures the region r of buf. The caller guarantees r is
// clamped to the buffer bounds and non-empty.
//
// In multi mode the reported color is the region's dominant quantized
// color; ties keep the bucket first encountered in scan order (y outer,
// x inner), regardless of where its occurrences fall. In mono and
// average modes the reported color is the plain average.
func sampleArea(buf *pixelBuffer, r rect, colorMode string) areaSample {
	var sumR, sumG, sumB uint64
	var sumLuma float64

	multi := colorMode == ColorModeMulti
	var tally map[quantKey]int
	var order []quantKey
	if multi {
		tally = make(map[quantKey]int)
	}

	for y := r.y0; y < r.y1; y++ {
		for x := r.x0; x < r.x1; x++ {
			px := buf.rgbAt(x, y)
			sumR += uint64(px.R)
			sumG += uint64(px.G)
			sumB += uint64(px.B)
			sumLuma += (lumaR*float64(px.R) + lumaG*float64(px.G) + lumaB*float64(px.B)) / 255.0

			if multi {
				key := quantize(px)
				if _, seen := tally[key]; !seen {
					order = append(order, key)
				}
				tally[key]++
			}
		}
	}

	n := float64(r.area())
	sample := areaSample{
		color: RGB{
			R: uint8(math.Round(float64(sumR) / n)),
			G: uint8(math.Round(float64(sumG) / n)),
			B: uint8(math.Round(float64(sumB) / n)),
		},
		brightness: sumLuma / n,
	}
	if multi && len(order) > 0 {
		// Walking first-seen order with a strict comparison keeps the
		// earliest bucket on ties, even when a later bucket reaches the
		// top tally sooner mid-scan.
		bestKey := order[0]
		for _, key := range order[1:] {
			if tally[key] > tally[bestKey] {
				bestKey = key
			}
		}
		sample.color = RGB{R: bestKey[0], G: bestKey[1], B: bestKey[2]}
	}
	return sample
}
