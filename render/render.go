// Package render draws rasterbate pages to images and files. It is a
// consumer of the core's drawing instructions; the core itself never
// touches pixels on the way out.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/dioptre/rasterbate"
)

// Image renders one page to an RGBA image: background fill first, then
// every dot in emission order.
func Image(page rasterbate.Page) *image.RGBA {
	w := int(math.Ceil(page.WidthPx))
	h := int(math.Ceil(page.HeightPx))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	bg := color.RGBA{R: page.Background.R, G: page.Background.G, B: page.Background.B, A: 0xff}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	for _, dot := range page.Dots {
		c := color.RGBA{R: dot.Color.R, G: dot.Color.G, B: dot.Color.B, A: 0xff}
		fillCircle(img, dot.CenterX, dot.CenterY, dot.Radius, c)
	}
	return img
}

// fillCircle draws a filled circle, clipped to the image bounds. Pixel
// centers are tested against the radius.
func fillCircle(img *image.RGBA, cx, cy, radius float64, col color.RGBA) {
	bounds := img.Bounds()
	r2 := radius * radius

	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))

	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		dy := float64(y) + 0.5 - cy
		for x := minX; x <= maxX; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// SavePNG writes img to filename as PNG.
func SavePNG(img image.Image, filename string) error {
	f, err := os.Create(filename) // #nosec G304 -- output path is user-provided
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return f.Close()
}
