package rasterbate

// Shared image fixtures for tests. All fixtures are built in memory; no
// files are read.

import (
	"image"
	"image/color"
)

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// vSplitImage paints columns x < split with left and the rest with right.
func vSplitImage(w, h, split int, left, right color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < split {
				img.SetRGBA(x, y, left)
			} else {
				img.SetRGBA(x, y, right)
			}
		}
	}
	return img
}

// quadrantImage paints the four quadrants of a w x h image (split at w/2,
// h/2) with the given colors in reading order: top-left, top-right,
// bottom-left, bottom-right.
func quadrantImage(w, h int, tl, tr, bl, br color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x < w/2 && y < h/2:
				img.SetRGBA(x, y, tl)
			case y < h/2:
				img.SetRGBA(x, y, tr)
			case x < w/2:
				img.SetRGBA(x, y, bl)
			default:
				img.SetRGBA(x, y, br)
			}
		}
	}
	return img
}

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

func approxEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
