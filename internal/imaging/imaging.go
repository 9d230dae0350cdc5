// Package imaging loads and prepares source images for rasterizing:
// decoding, flattening transparency onto white, and pre-scaling to the
// configured target width.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"os"

	// Registered decoders for the formats the CLI accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

var (
	ErrOpenImage   = errors.New("failed to open image")
	ErrDecodeImage = errors.New("failed to decode image")
)

// Load reads and decodes an image file (PNG, JPEG or GIF).
func Load(path string) (image.Image, error) {
	f, err := os.Open(path) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenImage, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodeImage, path, err)
	}
	return img, nil
}

// FlattenWhite composites img over an opaque white background. Dot
// sampling has no concept of transparency, so translucent pixels must be
// resolved against the paper color up front.
func FlattenWhite(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Over)
	return out
}

// ScaleToWidth resizes img to the given width, preserving aspect ratio,
// using Catmull-Rom interpolation. Images already at the target width are
// returned unchanged.
func ScaleToWidth(img image.Image, width int) image.Image {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	if srcW == width || srcW == 0 {
		return img
	}

	height := bounds.Dy() * width / srcW
	if height < 1 {
		height = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, bounds, draw.Src, nil)
	return out
}
