package rasterbate

import "image"

// pixelBuffer is a one-time snapshot of a source image as interleaved RGB
// bytes. Sampling loops hit every pixel of a cell, so paying the image.Image
// interface cost once up front keeps the hot path on a flat slice.
type pixelBuffer struct {
	w, h int
	pix  []uint8 // interleaved RGB, len = w*h*3
}

func newPixelBuffer(img image.Image) *pixelBuffer {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	buf := &pixelBuffer{
		w:   w,
		h:   h,
		pix: make([]uint8, w*h*3),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*w + x) * 3
			buf.pix[off] = uint8(r >> 8)
			buf.pix[off+1] = uint8(g >> 8)
			buf.pix[off+2] = uint8(b >> 8)
		}
	}
	return buf
}

func (b *pixelBuffer) rgbAt(x, y int) RGB {
	off := (y*b.w + x) * 3
	return RGB{R: b.pix[off], G: b.pix[off+1], B: b.pix[off+2]}
}

// rect is a half-open pixel region [x0,x1) x [y0,y1).
type rect struct {
	x0, y0, x1, y1 int
}

func (r rect) empty() bool {
	return r.x1 <= r.x0 || r.y1 <= r.y0
}

func (r rect) area() int {
	if r.empty() {
		return 0
	}
	return (r.x1 - r.x0) * (r.y1 - r.y0)
}

// expand grows the region by n pixels on every side.
func (r rect) expand(n int) rect {
	return rect{x0: r.x0 - n, y0: r.y0 - n, x1: r.x1 + n, y1: r.y1 + n}
}

// clamp intersects the region with the buffer bounds.
func (r rect) clamp(w, h int) rect {
	return rect{
		x0: max(r.x0, 0),
		y0: max(r.y0, 0),
		x1: min(r.x1, w),
		y1: min(r.y1, h),
	}
}
