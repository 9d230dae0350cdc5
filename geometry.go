package rasterbate

import "math"

// Geometry is the pixel-space layout derived from a Config. It is computed
// once per Rasterize call and shared read-only by all pages.
type Geometry struct {
	PaperWidthPx  float64 // per-page width in pixels
	PaperHeightPx float64 // per-page height in pixels

	// SquareSize is the grid cell pitch: dot diameter plus gutter.
	SquareSize float64

	// SquaresX and SquaresY are the cell counts per page. Either may be
	// zero when the cell pitch exceeds the paper dimension, in which case
	// the page renders as background only.
	SquaresX int
	SquaresY int

	// MaxDotRadius is the full radius budget for a cell; the composer
	// halves it when converting brightness to a radius.
	MaxDotRadius float64
}

// planGeometry derives the dot-grid layout. It is a total function over
// validated configs; there are no error conditions here.
func planGeometry(cfg Config) Geometry {
	paperW := cfg.PaperWidth
	paperH := cfg.PaperHeight
	dotPx := cfg.DotSize
	if !cfg.UsePixels {
		paperW = mmToPx(paperW)
		paperH = mmToPx(paperH)
		dotPx = mmToPx(dotPx)
	}

	square := dotPx * cellPitchFactor
	return Geometry{
		PaperWidthPx:  paperW,
		PaperHeightPx: paperH,
		SquareSize:    square,
		SquaresX:      int(math.Floor(paperW / square)),
		SquaresY:      int(math.Floor(paperH / square)),
		MaxDotRadius:  dotPx,
	}
}

func mmToPx(mm float64) float64 {
	return mm / mmPerInch * resolution
}
