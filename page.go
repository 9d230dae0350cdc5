package rasterbate

import (
	"context"
	"math"
)

// White is the background fill of every page.
var White = RGB{R: 255, G: 255, B: 255}

// Page is one physical sheet's worth of instructions: a solid background
// fill plus dots in row-major cell order. Pages tile the full poster;
// Col/Row locate the page within the pagesWide x pagesHigh grid.
type Page struct {
	Index int // row-major page index (row outer, column inner)
	Col   int
	Row   int

	WidthPx  float64
	HeightPx float64

	Background RGB
	Dots       []Dot
}

// assembler walks one page's grid and runs the sampling pipeline per cell.
// It is immutable after construction and safe for concurrent use across
// pages: every field is a read-only view of the call's inputs.
type assembler struct {
	buf        *pixelBuffer
	geo        Geometry
	classifier backgroundClassifier
	composer   dotComposer

	pagesWide int
	pagesHigh int

	// scale maps composite-canvas coordinates to image coordinates.
	scaleX float64
	scaleY float64
}

func newAssembler(buf *pixelBuffer, cfg Config, geo Geometry) (*assembler, error) {
	classifier, err := newBackgroundClassifier(cfg)
	if err != nil {
		return nil, err
	}
	composer, err := newDotComposer(cfg, geo)
	if err != nil {
		return nil, err
	}

	compositeW := geo.PaperWidthPx * float64(cfg.PagesWide)
	compositeH := geo.PaperHeightPx * float64(cfg.PagesHigh)
	return &assembler{
		buf:        buf,
		geo:        geo,
		classifier: classifier,
		composer:   composer,
		pagesWide:  cfg.PagesWide,
		pagesHigh:  cfg.PagesHigh,
		scaleX:     float64(buf.w) / compositeW,
		scaleY:     float64(buf.h) / compositeH,
	}, nil
}

// assemblePage builds the page at grid position (col, row). The context is
// checked once per cell row; cancellation abandons the page with no side
// effects.
func (a *assembler) assemblePage(ctx context.Context, col, row int) (Page, error) {
	page := Page{
		Index:      row*a.pagesWide + col,
		Col:        col,
		Row:        row,
		WidthPx:    a.geo.PaperWidthPx,
		HeightPx:   a.geo.PaperHeightPx,
		Background: White,
	}

	offsetX := a.geo.PaperWidthPx * float64(col)
	offsetY := a.geo.PaperHeightPx * float64(row)
	halfW := a.geo.SquareSize * a.scaleX / 2
	halfH := a.geo.SquareSize * a.scaleY / 2

	for sy := 0; sy < a.geo.SquaresY; sy++ {
		if err := ctx.Err(); err != nil {
			return Page{}, err
		}
		cy := (float64(sy) + 0.5) * a.geo.SquareSize
		imgY := (offsetY + cy) * a.scaleY

		for sx := 0; sx < a.geo.SquaresX; sx++ {
			cx := (float64(sx) + 0.5) * a.geo.SquareSize
			imgX := (offsetX + cx) * a.scaleX

			region := rect{
				x0: int(math.Floor(imgX - halfW)),
				y0: int(math.Floor(imgY - halfH)),
				x1: int(math.Ceil(imgX + halfW)),
				y1: int(math.Ceil(imgY + halfH)),
			}.clamp(a.buf.w, a.buf.h)
			if region.empty() {
				// Sampling rectangle fell outside the image; skip the
				// cell rather than erroring.
				continue
			}

			sample := sampleArea(a.buf, region, a.composer.colorMode)
			a.classifier.classify(&sample)

			edge := false
			if sample.background && a.composer.preserveEdges {
				edge = a.classifier.isEdge(a.buf, region)
			}

			if dot, ok := a.composer.compose(sample, edge, cx, cy); ok {
				page.Dots = append(page.Dots, dot)
			}
		}
	}
	return page, nil
}
