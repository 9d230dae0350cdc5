package rasterbate

// Notes:
// - End-to-end scenarios use UsePixels configs so the expected geometry
//   can be stated exactly (no DPI conversion involved).
// - The parallel path must be bit-identical to the sequential path; pages
//   share only read-only state, so any divergence is a bug.

import (
	"context"
	"errors"
	"image/color"
	"math"
	"reflect"
	"testing"
)

func pixelConfig(paperW, paperH, dotSize float64) Config {
	cfg := DefaultConfig()
	cfg.UsePixels = true
	cfg.PaperWidth = paperW
	cfg.PaperHeight = paperH
	cfg.DotSize = dotSize
	return cfg
}

func TestRasterize_AllBlackSinglePage(t *testing.T) {
	t.Parallel()

	// 2x2 pure black source on a 20x20px page with 10px dots: one cell,
	// one dot at maximum radius (brightness 0 -> radius 10/2).
	cfg := pixelConfig(20, 20, 10)

	pages, err := Rasterize(context.Background(), uniformImage(2, 2, black), cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}

	page := pages[0]
	if page.WidthPx != 20 || page.HeightPx != 20 {
		t.Errorf("page size = %gx%g, want 20x20", page.WidthPx, page.HeightPx)
	}
	if page.Background != White {
		t.Errorf("background = %v, want white", page.Background)
	}
	if len(page.Dots) != 1 {
		t.Fatalf("got %d dots, want 1", len(page.Dots))
	}

	dot := page.Dots[0]
	if !approxEqual(dot.Radius, 5, 1e-9) {
		t.Errorf("radius = %g, want 5", dot.Radius)
	}
	if !approxEqual(dot.CenterX, 6, 1e-9) || !approxEqual(dot.CenterY, 6, 1e-9) {
		t.Errorf("center = (%g, %g), want (6, 6)", dot.CenterX, dot.CenterY)
	}
	if dot.Color != (RGB{0, 0, 0}) {
		t.Errorf("color = %v, want black", dot.Color)
	}
}

func TestRasterize_AllWhiteEmitsNothing(t *testing.T) {
	t.Parallel()

	cfg := pixelConfig(20, 20, 10)

	pages, err := Rasterize(context.Background(), uniformImage(2, 2, white), cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	if len(pages[0].Dots) != 0 {
		t.Fatalf("got %d dots, want 0 (white computes radius 0)", len(pages[0].Dots))
	}
}

func TestRasterize_DegenerateGridYieldsBlankPages(t *testing.T) {
	t.Parallel()

	// Dots larger than the paper: zero cells, background-only pages.
	cfg := pixelConfig(5, 5, 10)
	cfg.PagesWide = 2

	pages, err := Rasterize(context.Background(), uniformImage(4, 4, black), cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	for _, page := range pages {
		if len(page.Dots) != 0 {
			t.Fatalf("page %d has %d dots, want 0", page.Index, len(page.Dots))
		}
	}
}

// backgroundSplitConfig is shared by the removal scenarios: a 40x40 source
// with white columns x < 18 and black columns x >= 18, rasterized 1:1 onto
// a 40x40px page with 4px dots (8x8 grid, pitch 4.8).
//
// Cell column 3 samples columns 14-19 (4 white, 2 black): its average is
// within the 70% threshold of white, so it classifies background, but its
// 2px-expanded neighborhood is 60% background, which is a preservable
// edge. Cell columns 0-2 are pure white (background, not edges); columns
// 4-7 are pure black (foreground).
func backgroundSplitConfig() Config {
	cfg := pixelConfig(40, 40, 4)
	cfg.BackgroundRemoval = true
	cfg.BackgroundColor = "#ffffff"
	cfg.BackgroundThreshold = 70
	return cfg
}

func TestRasterize_BackgroundRemoval(t *testing.T) {
	t.Parallel()

	img := vSplitImage(40, 40, 18, white, black)
	cfg := backgroundSplitConfig()

	pages, err := Rasterize(context.Background(), img, cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	page := pages[0]
	// 8 rows x 4 foreground columns (4-7); the mixed column 3 is
	// classified background and suppressed without edge preservation.
	if len(page.Dots) != 32 {
		t.Fatalf("got %d dots, want 32", len(page.Dots))
	}
	for _, dot := range page.Dots {
		if dot.CenterX < 20 {
			t.Fatalf("dot at x=%g sits over the white half", dot.CenterX)
		}
	}
}

func TestRasterize_PreserveEdgesKeepsBoundaryCells(t *testing.T) {
	t.Parallel()

	img := vSplitImage(40, 40, 18, white, black)
	cfg := backgroundSplitConfig()
	cfg.PreserveEdges = true

	pages, err := Rasterize(context.Background(), img, cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}

	page := pages[0]
	// The 8 boundary cells (column 3, center x=16.8) come back.
	if len(page.Dots) != 40 {
		t.Fatalf("got %d dots, want 40", len(page.Dots))
	}

	edgeDots := 0
	for _, dot := range page.Dots {
		if approxEqual(dot.CenterX, 16.8, 1e-9) {
			edgeDots++
		} else if dot.CenterX < 16 {
			t.Fatalf("dot at x=%g is over pure background", dot.CenterX)
		}
	}
	if edgeDots != 8 {
		t.Fatalf("got %d edge-preserved dots, want 8", edgeDots)
	}
}

func TestRasterize_MultiPageTiling(t *testing.T) {
	t.Parallel()

	// Two pages side by side over a half-red half-blue source: each page
	// must sample only its own half, in average color mode.
	left := color.RGBA{200, 0, 0, 255}
	right := color.RGBA{0, 0, 200, 255}
	img := vSplitImage(40, 20, 20, left, right)

	cfg := pixelConfig(10, 10, 2)
	cfg.PagesWide = 2
	cfg.ColorMode = ColorModeAverage

	pages, err := Rasterize(context.Background(), img, cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}

	// 4x4 grid per page, every cell dark enough to emit.
	for _, page := range pages {
		if len(page.Dots) != 16 {
			t.Fatalf("page %d: got %d dots, want 16", page.Index, len(page.Dots))
		}
	}
	for _, dot := range pages[0].Dots {
		if dot.Color != (RGB{200, 0, 0}) {
			t.Fatalf("page 0 dot color = %v, want pure left color", dot.Color)
		}
	}
	for _, dot := range pages[1].Dots {
		if dot.Color != (RGB{0, 0, 200}) {
			t.Fatalf("page 1 dot color = %v, want pure right color", dot.Color)
		}
	}
}

func TestRasterize_PageAndDotOrdering(t *testing.T) {
	t.Parallel()

	// Quadrant colors expose the scan order: dots and pages are row-major.
	img := quadrantImage(20, 20,
		color.RGBA{200, 0, 0, 255},   // top-left: red
		color.RGBA{0, 200, 0, 255},   // top-right: green
		color.RGBA{0, 0, 200, 255},   // bottom-left: blue
		color.RGBA{200, 200, 0, 255}, // bottom-right: yellow
	)

	cfg := pixelConfig(10, 10, 4) // 2x2 grid
	cfg.ColorMode = ColorModeAverage

	pages, err := Rasterize(context.Background(), img, cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	dots := pages[0].Dots
	if len(dots) != 4 {
		t.Fatalf("got %d dots, want 4", len(dots))
	}

	isDominant := func(v, other1, other2 uint8) bool {
		return v > 150 && other1 < 60 && other2 < 60
	}
	if !isDominant(dots[0].Color.R, dots[0].Color.G, dots[0].Color.B) {
		t.Errorf("dots[0] = %v, want red-dominant (top-left first)", dots[0].Color)
	}
	if !isDominant(dots[1].Color.G, dots[1].Color.R, dots[1].Color.B) {
		t.Errorf("dots[1] = %v, want green-dominant", dots[1].Color)
	}
	if !isDominant(dots[2].Color.B, dots[2].Color.R, dots[2].Color.G) {
		t.Errorf("dots[2] = %v, want blue-dominant", dots[2].Color)
	}
	if dots[3].Color.R < 150 || dots[3].Color.G < 150 || dots[3].Color.B > 60 {
		t.Errorf("dots[3] = %v, want yellow-dominant (bottom-right last)", dots[3].Color)
	}

	// Page ordering: rows outer, columns inner.
	cfg.PagesWide = 2
	cfg.PagesHigh = 2
	pages, err = Rasterize(context.Background(), img, cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages) != 4 {
		t.Fatalf("got %d pages, want 4", len(pages))
	}
	wantPositions := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for i, page := range pages {
		if page.Index != i {
			t.Errorf("pages[%d].Index = %d", i, page.Index)
		}
		if page.Col != wantPositions[i][0] || page.Row != wantPositions[i][1] {
			t.Errorf("pages[%d] at (%d,%d), want (%d,%d)",
				i, page.Col, page.Row, wantPositions[i][0], wantPositions[i][1])
		}
	}
}

func TestRasterize_ParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	// A gradient source so every page differs.
	img := uniformImage(60, 60, black)
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			v := uint8((x*4 + y) % 256)
			img.SetRGBA(x, y, color.RGBA{v, v / 2, 255 - v, 255})
		}
	}

	cfg := pixelConfig(10, 10, 2)
	cfg.PagesWide = 3
	cfg.PagesHigh = 2
	cfg.ColorMode = ColorModeMulti

	sequential, err := New(WithWorkers(1)).Rasterize(context.Background(), img, cfg)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	parallel, err := New(WithWorkers(4)).Rasterize(context.Background(), img, cfg)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if !reflect.DeepEqual(sequential, parallel) {
		t.Fatal("parallel output differs from sequential output")
	}
}

func TestRasterize_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "nil image",
			run: func() error {
				_, err := Rasterize(context.Background(), nil, DefaultConfig())
				return err
			},
			wantErr: ErrNilImage,
		},
		{
			name: "empty image",
			run: func() error {
				_, err := Rasterize(context.Background(), uniformImage(0, 0, white), DefaultConfig())
				return err
			},
			wantErr: ErrEmptyImage,
		},
		{
			name: "invalid config",
			run: func() error {
				cfg := DefaultConfig()
				cfg.DotSize = -1
				_, err := Rasterize(context.Background(), uniformImage(2, 2, white), cfg)
				return err
			},
			wantErr: ErrInvalidDotSize,
		},
		{
			name: "malformed background hex fails instead of defaulting",
			run: func() error {
				cfg := DefaultConfig()
				cfg.BackgroundColor = "fffff"
				_, err := Rasterize(context.Background(), uniformImage(2, 2, white), cfg)
				return err
			},
			wantErr: ErrInvalidColor,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRasterize_Cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := pixelConfig(40, 40, 2)
	cfg.PagesWide = 2
	cfg.PagesHigh = 2

	_, err := Rasterize(ctx, uniformImage(50, 50, black), cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestRasterize_DeterministicAcrossCalls(t *testing.T) {
	t.Parallel()

	img := vSplitImage(30, 30, 15, white, black)
	cfg := pixelConfig(15, 15, 3)
	cfg.ColorMode = ColorModeAverage

	first, err := Rasterize(context.Background(), img, cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	second, err := Rasterize(context.Background(), img, cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated calls must produce identical pages")
	}
}

func TestRasterize_SuppressionBoundary(t *testing.T) {
	t.Parallel()

	// Gray level chosen so the radius lands just above the 0.5 cutoff:
	// radius = (1-brightness)*dot/2 with dot=10. Gray 226 has brightness
	// ~0.886, radius ~0.57 -> kept. Gray 231 has brightness ~0.906,
	// radius ~0.47 -> suppressed.
	keep := uniformImage(2, 2, color.RGBA{226, 226, 226, 255})
	drop := uniformImage(2, 2, color.RGBA{231, 231, 231, 255})
	cfg := pixelConfig(20, 20, 10)

	pages, err := Rasterize(context.Background(), keep, cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages[0].Dots) != 1 {
		t.Fatalf("gray 226: got %d dots, want 1", len(pages[0].Dots))
	}
	wantRadius := (1 - 226.0/255.0) * 10 / 2
	if !approxEqual(pages[0].Dots[0].Radius, wantRadius, 1e-9) {
		t.Errorf("radius = %g, want %g", pages[0].Dots[0].Radius, wantRadius)
	}
	if math.Abs(wantRadius-0.5) < 0.05 {
		t.Fatalf("test premise broken: radius %g too close to the cutoff", wantRadius)
	}

	pages, err = Rasterize(context.Background(), drop, cfg)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages[0].Dots) != 0 {
		t.Fatalf("gray 231: got %d dots, want 0", len(pages[0].Dots))
	}
}
