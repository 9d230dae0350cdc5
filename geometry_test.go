package rasterbate

// Notes:
// - planGeometry is a pure function; determinism is tested by repeated
//   calls on the same config.
// - Unit round-trips: 25.4mm is exactly one inch, so it converts to
//   exactly the resolution constant; UsePixels passes values through.

import "testing"

func TestPlanGeometry_UnitConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         Config
		wantWidthPx float64
		wantSquare  float64
		wantMaxR    float64
	}{
		{
			name: "pixels pass through unchanged",
			cfg: Config{
				PaperWidth: 100, PaperHeight: 50, DotSize: 10, UsePixels: true,
			},
			wantWidthPx: 100,
			wantSquare:  12,
			wantMaxR:    10,
		},
		{
			name: "one inch of millimetres converts to the resolution",
			cfg: Config{
				PaperWidth: 25.4, PaperHeight: 25.4, DotSize: 25.4, UsePixels: false,
			},
			wantWidthPx: resolution,
			wantSquare:  resolution * cellPitchFactor,
			wantMaxR:    resolution,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			geo := planGeometry(tt.cfg)
			if geo.PaperWidthPx != tt.wantWidthPx {
				t.Errorf("PaperWidthPx = %g, want %g", geo.PaperWidthPx, tt.wantWidthPx)
			}
			if !approxEqual(geo.SquareSize, tt.wantSquare, 1e-9) {
				t.Errorf("SquareSize = %g, want %g", geo.SquareSize, tt.wantSquare)
			}
			if geo.MaxDotRadius != tt.wantMaxR {
				t.Errorf("MaxDotRadius = %g, want %g", geo.MaxDotRadius, tt.wantMaxR)
			}
		})
	}
}

func TestPlanGeometry_GridCounts(t *testing.T) {
	t.Parallel()

	// 100px paper, 10px dots: pitch 12, floor(100/12) = 8.
	cfg := Config{PaperWidth: 100, PaperHeight: 60, DotSize: 10, UsePixels: true}
	geo := planGeometry(cfg)
	if geo.SquaresX != 8 {
		t.Errorf("SquaresX = %d, want 8", geo.SquaresX)
	}
	if geo.SquaresY != 5 {
		t.Errorf("SquaresY = %d, want 5", geo.SquaresY)
	}
}

func TestPlanGeometry_DegenerateGrid(t *testing.T) {
	t.Parallel()

	// Cell pitch larger than the paper: zero cells, not an error.
	cfg := Config{PaperWidth: 5, PaperHeight: 5, DotSize: 10, UsePixels: true}
	geo := planGeometry(cfg)
	if geo.SquaresX != 0 || geo.SquaresY != 0 {
		t.Fatalf("squares = %dx%d, want 0x0", geo.SquaresX, geo.SquaresY)
	}
}

func TestPlanGeometry_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := Config{PaperWidth: 210, PaperHeight: 297, DotSize: 5, UsePixels: false}
	first := planGeometry(cfg)
	for i := 0; i < 10; i++ {
		if got := planGeometry(cfg); got != first {
			t.Fatalf("planGeometry not deterministic: %+v != %+v", got, first)
		}
	}
}
