package rasterbate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color mode constants.
const (
	ColorModeMono    = "mono"    // every dot uses Config.DotColor
	ColorModeMulti   = "multi"   // every dot uses its cell's dominant color
	ColorModeAverage = "average" // every dot uses its cell's average color
)

// Rendering resolution in pixels per inch. Paper dimensions given in
// millimetres are converted at this density.
const resolution = 144.0

const mmPerInch = 25.4

// Cell pitch is the dot diameter plus a 20% gutter.
const cellPitchFactor = 1.2

// Dots at or below this radius are imperceptible and suppressed.
const minVisibleRadius = 0.5

// Config controls how an image is converted to dot pages.
// The zero value is not usable; start from DefaultConfig.
type Config struct {
	PagesWide int // horizontal page count (>= 1)
	PagesHigh int // vertical page count (>= 1)

	PaperWidth  float64 // per-page width, mm (or px when UsePixels)
	PaperHeight float64 // per-page height, mm (or px when UsePixels)
	UsePixels   bool    // treat PaperWidth/PaperHeight/DotSize as pixels

	// TargetWidth is the width the source image is pre-scaled to before
	// rasterizing. The core samples whatever image it is handed; scaling
	// is applied by callers (see internal/imaging).
	TargetWidth int

	DotSize float64 // dot diameter at full intensity, mm (or px)

	ColorMode string // "mono", "multi" or "average"
	DotColor  string // hex, used in mono mode

	BackgroundRemoval   bool
	BackgroundColor     string  // hex reference color for removal
	BackgroundThreshold float64 // 0-100, match distance as a percentage
	PreserveEdges       bool    // keep background cells on object boundaries
}

// DefaultConfig returns the standard single-page A4 mono setup.
func DefaultConfig() Config {
	return Config{
		PagesWide:           1,
		PagesHigh:           1,
		PaperWidth:          210,
		PaperHeight:         297,
		UsePixels:           false,
		TargetWidth:         1024,
		DotSize:             5,
		ColorMode:           ColorModeMono,
		DotColor:            "#000000",
		BackgroundRemoval:   false,
		BackgroundColor:     "#ffffff",
		BackgroundThreshold: 20,
		PreserveEdges:       false,
	}
}

// Validate checks all configuration fields, including hex colors.
// A malformed color fails here rather than silently defaulting.
func (c Config) Validate() error {
	if c.PagesWide < 1 || c.PagesHigh < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidPageCount, c.PagesWide, c.PagesHigh)
	}
	if c.PaperWidth <= 0 || c.PaperHeight <= 0 {
		return fmt.Errorf("%w: got %gx%g", ErrInvalidPaperSize, c.PaperWidth, c.PaperHeight)
	}
	if c.DotSize <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidDotSize, c.DotSize)
	}
	if c.TargetWidth <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTargetWidth, c.TargetWidth)
	}
	if !isValidColorMode(c.ColorMode) {
		return fmt.Errorf("%w: %q", ErrInvalidColorMode, c.ColorMode)
	}
	if c.BackgroundThreshold < 0 || c.BackgroundThreshold > 100 {
		return fmt.Errorf("%w: got %g", ErrInvalidThreshold, c.BackgroundThreshold)
	}
	if _, err := ParseHexColor(c.DotColor); err != nil {
		return fmt.Errorf("dot color: %w", err)
	}
	if _, err := ParseHexColor(c.BackgroundColor); err != nil {
		return fmt.Errorf("background color: %w", err)
	}
	return nil
}

func isValidColorMode(mode string) bool {
	switch mode {
	case ColorModeMono, ColorModeMulti, ColorModeAverage:
		return true
	}
	return false
}

// RGB is an 8-bit-per-channel color as carried by samples and dots.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// ParseHexColor parses "#rrggbb" (or "#rgb") into an RGB value.
// The error wraps ErrInvalidColor.
func ParseHexColor(s string) (RGB, error) {
	col, err := colorful.Hex(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// Paper size presets in millimetres, portrait orientation.
var paperSizes = map[string][2]float64{
	"a3":     {297, 420},
	"a4":     {210, 297},
	"a5":     {148, 210},
	"letter": {215.9, 279.4},
	"legal":  {215.9, 355.6},
}

// PaperSize looks up a named paper preset (case-insensitive) and returns
// its portrait dimensions in millimetres.
func PaperSize(name string) (width, height float64, ok bool) {
	dims, ok := paperSizes[strings.ToLower(name)]
	if !ok {
		return 0, 0, false
	}
	return dims[0], dims[1], true
}

// PaperSizeNames returns the supported preset names in sorted order.
func PaperSizeNames() []string {
	names := make([]string, 0, len(paperSizes))
	for name := range paperSizes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
