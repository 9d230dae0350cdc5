package rasterbate

// Dot is one drawing instruction: a filled circle in page-local pixel
// coordinates.
type Dot struct {
	CenterX float64
	CenterY float64
	Radius  float64
	Color   RGB
}

// dotComposer turns a cell's sample (and edge verdict) into a dot, or
// suppresses the cell. Configuration is captured by value up front; no
// state is shared between cells.
type dotComposer struct {
	colorMode     string
	dotColor      RGB
	maxDotRadius  float64
	removal       bool
	preserveEdges bool
}

func newDotComposer(cfg Config, geo Geometry) (dotComposer, error) {
	dotColor, err := ParseHexColor(cfg.DotColor)
	if err != nil {
		return dotComposer{}, err
	}
	return dotComposer{
		colorMode:     cfg.ColorMode,
		dotColor:      dotColor,
		maxDotRadius:  geo.MaxDotRadius,
		removal:       cfg.BackgroundRemoval,
		preserveEdges: cfg.PreserveEdges,
	}, nil
}

// compose decides the cell at page-local center (cx, cy). It returns
// ok=false when the cell emits nothing: background cells (unless kept as
// an edge) and dots too small to see.
//
// The radius inversely tracks brightness, so dark regions produce large,
// dense dots and light regions thin out to nothing.
func (dc dotComposer) compose(sample areaSample, edge bool, cx, cy float64) (Dot, bool) {
	if dc.removal && sample.background && !(dc.preserveEdges && edge) {
		return Dot{}, false
	}

	radius := (1 - sample.brightness) * dc.maxDotRadius / 2
	if radius <= minVisibleRadius {
		return Dot{}, false
	}

	color := sample.color
	if dc.colorMode == ColorModeMono {
		color = dc.dotColor
	}
	return Dot{CenterX: cx, CenterY: cy, Radius: radius, Color: color}, true
}
