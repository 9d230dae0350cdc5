package rasterbate

import (
	"image"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
)

// Edge detection examines the cell neighborhood expanded by this many
// pixels on every side.
const edgeMargin = 2

// A neighborhood is a background/foreground transition when its background
// pixel fraction falls strictly inside (edgeRatioLow, edgeRatioHigh).
// Nearly-all-background and nearly-all-foreground neighborhoods are not
// transitions.
const (
	edgeRatioLow  = 0.2
	edgeRatioHigh = 0.8
)

// backgroundClassifier decides whether colors match the configured
// background within the threshold. All methods treat everything as
// foreground when removal is disabled.
type backgroundClassifier struct {
	enabled   bool
	reference colorful.Color
	threshold float64 // normalized to [0,1] from the 0-100 config value
}

func newBackgroundClassifier(cfg Config) (backgroundClassifier, error) {
	ref, err := ParseHexColor(cfg.BackgroundColor)
	if err != nil {
		return backgroundClassifier{}, err
	}
	return backgroundClassifier{
		enabled:   cfg.BackgroundRemoval,
		reference: ref.colorful(),
		threshold: cfg.BackgroundThreshold / 100.0,
	}, nil
}

// matches reports whether c is within the threshold distance of the
// reference color. The distance is Euclidean in RGB divided by 255
// (DistanceRgb over [0,1] components is the same quantity). Dividing by
// the per-axis maximum rather than the diagonal is the historical formula
// and is kept exactly for compatibility with existing threshold settings.
func (bc backgroundClassifier) matches(c RGB) bool {
	return bc.reference.DistanceRgb(c.colorful()) < bc.threshold
}

// classify fills in the sample's background flag for a cell-level color.
func (bc backgroundClassifier) classify(sample *areaSample) {
	sample.background = bc.enabled && bc.matches(sample.color)
}

// isEdge reports whether the cell region r sits on an object boundary: the
// region expanded by edgeMargin (clamped to the buffer) is classified per
// pixel, and a mixed neighborhood marks an edge. Called only for cells
// already classified background when edge preservation is on.
func (bc backgroundClassifier) isEdge(buf *pixelBuffer, r rect) bool {
	region := r.expand(edgeMargin).clamp(buf.w, buf.h)
	total := region.area()
	if total == 0 {
		return false
	}

	background := 0
	for y := region.y0; y < region.y1; y++ {
		for x := region.x0; x < region.x1; x++ {
			if bc.matches(buf.rgbAt(x, y)) {
				background++
			}
		}
	}

	ratio := float64(background) / float64(total)
	return ratio > edgeRatioLow && ratio < edgeRatioHigh
}

// DetectBackgroundColor guesses the background of an image as its dominant
// color and returns it as a hex string suitable for Config.BackgroundColor.
// Intended for callers offering an "auto" background option.
func DetectBackgroundColor(img image.Image) string {
	return dominantcolor.Hex(dominantcolor.Find(img))
}
