package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/dioptre/rasterbate"
)

// ReducePalette snaps every dot color across pages to the nearest of k
// cluster centers computed by k-means over the emitted colors. Useful for
// printing with a limited set of inks. Dot positions, radii, counts and
// page geometry are untouched; only colors change, in place.
//
// Pages whose dots already use k or fewer distinct colors are left as-is.
func ReducePalette(pages []rasterbate.Page, k int) error {
	if k <= 0 {
		return fmt.Errorf("palette size must be positive, got %d", k)
	}

	// Distinct colors only: the dataset would otherwise repeat the same
	// observation thousands of times for flat posters.
	seen := make(map[rasterbate.RGB]struct{})
	for _, page := range pages {
		for _, dot := range page.Dots {
			seen[dot.Color] = struct{}{}
		}
	}
	if len(seen) <= k {
		return nil
	}

	dataset := make(clusters.Observations, 0, len(seen))
	for c := range seen {
		col := toColorful(c)
		dataset = append(dataset, clusters.Coordinates{col.R, col.G, col.B})
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return fmt.Errorf("clustering dot colors: %w", err)
	}

	centers := make([]colorful.Color, 0, len(cc))
	for _, cluster := range cc {
		center := cluster.Center
		if len(center) < 3 {
			continue
		}
		centers = append(centers, colorful.Color{R: center[0], G: center[1], B: center[2]}.Clamped())
	}
	if len(centers) == 0 {
		return fmt.Errorf("clustering dot colors: no cluster centers for k=%d", k)
	}

	// Memoize the snap per distinct input color.
	snapped := make(map[rasterbate.RGB]rasterbate.RGB, len(seen))
	for c := range seen {
		snapped[c] = toRGB(nearest(toColorful(c), centers))
	}
	for pi := range pages {
		dots := pages[pi].Dots
		for di := range dots {
			dots[di].Color = snapped[dots[di].Color]
		}
	}
	return nil
}

func nearest(c colorful.Color, centers []colorful.Color) colorful.Color {
	best := centers[0]
	bestDist := c.DistanceRgb(best)
	for _, center := range centers[1:] {
		if d := c.DistanceRgb(center); d < bestDist {
			bestDist = d
			best = center
		}
	}
	return best
}

func toColorful(c rasterbate.RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func toRGB(c colorful.Color) rasterbate.RGB {
	r, g, b := c.Clamped().RGB255()
	return rasterbate.RGB{R: r, G: g, B: b}
}
