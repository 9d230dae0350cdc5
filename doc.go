// Package rasterbate converts a raster image into a grid of
// variable-radius dots tiled across one or more paper-sized pages, for
// large-format poster printing.
//
// # Quick Start
//
// Rasterize an image with the default single-page A4 setup:
//
//	pages, err := rasterbate.Rasterize(ctx, img, rasterbate.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, page := range pages {
//	    out := render.Image(page)
//	    // encode out, print it, ...
//	}
//
// The result is pure drawing data: each Page carries its pixel dimensions,
// a background fill color, and an ordered list of Dot instructions in
// page-local coordinates. Rendering (the render subpackage), image
// decoding, and file IO are left to callers.
//
// # Pipeline
//
// Per grid cell, the pipeline runs:
//
//  1. Area sampling (average color, dominant quantized color, brightness)
//  2. Background classification against Config.BackgroundColor
//  3. Edge detection for background cells when Config.PreserveEdges is set
//  4. Dot composition: radius from brightness, color from the color mode
//
// Dark image regions produce large dots and light regions produce small or
// no dots; this inverse encoding is what makes the pattern read as the
// source image from a distance.
//
// # Configuration
//
// Config is a plain value; start from DefaultConfig and adjust. Paper
// dimensions are millimetres converted at 144 DPI unless UsePixels is set.
// Validate (run automatically by Rasterize) rejects malformed values,
// including bad hex colors, before any sampling happens.
//
// # Parallelism
//
// Pages are independent, so a Service assembles them concurrently:
//
//	svc := rasterbate.New(rasterbate.WithWorkers(4))
//	pages, err := svc.Rasterize(ctx, img, cfg)
//
// Output is identical regardless of worker count.
package rasterbate
