package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dioptre/rasterbate"
	"github.com/dioptre/rasterbate/internal/imaging"
	"github.com/dioptre/rasterbate/render"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidArgs  = errors.New("usage: rasterbate [flags] <input-image>")
	ErrUnknownPaper = errors.New("unknown paper preset")
)

// backgroundAuto requests background detection from the source image.
const backgroundAuto = "auto"

// run executes one full conversion: load, prepare, rasterize, render,
// write page files. Progress goes to errOut when verbose; the final
// summary goes to out unless quiet.
func run(ctx context.Context, f *cliFlags, args []string, fs flagChecker, out, errOut io.Writer) error {
	if len(args) != 1 {
		return ErrInvalidArgs
	}
	inputPath := args[0]

	var profile *Profile
	if f.config != "" {
		p, err := LoadProfile(f.config)
		if err != nil {
			return err
		}
		profile = p
	}

	cfg, err := buildConfig(f, fs, profile)
	if err != nil {
		return err
	}

	src, err := imaging.Load(inputPath)
	if err != nil {
		return err
	}
	if f.verbose {
		b := src.Bounds()
		fmt.Fprintf(errOut, "Loaded %s (%dx%d)\n", inputPath, b.Dx(), b.Dy())
	}

	if strings.EqualFold(cfg.BackgroundColor, backgroundAuto) {
		cfg.BackgroundColor = rasterbate.DetectBackgroundColor(src)
		if f.verbose {
			fmt.Fprintf(errOut, "Detected background color %s\n", cfg.BackgroundColor)
		}
	}

	prepared := prepare(src, cfg.TargetWidth)
	if f.verbose {
		b := prepared.Bounds()
		fmt.Fprintf(errOut, "Prepared source at %dx%d\n", b.Dx(), b.Dy())
	}

	svc := rasterbate.New(rasterbate.WithWorkers(f.workers))
	pages, err := svc.Rasterize(ctx, prepared, cfg)
	if err != nil {
		return err
	}

	outDir, palette := resolveOutput(f, fs, profile)
	if palette > 0 {
		if err := render.ReducePalette(pages, palette); err != nil {
			return err
		}
		if f.verbose {
			fmt.Fprintf(errOut, "Reduced dot colors to %d inks\n", palette)
		}
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	for _, page := range pages {
		name := pageFileName(stem, page)
		path := filepath.Join(outDir, name)
		if err := render.SavePNG(render.Image(page), path); err != nil {
			return err
		}
		if f.verbose {
			fmt.Fprintf(errOut, "Wrote %s (%d dots)\n", path, len(page.Dots))
		}
	}

	if !f.quiet {
		fmt.Fprintf(out, "Created %d page(s) in %s\n", len(pages), outDir)
	}
	return nil
}

// resolveOutput merges the output directory and palette size with the
// same precedence buildConfig uses: explicitly set flags beat the
// profile, which beats the flag defaults. An explicit "-o ." or
// "--palette 0" therefore overrides a profile's output section.
func resolveOutput(f *cliFlags, fs flagChecker, profile *Profile) (dir string, palette int) {
	dir = f.output
	if !fs.Changed("output") && profile != nil && profile.Output.Dir != "" {
		dir = profile.Output.Dir
	}
	palette = f.palette
	if !fs.Changed("palette") && profile != nil {
		palette = profile.Output.Palette
	}
	return dir, palette
}

// prepare flattens transparency onto white and scales to the target width.
func prepare(src image.Image, targetWidth int) image.Image {
	return imaging.ScaleToWidth(imaging.FlattenWhite(src), targetWidth)
}

// pageFileName names a page file by its 1-based grid position, e.g.
// "photo_p2x1.png" for the second column of the first row.
func pageFileName(stem string, page rasterbate.Page) string {
	return fmt.Sprintf("%s_p%dx%d.png", stem, page.Col+1, page.Row+1)
}

// flagChecker is the part of pflag.FlagSet that buildConfig needs.
type flagChecker interface {
	Changed(name string) bool
}
