package main

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/dioptre/rasterbate"
)

// cliFlags holds every command-line option. Field defaults mirror
// rasterbate.DefaultConfig so that --help shows the effective values.
type cliFlags struct {
	config  string
	output  string
	workers int
	verbose bool
	quiet   bool
	version bool

	paper       string
	landscape   bool
	paperWidth  float64
	paperHeight float64
	usePixels   bool

	pagesWide int
	pagesHigh int

	dotSize     float64
	colorMode   string
	dotColor    string
	targetWidth int

	backgroundRemoval   bool
	backgroundColor     string
	backgroundThreshold float64
	preserveEdges       bool

	palette int
}

// newFlagSet registers all flags on a fresh FlagSet bound to f.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	def := rasterbate.DefaultConfig()
	fs := flag.NewFlagSet("rasterbate", flag.ContinueOnError)

	fs.StringVarP(&f.config, "config", "c", "", "config profile name or path (YAML)")
	fs.StringVarP(&f.output, "output", "o", ".", "output directory for page files")
	fs.IntVarP(&f.workers, "workers", "w", 0, "pages assembled in parallel (0 = auto)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print progress to stderr")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress non-error output")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.StringVar(&f.paper, "paper", "", "paper preset: "+strings.Join(rasterbate.PaperSizeNames(), ", "))
	fs.BoolVar(&f.landscape, "landscape", false, "swap paper width and height")
	fs.Float64Var(&f.paperWidth, "paper-width", def.PaperWidth, "paper width in mm (px with --use-pixels)")
	fs.Float64Var(&f.paperHeight, "paper-height", def.PaperHeight, "paper height in mm (px with --use-pixels)")
	fs.BoolVar(&f.usePixels, "use-pixels", def.UsePixels, "treat paper and dot sizes as pixels")

	fs.IntVar(&f.pagesWide, "pages-wide", def.PagesWide, "horizontal page count")
	fs.IntVar(&f.pagesHigh, "pages-high", def.PagesHigh, "vertical page count")

	fs.Float64Var(&f.dotSize, "dot-size", def.DotSize, "dot diameter in mm (px with --use-pixels)")
	fs.StringVar(&f.colorMode, "color-mode", def.ColorMode, "dot color mode: mono, multi, average")
	fs.StringVar(&f.dotColor, "dot-color", def.DotColor, "dot color in mono mode (hex)")
	fs.IntVar(&f.targetWidth, "target-width", def.TargetWidth, "pre-scale source image to this width in px")

	fs.BoolVar(&f.backgroundRemoval, "background-removal", def.BackgroundRemoval, "suppress dots over the background color")
	fs.StringVar(&f.backgroundColor, "background-color", def.BackgroundColor, `background color (hex, or "auto" to detect)`)
	fs.Float64Var(&f.backgroundThreshold, "background-threshold", def.BackgroundThreshold, "background match threshold, 0-100")
	fs.BoolVar(&f.preserveEdges, "preserve-edges", def.PreserveEdges, "keep background dots on object boundaries")

	fs.IntVar(&f.palette, "palette", 0, "reduce dot colors to N inks via clustering (0 = off)")

	return fs
}

// parseFlags parses args (excluding the program name) and returns the
// flags, the flag set (for Changed lookups), and positional arguments.
func parseFlags(args []string) (*cliFlags, *flag.FlagSet, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, err
	}
	return f, fs, fs.Args(), nil
}

// buildConfig merges defaults, the optional profile, and explicitly set
// flags (in that precedence order) into a core Config.
func buildConfig(f *cliFlags, fs flagChecker, profile *Profile) (rasterbate.Config, error) {
	cfg := rasterbate.DefaultConfig()
	if profile != nil {
		profile.apply(&cfg)
	}

	if f.paper != "" && fs.Changed("paper") {
		w, h, ok := rasterbate.PaperSize(f.paper)
		if !ok {
			return cfg, fmt.Errorf("%w: %q (supported: %s)",
				ErrUnknownPaper, f.paper, strings.Join(rasterbate.PaperSizeNames(), ", "))
		}
		cfg.PaperWidth = w
		cfg.PaperHeight = h
		cfg.UsePixels = false
	}

	if fs.Changed("paper-width") {
		cfg.PaperWidth = f.paperWidth
	}
	if fs.Changed("paper-height") {
		cfg.PaperHeight = f.paperHeight
	}
	if fs.Changed("use-pixels") {
		cfg.UsePixels = f.usePixels
	}
	if fs.Changed("landscape") && f.landscape {
		cfg.PaperWidth, cfg.PaperHeight = cfg.PaperHeight, cfg.PaperWidth
	}
	if fs.Changed("pages-wide") {
		cfg.PagesWide = f.pagesWide
	}
	if fs.Changed("pages-high") {
		cfg.PagesHigh = f.pagesHigh
	}
	if fs.Changed("dot-size") {
		cfg.DotSize = f.dotSize
	}
	if fs.Changed("color-mode") {
		cfg.ColorMode = f.colorMode
	}
	if fs.Changed("dot-color") {
		cfg.DotColor = f.dotColor
	}
	if fs.Changed("target-width") {
		cfg.TargetWidth = f.targetWidth
	}
	if fs.Changed("background-removal") {
		cfg.BackgroundRemoval = f.backgroundRemoval
	}
	if fs.Changed("background-color") {
		cfg.BackgroundColor = f.backgroundColor
	}
	if fs.Changed("background-threshold") {
		cfg.BackgroundThreshold = f.backgroundThreshold
	}
	if fs.Changed("preserve-edges") {
		cfg.PreserveEdges = f.preserveEdges
	}

	return cfg, nil
}
