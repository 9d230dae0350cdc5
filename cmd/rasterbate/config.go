package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dioptre/rasterbate"
	"github.com/dioptre/rasterbate/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Profile is a YAML configuration profile. Zero-valued numeric and string
// fields keep the built-in defaults; booleans apply as written (their
// defaults are all false).
type Profile struct {
	Pages      PagesSection      `yaml:"pages"`
	Paper      PaperSection      `yaml:"paper"`
	Dots       DotsSection       `yaml:"dots"`
	Background BackgroundSection `yaml:"background"`
	Output     OutputSection     `yaml:"output"`
}

// PagesSection sets the page grid.
type PagesSection struct {
	Wide int `yaml:"wide"`
	High int `yaml:"high"`
}

// PaperSection sets the physical page dimensions.
type PaperSection struct {
	Size      string  `yaml:"size"` // preset name, overrides width/height
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Landscape bool    `yaml:"landscape"`
	UsePixels bool    `yaml:"usePixels"`
}

// DotsSection sets dot sizing and coloring.
type DotsSection struct {
	Size        float64 `yaml:"size"`
	ColorMode   string  `yaml:"colorMode"`
	Color       string  `yaml:"color"`
	TargetWidth int     `yaml:"targetWidth"`
}

// BackgroundSection sets background removal.
type BackgroundSection struct {
	Removal       bool    `yaml:"removal"`
	Color         string  `yaml:"color"`
	Threshold     float64 `yaml:"threshold"`
	PreserveEdges bool    `yaml:"preserveEdges"`
}

// OutputSection sets CLI output behavior.
type OutputSection struct {
	Dir     string `yaml:"dir"`
	Palette int    `yaml:"palette"`
}

// apply overlays the profile's set fields onto cfg.
func (p *Profile) apply(cfg *rasterbate.Config) {
	if p.Pages.Wide > 0 {
		cfg.PagesWide = p.Pages.Wide
	}
	if p.Pages.High > 0 {
		cfg.PagesHigh = p.Pages.High
	}

	if p.Paper.Size != "" {
		if w, h, ok := rasterbate.PaperSize(p.Paper.Size); ok {
			cfg.PaperWidth = w
			cfg.PaperHeight = h
		}
	}
	if p.Paper.Width > 0 {
		cfg.PaperWidth = p.Paper.Width
	}
	if p.Paper.Height > 0 {
		cfg.PaperHeight = p.Paper.Height
	}
	cfg.UsePixels = p.Paper.UsePixels
	if p.Paper.Landscape {
		cfg.PaperWidth, cfg.PaperHeight = cfg.PaperHeight, cfg.PaperWidth
	}

	if p.Dots.Size > 0 {
		cfg.DotSize = p.Dots.Size
	}
	if p.Dots.ColorMode != "" {
		cfg.ColorMode = p.Dots.ColorMode
	}
	if p.Dots.Color != "" {
		cfg.DotColor = p.Dots.Color
	}
	if p.Dots.TargetWidth > 0 {
		cfg.TargetWidth = p.Dots.TargetWidth
	}

	cfg.BackgroundRemoval = p.Background.Removal
	if p.Background.Color != "" {
		cfg.BackgroundColor = p.Background.Color
	}
	if p.Background.Threshold > 0 {
		cfg.BackgroundThreshold = p.Background.Threshold
	}
	cfg.PreserveEdges = p.Background.PreserveEdges
}

// LoadProfile loads a profile from a file path or profile name.
// Names (no path separator) are searched in the current directory, then
// in the user config directory under "rasterbate/". Missing files are an
// error, never a silent fallback.
func LoadProfile(nameOrPath string) (*Profile, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var profile Profile
	if err := yamlutil.UnmarshalStrict(data, &profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return &profile, nil
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a profile by name: current directory
// first, then the user config directory, trying .yaml then .yml.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		tried = append(tried, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "rasterbate", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			tried = append(tried, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
