package rasterbate

import "errors"

// Sentinel errors for library operations.
var (
	ErrNilImage   = errors.New("source image cannot be nil")
	ErrEmptyImage = errors.New("source image has no pixels")

	// Configuration validation errors.
	ErrInvalidPageCount   = errors.New("page counts must be at least 1")
	ErrInvalidPaperSize   = errors.New("paper dimensions must be positive")
	ErrInvalidDotSize     = errors.New("dot size must be positive")
	ErrInvalidTargetWidth = errors.New("target width must be positive")
	ErrInvalidColorMode   = errors.New("invalid color mode")
	ErrInvalidThreshold   = errors.New("background threshold must be between 0 and 100")
	ErrInvalidColor       = errors.New("invalid hex color")
)
