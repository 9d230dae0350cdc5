package rasterbate

import (
	"context"
	"fmt"
	"image"
)

// Service converts images to dot pages. A Service is stateless apart from
// its options and safe for concurrent use.
type Service struct {
	workers int
}

// Option customizes a Service.
type Option func(*Service)

// WithWorkers sets the number of pages assembled concurrently.
// Zero or negative selects the automatic size (see DefaultWorkers).
func WithWorkers(n int) Option {
	return func(s *Service) {
		s.workers = n
	}
}

// New creates a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rasterize converts img into one page per (PagesWide x PagesHigh) grid
// position, ordered row-major (row outer, column inner). Each page holds
// a background fill and the dots for its share of the poster.
//
// Configuration problems surface before any sampling begins; there is no
// partial output. Cancellation via ctx abandons remaining pages and
// returns the context error.
func (s *Service) Rasterize(ctx context.Context, img image.Image, cfg Config) ([]Page, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	buf := newPixelBuffer(img)
	if buf.w == 0 || buf.h == 0 {
		return nil, ErrEmptyImage
	}

	geo := planGeometry(cfg)
	asm, err := newAssembler(buf, cfg, geo)
	if err != nil {
		return nil, err
	}

	pages, err := s.assemblePages(ctx, asm)
	if err != nil {
		return nil, fmt.Errorf("assembling pages: %w", err)
	}
	return pages, nil
}

// Rasterize converts img with default service options. See
// Service.Rasterize.
func Rasterize(ctx context.Context, img image.Image, cfg Config) ([]Page, error) {
	return New().Rasterize(ctx, img, cfg)
}
