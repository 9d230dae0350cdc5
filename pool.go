package rasterbate

import (
	"context"
	"runtime"
	"sync"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one page is always in flight.
	MinWorkers = 1

	// MaxWorkers caps concurrency; past this point page assembly is
	// memory-bandwidth bound and extra goroutines stop helping.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for the caller's rendering/encoding work.
	cpuDivisor = 2
)

// DefaultWorkers returns the automatic worker count: GOMAXPROCS/2 clamped
// to [MinWorkers, MaxWorkers].
func DefaultWorkers() int {
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// assemblePages fans page assembly out to a bounded set of workers. Pages
// are independent (shared state is read-only), so each worker writes its
// result by page index with no locking. The first error wins; remaining
// pages are abandoned.
func (s *Service) assemblePages(ctx context.Context, asm *assembler) ([]Page, error) {
	total := asm.pagesWide * asm.pagesHigh
	workers := s.workers
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > total {
		workers = total
	}

	pages := make([]Page, total)
	errs := make([]error, total)

	if workers == 1 {
		for row := 0; row < asm.pagesHigh; row++ {
			for col := 0; col < asm.pagesWide; col++ {
				page, err := asm.assemblePage(ctx, col, row)
				if err != nil {
					return nil, err
				}
				pages[page.Index] = page
			}
		}
		return pages, nil
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for row := 0; row < asm.pagesHigh; row++ {
		for col := 0; col < asm.pagesWide; col++ {
			if ctx.Err() != nil {
				break
			}
			sem <- struct{}{}
			wg.Add(1)
			go func(col, row int) {
				defer wg.Done()
				defer func() { <-sem }()
				page, err := asm.assemblePage(ctx, col, row)
				idx := row*asm.pagesWide + col
				if err != nil {
					errs[idx] = err
					return
				}
				pages[idx] = page
			}(col, row)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return pages, nil
}
