package drivestore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sourcegraph/conc/pool"
)

// SaveAll saves every request into the folder at folderPath with at most maxConcurrency
// saves in flight. A non-positive maxConcurrency uses the store default.
//
// Completion order is unspecified. SaveAll returns after every started save has
// returned; the result is the first error encountered, and saves not yet started when
// an error occurs observe a cancelled context.
func (s *Store) SaveAll(ctx context.Context, folderPath string, requests []SaveRequest, maxConcurrency int) error {
	if len(requests) == 0 {
		return nil
	}
	if maxConcurrency <= 0 {
		maxConcurrency = s.concurrency
	}
	s.log(ctx, "saving batch", slog.String("folder", folderPath), slog.Int("requests", len(requests)), slog.Int("concurrency", maxConcurrency))

	p := pool.New().WithMaxGoroutines(maxConcurrency).WithContext(ctx).WithCancelOnError().WithFirstError()
	for _, req := range requests {
		p.Go(func(ctx context.Context) error {
			return s.Save(ctx, folderPath, req)
		})
	}
	if err := p.Wait(); err != nil {
		return fmt.Errorf("failed to save batch into '%s': %w", folderPath, err)
	}
	return nil
}
