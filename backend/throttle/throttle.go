// Package throttle limits the rate of calls made to a drivestore.Backend.
package throttle

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/Jumpaku/go-drivestore"
)

// Backend delegates to another backend after waiting on a shared limiter.
type Backend struct {
	backend drivestore.Backend
	limiter *rate.Limiter
}

var _ drivestore.Backend = (*Backend)(nil)

// New wraps b so that every call first waits for a token from limiter.
// A nil limiter imposes no limit.
func New(b drivestore.Backend, limiter *rate.Limiter) *Backend {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &Backend{backend: b, limiter: limiter}
}

// PerSecond returns a limiter allowing requests calls per second with the given burst.
// A non-positive requests means no limit.
func PerSecond(requests float64, burst int) *rate.Limiter {
	if requests <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(requests), max(burst, 1))
}

func (b *Backend) wait(ctx context.Context, op string) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait before %s: %w", op, err)
	}
	return nil
}

func (b *Backend) Root(ctx context.Context, scheme drivestore.Scheme) (drivestore.Resource, error) {
	if err := b.wait(ctx, "root"); err != nil {
		return drivestore.Resource{}, err
	}
	return b.backend.Root(ctx, scheme)
}

func (b *Backend) List(ctx context.Context, parentID string, filter drivestore.Filter, pageToken string) ([]drivestore.Resource, string, error) {
	if err := b.wait(ctx, "list"); err != nil {
		return nil, "", err
	}
	return b.backend.List(ctx, parentID, filter, pageToken)
}

func (b *Backend) Create(ctx context.Context, parentID, name string, kind drivestore.Kind) (drivestore.Resource, error) {
	if err := b.wait(ctx, "create"); err != nil {
		return drivestore.Resource{}, err
	}
	return b.backend.Create(ctx, parentID, name, kind)
}

func (b *Backend) Content(ctx context.Context, id string) ([]byte, error) {
	if err := b.wait(ctx, "content"); err != nil {
		return nil, err
	}
	return b.backend.Content(ctx, id)
}

func (b *Backend) Update(ctx context.Context, id, mediaType string, data []byte) error {
	if err := b.wait(ctx, "update"); err != nil {
		return err
	}
	return b.backend.Update(ctx, id, mediaType, data)
}

func (b *Backend) Delete(ctx context.Context, id string) error {
	if err := b.wait(ctx, "delete"); err != nil {
		return err
	}
	return b.backend.Delete(ctx, id)
}
