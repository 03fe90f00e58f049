// Package poller refreshes an order view on a fixed interval. Each poll is
// an independent, idempotent read; a successful result simply replaces the
// previous snapshot (last write wins), and a failed one leaves it in place.
package poller

import (
	"context"
	"time"

	"github.com/diyeddin/delivery-ui/internal/metrics"
	"go.uber.org/zap"
)

// FetchFunc reads the current state of a view from the backend.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// ApplyFunc renders a fresh snapshot. Never called after Run returns.
type ApplyFunc[T any] func(snapshot T)

type Poller[T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[T]
	apply    ApplyFunc[T]
	logger   *zap.Logger
}

func New[T any](name string, interval time.Duration, fetch FetchFunc[T], apply ApplyFunc[T], logger *zap.Logger) *Poller[T] {
	return &Poller[T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
		apply:    apply,
		logger:   logger,
	}
}

// Run polls immediately, then on every tick until ctx is cancelled.
func (p *Poller[T]) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller[T]) poll(ctx context.Context) {
	snapshot, err := p.fetch(ctx)
	if err != nil {
		// Keep showing the previous snapshot; the next tick retries.
		p.logger.Warn("poll failed", zap.String("view", p.name), zap.Error(err))
		metrics.RecordPollCycle(p.name, false)
		return
	}
	metrics.RecordPollCycle(p.name, true)

	// A fetch that raced teardown gets its result discarded.
	if ctx.Err() != nil {
		return
	}
	p.apply(snapshot)
}
