package readmodel

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fourtytwo42/healthChains-sub004/internal/eventlog"
	"github.com/fourtytwo42/healthChains-sub004/internal/ledger/metrics"
)

// Refresher is an at-least-once log consumer that periodically re-folds the
// full stream into a fresh projection and swaps it in. Re-scanning from the
// start on every pass is deliberate: the fold is idempotent, so overlapping
// ranges and arbitrary restart points are harmless, and instances need no
// coordination with the ledger or with each other.
type Refresher struct {
	log      eventlog.Log
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics

	mu      sync.RWMutex
	current *Projection
}

// NewRefresher wires a refresher to the log. Metrics may be nil.
func NewRefresher(log eventlog.Log, interval time.Duration, logger *slog.Logger, m *metrics.Metrics) *Refresher {
	return &Refresher{
		log:      log,
		interval: interval,
		logger:   logger,
		metrics:  m,
		current:  NewProjection(),
	}
}

// Rebuild scans the full log and swaps in the resulting projection.
func (r *Refresher) Rebuild(ctx context.Context) error {
	start := time.Now()
	entries, err := r.log.Entries(ctx)
	if err != nil {
		return err
	}
	p := NewProjection()
	p.Fold(entries)

	r.mu.Lock()
	r.current = p
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.ObserveRebuildLatency(time.Since(start).Seconds())
		r.metrics.AddEntriesFolded(len(entries))
	}
	if bad := p.Unresolved(); len(bad) > 0 && r.logger != nil {
		r.logger.ErrorContext(ctx, "event log integrity violation: revocations reference unknown grants",
			"consent_ids", bad,
		)
	}
	return nil
}

// Run rebuilds immediately, then on every tick until the context is done.
func (r *Refresher) Run(ctx context.Context) error {
	if err := r.Rebuild(ctx); err != nil {
		return err
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.Rebuild(ctx); err != nil {
				if r.logger != nil {
					r.logger.ErrorContext(ctx, "read model rebuild failed", "error", err)
				}
			}
		}
	}
}

// ActiveFor serves a query from the most recent projection.
func (r *Refresher) ActiveFor(q Query, now int64) []Grant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current.ActiveFor(q, now)
}
