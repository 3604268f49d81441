package reconcile

import (
	"context"
	"errors"
	"time"

	"serverlister/core/games"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ProbeOptions controls the status probe pool.
type ProbeOptions struct {
	// Workers bounds the number of concurrent probes.
	Workers int

	// Rate limits probe starts per second. Zero disables pacing.
	Rate float64

	// Timeout bounds the whole probe phase. Addresses not probed in time
	// count as unreachable. Zero means no phase timeout.
	Timeout time.Duration

	// RefreshLastSeen advances LastSeen on a successful probe.
	RefreshLastSeen bool
}

// ProbeSummary counts probe outcomes.
type ProbeSummary struct {
	Probed      int
	Reachable   int
	Unreachable int
}

type probeResult struct {
	address string
	status  *ServerStatus
	err     error
}

// ProbeAll probes every address in the store through a bounded pool and
// applies the results. Workers never touch the store; results are applied
// by the calling goroutine once the pool has drained.
func ProbeAll(ctx context.Context, prober Prober, game games.Game, store *Store, opts ProbeOptions, now time.Time, logger *zap.Logger) ProbeSummary {
	addrs := store.Addresses()
	if len(addrs) == 0 {
		return ProbeSummary{}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	var limiter *rate.Limiter
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), workers)
	}

	results := make(chan probeResult, len(addrs))
	var g errgroup.Group
	g.SetLimit(workers)

	for _, addr := range addrs {
		g.Go(func() error {
			results <- probeOne(ctx, prober, game, addr, limiter)
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	var summary ProbeSummary
	for r := range results {
		summary.Probed++
		if r.err != nil {
			summary.Unreachable++
			store.MarkUnreachable(r.address)
			logger.Debug("Server unreachable", zap.String("address", r.address), zap.Error(r.err))
			continue
		}
		summary.Reachable++
		store.ApplyProbe(r.address, r.status, now, opts.RefreshLastSeen)
	}
	return summary
}

func probeOne(ctx context.Context, prober Prober, game games.Game, addr string, limiter *rate.Limiter) probeResult {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return probeResult{address: addr, err: &ProbeError{Address: addr, Err: err}}
		}
	}
	if err := ctx.Err(); err != nil {
		return probeResult{address: addr, err: &ProbeError{Address: addr, Err: err}}
	}

	status, err := prober.Probe(ctx, game, addr)
	if err != nil {
		if !errors.Is(err, ErrProbe) {
			err = &ProbeError{Address: addr, Err: err}
		}
		return probeResult{address: addr, err: err}
	}
	if status == nil {
		return probeResult{address: addr, err: &ProbeError{Address: addr, Err: errors.New("empty status")}}
	}
	return probeResult{address: addr, status: status}
}
