package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"serverlister/core/games"
	"serverlister/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine runs reconciliation cycles for the games of a table.
type Engine struct {
	table      games.Table
	discoverer Discoverer
	prober     Prober
	backend    Backend
	logger     *zap.Logger
	clock      func() time.Time
}

// NewEngine creates an engine. prober may be nil when probing is never
// enabled.
func NewEngine(table games.Table, discoverer Discoverer, prober Prober, backend Backend, l *zap.Logger) *Engine {
	if l == nil {
		l = zap.NewNop()
	}
	return &Engine{
		table:      table,
		discoverer: discoverer,
		prober:     prober,
		backend:    backend,
		logger:     l,
		clock:      time.Now,
	}
}

// WithClock replaces the time source. It is meant for tests.
func (e *Engine) WithClock(clock func() time.Time) *Engine {
	e.clock = clock
	return e
}

// ResolveProjects returns the projects a spec selects for game.
func ResolveProjects(game games.Game, spec *Spec) ([]games.Project, error) {
	if spec.AllProjects {
		if len(game.Projects) == 0 {
			return nil, fmt.Errorf("%w: game %s has no projects", ErrConfiguration, game.ID)
		}
		return game.Projects, nil
	}
	p, err := game.ResolveProject(spec.Project)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return []games.Project{p}, nil
}

// Run executes one load, discover, probe, prune and persist cycle.
//
// The returned report is non-nil whenever the configuration was valid, even
// on failure, so callers can log what was reached.
func (e *Engine) Run(ctx context.Context, spec *Spec) (*CycleReport, error) {
	game, err := e.table.Get(spec.Game)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	projects, err := ResolveProjects(game, spec)
	if err != nil {
		return nil, err
	}
	if spec.ExpiredTTL < 0 {
		return nil, fmt.Errorf("%w: negative ttl %s", ErrConfiguration, spec.ExpiredTTL)
	}
	if spec.Probe && e.prober == nil {
		return nil, fmt.Errorf("%w: probing enabled without a prober", ErrConfiguration)
	}

	start := e.clock()
	report := &CycleReport{
		CycleID:   uuid.NewString(),
		Game:      game.ID,
		StartedAt: start,
		State:     StateIdle,
	}
	for _, p := range projects {
		report.Projects = append(report.Projects, p.Name)
	}
	l := logger.WithCycleID(e.logger, report.CycleID).With(zap.String("game", game.ID))

	err = e.run(ctx, l, game, projects, spec, report)
	report.Duration = e.clock().Sub(start)
	if err != nil {
		report.State = StateFailed
		l.Error("Cycle failed", zap.Error(err))
		return report, err
	}
	report.State = StateDone
	l.Info("Run stats",
		zap.Int("server_total_before", report.Stats.ServerTotalBefore),
		zap.Int("server_total_after", report.Stats.ServerTotalAfter),
		zap.Int("expired_servers_removed", report.Stats.ExpiredServersRemoved),
		zap.Int("discovered", report.Stats.Discovered),
		zap.Int("added", report.Stats.Added),
		zap.Int("probe_reachable", report.Stats.ProbeReachable),
		zap.Int("probe_unreachable", report.Stats.ProbeUnreachable),
		zap.Bool("degraded", report.Stats.Degraded),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

func (e *Engine) run(ctx context.Context, l *zap.Logger, game games.Game, projects []games.Project, spec *Spec, report *CycleReport) error {
	now := report.StartedAt
	transition := func(s State) {
		report.State = s
		l.Info("Cycle state", zap.String("state", string(s)))
	}

	// Idle -> Loaded
	records, found, err := e.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load server list: %w", ErrPersistence, err)
	}
	store := NewStoreFrom(records)
	report.Stats.ServerTotalBefore = store.Len()
	l.Info("Loaded server list",
		zap.Bool("found", found),
		zap.Int("servers", store.Len()),
		zap.Int("dropped", store.Dropped()),
	)
	transition(StateLoaded)

	// Loaded -> Discovered
	var (
		lastErr   error
		collected []Discovered
	)
	for _, p := range projects {
		discovered, err := e.discoverer.Discover(ctx, game, p, spec.Filter)
		if err != nil {
			if !errors.Is(err, ErrDiscovery) {
				err = &DiscoveryError{Project: p.Name, ExitCode: -1, Err: err}
			}
			report.Stats.DiscoveryFailures++
			lastErr = err
			l.Warn("Discovery failed", zap.String("project", p.Name), zap.Error(err))
			continue
		}
		l.Info("Discovered servers", zap.String("project", p.Name), zap.Int("count", len(discovered)))
		collected = append(collected, discovered...)
	}
	if err := interrupted(ctx); err != nil {
		return err
	}

	if report.Stats.DiscoveryFailures == len(projects) {
		if store.Len() == 0 {
			return fmt.Errorf("%w: %w", ErrNoPriorState, lastErr)
		}
		l.Warn("All discoveries failed, keeping previous server list", zap.Int("servers", store.Len()))
	}
	report.Stats.Degraded = report.Stats.DiscoveryFailures > 0

	merged := store.Merge(collected, now)
	report.Stats.Added = merged.Added
	report.Stats.Refreshed = merged.Refreshed
	report.Stats.Discovered = merged.Added + merged.Refreshed
	if merged.Invalid > 0 {
		l.Warn("Skipped invalid discovered addresses", zap.Int("count", merged.Invalid))
	}
	transition(StateDiscovered)

	// Discovered -> Probed
	if spec.Probe {
		summary := ProbeAll(ctx, e.prober, game, store, spec.ProbeOptions, now, l)
		report.Stats.Probed = summary.Probed
		report.Stats.ProbeReachable = summary.Reachable
		report.Stats.ProbeUnreachable = summary.Unreachable
		if err := interrupted(ctx); err != nil {
			return err
		}
		transition(StateProbed)
	}

	// (Probed|Discovered) -> Pruned
	report.Stats.ExpiredServersRemoved = store.Prune(spec.ExpiredTTL, now)
	report.Stats.ServerTotalAfter = store.Len()
	transition(StatePruned)

	// Pruned -> Persisted
	if err := interrupted(ctx); err != nil {
		return err
	}
	if err := e.backend.Save(ctx, store.Records()); err != nil {
		return fmt.Errorf("%w: write server list: %w", ErrPersistence, err)
	}
	transition(StatePersisted)
	return nil
}

// interrupted reports a done cycle context. Failures caused by it must not
// be persisted as a degraded result.
func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	return nil
}
