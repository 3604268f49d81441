package reconcile

import (
	"context"

	"serverlister/core/games"
)

// Discoverer lists the servers registered with a master server project.
type Discoverer interface {
	// Discover returns the addresses listed by the project, optionally
	// narrowed by an opaque filter expression. An empty filter matches all
	// servers. A failed invocation must return an error wrapping ErrDiscovery.
	Discover(ctx context.Context, game games.Game, project games.Project, filter string) ([]Discovered, error)
}

// Prober queries the live status of a single server.
type Prober interface {
	// Probe returns the current status of the server at address, or an
	// error wrapping ErrProbe when it cannot be reached.
	Probe(ctx context.Context, game games.Game, address string) (*ServerStatus, error)
}

// Backend loads and stores the persisted server list of one game.
type Backend interface {
	// Load returns the persisted records. found is false when no list has
	// been written yet, which is not an error.
	Load(ctx context.Context) (records []ServerRecord, found bool, err error)

	// Save replaces the persisted list with records in one atomic step.
	Save(ctx context.Context, records []ServerRecord) error
}
