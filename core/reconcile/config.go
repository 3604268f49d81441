package reconcile

import (
	"fmt"
	"time"
)

// Config holds the cycle settings of the lister.
type Config struct {
	// Game is the title to list servers for.
	Game string `mapstructure:"game" default:"bf2"`
	// Project selects the master server project. Empty selects the first
	// project declared for the game.
	Project string `mapstructure:"project" default:""`
	// AllProjects queries every project of the game instead of one.
	AllProjects bool `mapstructure:"all_projects" default:"false"`
	// Filter is passed to the master server query. Empty matches all.
	Filter string `mapstructure:"filter" default:""`
	// ExpiredTTLHours is how long a server is kept after it was last seen.
	ExpiredTTLHours int `mapstructure:"expired_ttl_hours" default:"24"`
	// SuperQuery enables the status probe of every known server.
	SuperQuery bool `mapstructure:"super_query" default:"false"`
	// ProbeWorkers bounds concurrent probes.
	ProbeWorkers int `mapstructure:"probe_workers" default:"16"`
	// ProbeRate limits probe starts per second (0 = unlimited).
	ProbeRate float64 `mapstructure:"probe_rate" default:"50"`
	// ProbeTimeoutSeconds bounds the whole probe phase.
	ProbeTimeoutSeconds int `mapstructure:"probe_timeout_seconds" default:"120"`
	// ProbeRefreshesLastSeen lets a successful probe keep a server alive.
	ProbeRefreshesLastSeen bool `mapstructure:"probe_refreshes_last_seen" default:"true"`
}

// Validate checks the settings that do not depend on the game table.
func (c Config) Validate() error {
	if c.Game == "" {
		return fmt.Errorf("%w: game is required", ErrConfiguration)
	}
	if c.ExpiredTTLHours < 0 {
		return fmt.Errorf("%w: expired ttl must be >= 0, got %d", ErrConfiguration, c.ExpiredTTLHours)
	}
	if c.SuperQuery && c.ProbeWorkers < 1 {
		return fmt.Errorf("%w: probe workers must be >= 1, got %d", ErrConfiguration, c.ProbeWorkers)
	}
	if c.ProbeRate < 0 {
		return fmt.Errorf("%w: probe rate must be >= 0", ErrConfiguration)
	}
	return nil
}

// Spec converts the settings into a cycle spec.
func (c Config) Spec() *Spec {
	return &Spec{
		Game:        c.Game,
		Project:     c.Project,
		AllProjects: c.AllProjects,
		Filter:      c.Filter,
		ExpiredTTL:  time.Duration(c.ExpiredTTLHours) * time.Hour,
		Probe:       c.SuperQuery,
		ProbeOptions: ProbeOptions{
			Workers:         c.ProbeWorkers,
			Rate:            c.ProbeRate,
			Timeout:         time.Duration(c.ProbeTimeoutSeconds) * time.Second,
			RefreshLastSeen: c.ProbeRefreshesLastSeen,
		},
	}
}

// Spec defines one reconciliation cycle. It is read-only input to Run.
type Spec struct {
	// Game is the title id from the game table.
	Game string

	// Project is the explicitly selected project, or empty for the default.
	Project string

	// AllProjects queries every project of the game.
	AllProjects bool

	// Filter is the opaque discovery filter expression.
	Filter string

	// ExpiredTTL is the maximum age of LastSeen before a record is pruned.
	ExpiredTTL time.Duration

	// Probe enables the status probe phase.
	Probe bool

	// ProbeOptions controls the probe pool.
	ProbeOptions ProbeOptions
}
