package reconcile

import (
	"maps"
	"time"
)

// ServerStatus holds the live status reported by the last successful probe.
type ServerStatus struct {
	// Name is the advertised server name.
	Name string `json:"name,omitempty"`

	// Map is the map currently being played.
	Map string `json:"map,omitempty"`

	// GameType is the current game mode.
	GameType string `json:"gameType,omitempty"`

	// NumPlayers is the number of connected players.
	NumPlayers int `json:"numPlayers"`

	// MaxPlayers is the player limit.
	MaxPlayers int `json:"maxPlayers"`

	// Ping is the round trip reported by the query tool, in milliseconds.
	Ping int `json:"ping,omitempty"`

	// Password indicates a password protected server.
	Password bool `json:"password,omitempty"`

	// Raw contains every key/value pair returned by the probe.
	Raw map[string]string `json:"raw,omitempty"`

	// ProbedAt is the time of the probe.
	ProbedAt time.Time `json:"probedAt"`
}

// Clone returns a deep copy of the status.
func (s *ServerStatus) Clone() *ServerStatus {
	if s == nil {
		return nil
	}
	c := *s
	c.Raw = maps.Clone(s.Raw)
	return &c
}

// ServerRecord is a known server address with its freshness timestamps.
type ServerRecord struct {
	// Address is the normalized host:port and the unique key of the record.
	Address string `json:"address"`

	// FirstSeen is set on first discovery and never changes afterwards.
	FirstSeen time.Time `json:"firstSeen"`

	// LastSeen is advanced on every rediscovery or successful probe.
	LastSeen time.Time `json:"lastSeen"`

	// Status is present only after a successful probe.
	Status *ServerStatus `json:"status,omitempty"`

	// Metadata is copied from discovery output and replaced on rediscovery.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Clone returns a deep copy of the record.
func (r ServerRecord) Clone() ServerRecord {
	r.Status = r.Status.Clone()
	r.Metadata = maps.Clone(r.Metadata)
	return r
}

// Discovered is one address returned by a discovery query.
type Discovered struct {
	// Address is the server address in host:port form.
	Address string

	// Metadata contains pass-through fields from the discovery output.
	Metadata map[string]string
}

// State is a stage of a reconciliation cycle.
type State string

const (
	StateIdle       State = "idle"
	StateLoaded     State = "loaded"
	StateDiscovered State = "discovered"
	StateProbed     State = "probed"
	StatePruned     State = "pruned"
	StatePersisted  State = "persisted"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// CycleStats summarizes one cycle. It is reported, never persisted.
type CycleStats struct {
	// ServerTotalBefore is the number of servers loaded before merging.
	ServerTotalBefore int `json:"serverTotalBefore"`

	// ServerTotalAfter is the number of servers written after pruning.
	ServerTotalAfter int `json:"serverTotalAfter"`

	// ExpiredServersRemoved is the number of records removed by the TTL.
	ExpiredServersRemoved int `json:"expiredServersRemoved"`

	// Discovered is the number of distinct addresses returned by discovery.
	Discovered int `json:"discovered"`

	// Added counts discovered addresses that were not known before.
	Added int `json:"added"`

	// Refreshed counts discovered addresses that were already known.
	Refreshed int `json:"refreshed"`

	// DiscoveryFailures counts projects whose discovery failed.
	DiscoveryFailures int `json:"discoveryFailures"`

	// Probed is the number of addresses a probe was attempted for.
	Probed int `json:"probed"`

	// ProbeReachable counts successful probes.
	ProbeReachable int `json:"probeReachable"`

	// ProbeUnreachable counts failed or timed out probes.
	ProbeUnreachable int `json:"probeUnreachable"`

	// Degraded is set when at least one discovery failed.
	Degraded bool `json:"degraded"`
}

// CycleReport is the outcome of Engine.Run.
type CycleReport struct {
	// CycleID correlates logs, history and metrics of one cycle.
	CycleID string `json:"cycleId"`

	// Game is the title the cycle ran for.
	Game string `json:"game"`

	// Projects lists the queried master server projects.
	Projects []string `json:"projects"`

	// StartedAt is the cycle timestamp used for merge, probe and prune.
	StartedAt time.Time `json:"startedAt"`

	// Duration is the wall time of the cycle.
	Duration time.Duration `json:"duration"`

	// State is the final state (StateDone or StateFailed).
	State State `json:"state"`

	// Stats holds the cycle counters.
	Stats CycleStats `json:"stats"`
}
