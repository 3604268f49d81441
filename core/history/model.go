package history

import (
	"strings"
	"time"

	"serverlister/core/reconcile"
)

// CycleRecord is one row of the cycle history.
type CycleRecord struct {
	ID                    uint      `gorm:"primaryKey"`
	CycleID               string    `gorm:"column:cycle_id;size:36;uniqueIndex"`
	Game                  string    `gorm:"column:game;size:32;index"`
	Projects              string    `gorm:"column:projects;size:255"`
	State                 string    `gorm:"column:state;size:16"`
	StartedAt             time.Time `gorm:"column:started_at;index"`
	DurationMillis        int64     `gorm:"column:duration_ms"`
	ServerTotalBefore     int       `gorm:"column:server_total_before"`
	ServerTotalAfter      int       `gorm:"column:server_total_after"`
	ExpiredServersRemoved int       `gorm:"column:expired_servers_removed"`
	Discovered            int       `gorm:"column:discovered"`
	Added                 int       `gorm:"column:added"`
	DiscoveryFailures     int       `gorm:"column:discovery_failures"`
	ProbeReachable        int       `gorm:"column:probe_reachable"`
	ProbeUnreachable      int       `gorm:"column:probe_unreachable"`
	Degraded              bool      `gorm:"column:degraded"`
}

// TableName overrides the gorm table name.
func (CycleRecord) TableName() string {
	return "cycle_records"
}

// FromReport converts a cycle report into a history row.
func FromReport(r *reconcile.CycleReport) CycleRecord {
	return CycleRecord{
		CycleID:               r.CycleID,
		Game:                  r.Game,
		Projects:              strings.Join(r.Projects, ","),
		State:                 string(r.State),
		StartedAt:             r.StartedAt.UTC(),
		DurationMillis:        r.Duration.Milliseconds(),
		ServerTotalBefore:     r.Stats.ServerTotalBefore,
		ServerTotalAfter:      r.Stats.ServerTotalAfter,
		ExpiredServersRemoved: r.Stats.ExpiredServersRemoved,
		Discovered:            r.Stats.Discovered,
		Added:                 r.Stats.Added,
		DiscoveryFailures:     r.Stats.DiscoveryFailures,
		ProbeReachable:        r.Stats.ProbeReachable,
		ProbeUnreachable:      r.Stats.ProbeUnreachable,
		Degraded:              r.Stats.Degraded,
	}
}
