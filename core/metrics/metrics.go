package metrics

import (
	"fmt"

	"serverlister/core/reconcile"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "serverlister"

// Metrics holds the gauges of the last cycle per game.
type Metrics struct {
	registry *prometheus.Registry

	servers     *prometheus.GaugeVec
	discovered  *prometheus.GaugeVec
	added       *prometheus.GaugeVec
	expired     *prometheus.GaugeVec
	failures    *prometheus.GaugeVec
	reachable   *prometheus.GaugeVec
	unreachable *prometheus.GaugeVec
	duration    *prometheus.GaugeVec
	lastRun     *prometheus.GaugeVec
	success     *prometheus.GaugeVec
}

func gauge(name, help string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, []string{"game"})
}

// New creates the gauges on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry:    prometheus.NewRegistry(),
		servers:     gauge("servers", "Servers in the list after the last cycle."),
		discovered:  gauge("discovered_servers", "Distinct addresses returned by discovery."),
		added:       gauge("added_servers", "Addresses added by the last cycle."),
		expired:     gauge("expired_servers_removed", "Servers pruned by the expiry TTL."),
		failures:    gauge("discovery_failures", "Projects whose discovery failed."),
		reachable:   gauge("probe_reachable", "Servers that answered the status probe."),
		unreachable: gauge("probe_unreachable", "Servers that did not answer the status probe."),
		duration:    gauge("cycle_duration_seconds", "Wall time of the last cycle."),
		lastRun:     gauge("last_run_timestamp_seconds", "Start time of the last cycle."),
		success:     gauge("last_run_success", "1 if the last cycle completed, 0 if it failed."),
	}
	m.registry.MustRegister(
		m.servers, m.discovered, m.added, m.expired, m.failures,
		m.reachable, m.unreachable, m.duration, m.lastRun, m.success,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe sets the gauges from a cycle report.
func (m *Metrics) Observe(r *reconcile.CycleReport) {
	if r == nil {
		return
	}
	g := r.Game
	m.servers.WithLabelValues(g).Set(float64(r.Stats.ServerTotalAfter))
	m.discovered.WithLabelValues(g).Set(float64(r.Stats.Discovered))
	m.added.WithLabelValues(g).Set(float64(r.Stats.Added))
	m.expired.WithLabelValues(g).Set(float64(r.Stats.ExpiredServersRemoved))
	m.failures.WithLabelValues(g).Set(float64(r.Stats.DiscoveryFailures))
	m.reachable.WithLabelValues(g).Set(float64(r.Stats.ProbeReachable))
	m.unreachable.WithLabelValues(g).Set(float64(r.Stats.ProbeUnreachable))
	m.duration.WithLabelValues(g).Set(r.Duration.Seconds())
	m.lastRun.WithLabelValues(g).Set(float64(r.StartedAt.Unix()))

	ok := 0.0
	if r.State == reconcile.StateDone {
		ok = 1
	}
	m.success.WithLabelValues(g).Set(ok)
}

// WriteFile atomically writes the gauges to path.
func (m *Metrics) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
