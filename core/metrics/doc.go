// Package metrics exports cycle counters in the Prometheus text format.
//
// The lister is a one-shot process, so instead of serving a scrape endpoint the
// gauges are written to a file picked up by the node exporter textfile
// collector.
//
//	m := metrics.New()
//	m.Observe(report)
//	err := m.WriteFile(cfg.Metrics.Path(report.Game))
package metrics
