// Package reconcile maintains the persisted list of known game servers for a
// title and runs the discovery cycle that keeps it fresh.
//
// # Cycle
//
// One Engine.Run call is a single cycle:
//
//	Idle -> Loaded -> Discovered -> (Probed) -> Pruned -> Persisted -> Done
//
// The previous list is loaded from a Backend, every selected master server
// project is queried through a Discoverer and the results are merged into
// the Store. When probing is enabled each known address is queried through a
// Prober by a bounded worker pool. Records not seen within the TTL are
// pruned and the list is written back in one piece.
//
// # Failure model
//
// Master servers are unreliable, so a failed discovery only degrades the
// cycle: known servers are kept and age towards expiry. The cycle fails
// (state Failed) only when discovery failed for every project and there is
// no prior list to fall back on. Probe failures are scoped to one address
// and never abort the cycle.
//
// # Usage
//
//	engine := reconcile.NewEngine(games.Default(), invoker, invoker, backend, logger)
//	report, err := engine.Run(ctx, cfg.Lister.Spec())
package reconcile
