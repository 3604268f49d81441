package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"serverlister/core/config"
	"serverlister/core/database"
	"serverlister/core/games"
	"serverlister/core/gslist"
	"serverlister/core/history"
	"serverlister/core/logger"
	"serverlister/core/metrics"
	"serverlister/core/persist"
	"serverlister/core/reconcile"
	"serverlister/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var updateFlags struct {
	gslist      string
	game        string
	project     string
	filter      string
	expiredTTL  int
	superQuery  bool
	allProjects bool
	workers     int
	outputDir   string
}

// updateCmd runs one reconciliation cycle.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Query the master servers and update the server list",
	Long: `Runs one cycle: load the stored list, query the master server(s) of the
game, merge the result, optionally probe every server, drop servers not seen
within the expiry TTL and write the list back.

Examples:
  # Default project of Battlefield 2
  serverlister update -g ./gslist -b bf2

  # Every project, with status probes
  serverlister update -g ./gslist -b bf2 --all-projects -s

  # Keep servers for a week
  serverlister update -b bf1942 -e 168`,
	RunE: runUpdate,
}

func init() {
	f := updateCmd.Flags()
	f.StringVarP(&updateFlags.gslist, "gslist", "g", "", "Path to the gslist binary")
	f.StringVarP(&updateFlags.game, "game", "b", "", "Game to list servers for")
	f.StringVarP(&updateFlags.project, "project", "p", "", "Master server project (default: first of the game)")
	f.StringVarP(&updateFlags.filter, "filter", "f", "", "Master server filter expression")
	f.IntVarP(&updateFlags.expiredTTL, "expired-ttl", "e", 0, "Hours after which unseen servers are removed")
	f.BoolVarP(&updateFlags.superQuery, "super-query", "s", false, "Probe every server for its status")
	f.BoolVar(&updateFlags.allProjects, "all-projects", false, "Query every project of the game")
	f.IntVar(&updateFlags.workers, "workers", 0, "Concurrent status probes")
	f.StringVar(&updateFlags.outputDir, "output-dir", "", "Directory of the server list file")

	RootCmd.AddCommand(updateCmd)
}

// applyUpdateFlags copies explicitly set flags over the loaded config.
func applyUpdateFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("gslist") {
		cfg.Gslist.Binary = updateFlags.gslist
	}
	if f.Changed("game") {
		cfg.Lister.Game = updateFlags.game
	}
	if f.Changed("project") {
		cfg.Lister.Project = updateFlags.project
	}
	if f.Changed("filter") {
		cfg.Lister.Filter = updateFlags.filter
	}
	if f.Changed("expired-ttl") {
		cfg.Lister.ExpiredTTLHours = updateFlags.expiredTTL
	}
	if f.Changed("super-query") {
		cfg.Lister.SuperQuery = updateFlags.superQuery
	}
	if f.Changed("all-projects") {
		cfg.Lister.AllProjects = updateFlags.allProjects
	}
	if f.Changed("workers") {
		cfg.Lister.ProbeWorkers = updateFlags.workers
	}
	if f.Changed("output-dir") {
		cfg.Output.Dir = updateFlags.outputDir
	}
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyUpdateFlags(cmd, cfg)

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Gslist.Validate(); err != nil {
		return err
	}

	table := games.Default()
	if err := canonicalGame(table, cfg); err != nil {
		return err
	}

	backend, err := persist.NewBackend(cfg.Output, cfg.Storage, cfg.Lister.Game, storage.NewClient)
	if err != nil {
		return fmt.Errorf("failed to create output backend: %w", err)
	}

	invoker := gslist.NewInvoker(cfg.Gslist, l)
	engine := reconcile.NewEngine(table, invoker, invoker, backend, l)

	report, runErr := engine.Run(ctx, cfg.Lister.Spec())
	if report != nil {
		recordHistory(ctx, l, cfg.Database, report)
		writeMetrics(l, cfg.Metrics, report)
	}
	return runErr
}

// canonicalGame replaces the configured game with its table id so file and
// object names do not depend on the spelling used on the command line.
func canonicalGame(table games.Table, cfg *config.Config) error {
	game, err := table.Get(cfg.Lister.Game)
	if err != nil {
		return fmt.Errorf("%w: %w", reconcile.ErrConfiguration, err)
	}
	cfg.Lister.Game = game.ID
	return nil
}

// recordHistory stores the report when the database is enabled. Failures
// only warn.
func recordHistory(ctx context.Context, l *zap.Logger, cfg database.Config, report *reconcile.CycleReport) {
	if !cfg.Enabled {
		return
	}
	db, err := database.Connect(cfg)
	if err != nil {
		l.Warn("Cycle history unavailable", zap.Error(err))
		return
	}
	rec := history.NewRecorder(db)
	if err := rec.Migrate(ctx); err != nil {
		l.Warn("Cycle history unavailable", zap.Error(err))
		return
	}
	if err := rec.Record(ctx, report); err != nil {
		l.Warn("Failed to record cycle", zap.Error(err))
	}
}

func writeMetrics(l *zap.Logger, cfg metrics.Config, report *reconcile.CycleReport) {
	if !cfg.Enabled {
		return
	}
	m := metrics.New()
	m.Observe(report)
	if err := m.WriteFile(cfg.Path(report.Game)); err != nil {
		l.Warn("Failed to write metrics", zap.Error(err))
	}
}
