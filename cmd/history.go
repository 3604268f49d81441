package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"serverlister/core/config"
	"serverlister/core/database"
	"serverlister/core/history"

	"github.com/spf13/cobra"
)

var historyFlags struct {
	game  string
	limit int
}

// historyCmd prints the latest recorded cycles.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent update cycles from the history database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		rows, err := history.NewRecorder(db).Recent(cmd.Context(), historyFlags.game, historyFlags.limit)
		if err != nil {
			return err
		}
		return printHistory(cmd.OutOrStdout(), rows)
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyFlags.game, "game", "b", "", "Only show cycles of this game")
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 10, "Number of cycles to show")

	RootCmd.AddCommand(historyCmd)
}

func printHistory(out io.Writer, rows []history.CycleRecord) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tGAME\tSTATE\tBEFORE\tAFTER\tADDED\tEXPIRED\tFAILURES\tDURATION")
	for _, r := range rows {
		state := r.State
		if r.Degraded {
			state += " (degraded)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			r.StartedAt.Format(time.RFC3339), r.Game, state,
			r.ServerTotalBefore, r.ServerTotalAfter, r.Added, r.ExpiredServersRemoved,
			r.DiscoveryFailures, time.Duration(r.DurationMillis)*time.Millisecond)
	}
	return w.Flush()
}
