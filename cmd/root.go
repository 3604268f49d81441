package cmd

import (
	"fmt"
	"os"

	"serverlister/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "serverlister",
	Short: "GameSpy master server lister",
	Long: `serverlister keeps a persistent list of game servers announced by the
GameSpy compatible master servers of legacy Battlefield titles.
Every run queries the masters through gslist, merges the result into the
stored list, optionally probes each server and prunes stale entries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the debug config gives readable ISO8601 output.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
