package cmd

import (
	"bytes"
	"testing"
	"time"

	"serverlister/core/config"
	"serverlister/core/games"
	"serverlister/core/history"
	"serverlister/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintGames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printGames(&buf, games.Default()))

	out := buf.String()
	assert.Contains(t, out, "bf2")
	assert.Contains(t, out, "bf2hub (servers.bf2hub.com:28911)")
	assert.Contains(t, out, "playbf2")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	rows := []history.CycleRecord{{
		Game:              "bf2",
		State:             "done",
		StartedAt:         time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		DurationMillis:    1500,
		ServerTotalBefore: 3,
		ServerTotalAfter:  4,
		Degraded:          true,
	}}
	require.NoError(t, printHistory(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "2024-01-02T03:04:05Z")
	assert.Contains(t, out, "done (degraded)")
	assert.Contains(t, out, "1.5s")
}

func TestApplyUpdateFlags(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, updateCmd.Flags().Parse([]string{"-b", "bf1942", "-e", "0", "-s", "--output-dir", "/tmp/lists"}))
	applyUpdateFlags(updateCmd, cfg)

	assert.Equal(t, "bf1942", cfg.Lister.Game)
	assert.Equal(t, 0, cfg.Lister.ExpiredTTLHours)
	assert.True(t, cfg.Lister.SuperQuery)
	assert.Equal(t, "/tmp/lists", cfg.Output.Dir)
	// Unchanged flags keep config values.
	assert.Equal(t, 16, cfg.Lister.ProbeWorkers)
	assert.Equal(t, "", cfg.Lister.Project)
}

func TestCanonicalGame(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Lister.Game = " BF2 "
	require.NoError(t, canonicalGame(games.Default(), cfg))
	assert.Equal(t, "bf2", cfg.Lister.Game)

	cfg.Lister.Game = "quake3"
	assert.ErrorIs(t, canonicalGame(games.Default(), cfg), reconcile.ErrConfiguration)
}
