package gslist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"serverlister/core/games"
	"serverlister/core/reconcile"

	"go.uber.org/zap"
)

// commandFunc builds the subprocess; tests swap it for a helper process.
type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Invoker implements reconcile.Discoverer and reconcile.Prober on top of
// the gslist executable.
type Invoker struct {
	cfg     Config
	logger  *zap.Logger
	command commandFunc
	clock   func() time.Time
}

// NewInvoker creates an invoker for the configured binary.
func NewInvoker(cfg Config, l *zap.Logger) *Invoker {
	if l == nil {
		l = zap.NewNop()
	}
	return &Invoker{
		cfg:     cfg,
		logger:  l,
		command: exec.CommandContext,
		clock:   time.Now,
	}
}

// DiscoverArgs returns the gslist arguments listing a project's servers.
func DiscoverArgs(game games.Game, project games.Project, filter string) []string {
	args := []string{
		"-n", game.GameName,
		"-x", project.Address(),
		"-Y", game.GameName, game.GameKey,
		"-t", game.EncType,
	}
	if filter = strings.TrimSpace(filter); filter != "" {
		args = append(args, "-f", filter)
	}
	return append(args, "-o", "1")
}

// ProbeArgs returns the gslist arguments querying one server directly.
func ProbeArgs(game games.Game, address string) []string {
	return []string{"-n", game.GameName, "-d", game.QueryType, address, "-o", "1"}
}

// Discover lists the servers of project.
func (i *Invoker) Discover(ctx context.Context, game games.Game, project games.Project, filter string) ([]reconcile.Discovered, error) {
	out, code, err := i.run(ctx, i.cfg.timeout(), DiscoverArgs(game, project, filter))
	if err != nil {
		return nil, &reconcile.DiscoveryError{Project: project.Name, ExitCode: code, Err: err}
	}

	entries, err := ParseOutput(out)
	if err != nil {
		return nil, &reconcile.DiscoveryError{Project: project.Name, ExitCode: code, Err: err}
	}

	discovered := make([]reconcile.Discovered, 0, len(entries))
	for _, e := range entries {
		discovered = append(discovered, reconcile.Discovered{Address: e.Address, Metadata: e.Values})
	}
	i.logger.Debug("gslist listing parsed",
		zap.String("project", project.Name),
		zap.Int("servers", len(discovered)),
	)
	return discovered, nil
}

// Probe queries the status of a single server.
func (i *Invoker) Probe(ctx context.Context, game games.Game, address string) (*reconcile.ServerStatus, error) {
	out, _, err := i.run(ctx, i.cfg.probeTimeout(), ProbeArgs(game, address))
	if err != nil {
		return nil, &reconcile.ProbeError{Address: address, Err: err}
	}

	entries, err := ParseOutput(out)
	if err != nil {
		return nil, &reconcile.ProbeError{Address: address, Err: err}
	}
	for _, e := range entries {
		if e.Address == address && len(e.Values) > 0 {
			return StatusFromValues(e.Values, i.clock()), nil
		}
	}
	return nil, &reconcile.ProbeError{Address: address, Err: errors.New("no status in gslist output")}
}

// run executes gslist with a timeout and returns stdout and the exit code.
// The exit code is -1 when the process did not run to completion.
func (i *Invoker) run(ctx context.Context, timeout time.Duration, args []string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := i.command(ctx, i.cfg.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, -1, fmt.Errorf("gslist did not finish: %w", ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, exitErr.ExitCode(), fmt.Errorf("gslist exited with status %d: %s", exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, -1, fmt.Errorf("failed to run gslist: %w", err)
	}
	return stdout.Bytes(), 0, nil
}
