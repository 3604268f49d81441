package gslist

import (
	"fmt"
	"os"
	"time"

	"serverlister/core/reconcile"
)

// Config holds settings of the gslist subprocess.
type Config struct {
	// Binary is the path to the gslist executable.
	Binary string `mapstructure:"binary" default:""`
	// TimeoutSeconds bounds one master server listing.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// ProbeTimeoutSeconds bounds one single-server status query.
	ProbeTimeoutSeconds int `mapstructure:"probe_timeout_seconds" default:"5"`
}

// Validate checks that the binary is configured and is a regular file.
func (c Config) Validate() error {
	if c.Binary == "" {
		return fmt.Errorf("%w: gslist binary path is required", reconcile.ErrConfiguration)
	}
	info, err := os.Stat(c.Binary)
	if err != nil {
		return fmt.Errorf("%w: could not find gslist executable at %s: %w", reconcile.ErrConfiguration, c.Binary, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: gslist path %s is not a regular file", reconcile.ErrConfiguration, c.Binary)
	}
	return nil
}

func (c Config) timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) probeTimeout() time.Duration {
	if c.ProbeTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}
