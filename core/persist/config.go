package persist

import (
	"fmt"

	"serverlister/core/reconcile"
	"serverlister/core/storage"
)

const (
	DriverFile = "file"
	DriverS3   = "s3"
)

// Config selects where server lists are kept.
type Config struct {
	// Driver is the backend type (file or s3).
	Driver string `mapstructure:"driver" default:"file"`
	// Dir is the output directory of the file backend.
	Dir string `mapstructure:"dir" default:"."`
	// ObjectPrefix is prepended to object keys of the s3 backend.
	ObjectPrefix string `mapstructure:"object_prefix" default:""`
}

// IsValidDriver checks if the configured driver is supported.
func (c Config) IsValidDriver() bool {
	switch c.Driver {
	case DriverFile, DriverS3:
		return true
	default:
		return false
	}
}

// NewBackend builds the backend for game. newClient is only called for the
// s3 driver.
func NewBackend(cfg Config, storageCfg storage.Config, game string, newClient func(storage.Config) (storage.Client, error)) (reconcile.Backend, error) {
	switch cfg.Driver {
	case DriverFile:
		return NewFileBackend(cfg.Dir, game), nil
	case DriverS3:
		client, err := newClient(storageCfg)
		if err != nil {
			return nil, err
		}
		return NewObjectBackend(client, storageCfg.Bucket, storageCfg.Region, cfg.ObjectPrefix, game), nil
	default:
		return nil, fmt.Errorf("%w: unknown output driver %q", reconcile.ErrConfiguration, cfg.Driver)
	}
}
