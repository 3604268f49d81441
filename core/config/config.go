package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"serverlister/core/database"
	"serverlister/core/gslist"
	"serverlister/core/logger"
	"serverlister/core/metrics"
	"serverlister/core/persist"
	"serverlister/core/reconcile"
	"serverlister/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the lister, one section per package.
type Config struct {
	// Lister holds the cycle settings.
	Lister reconcile.Config `mapstructure:"lister"`
	// Gslist holds the query tool settings.
	Gslist gslist.Config `mapstructure:"gslist"`
	// Output selects where the server list is persisted.
	Output persist.Config `mapstructure:"output"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the cycle history database.
	Database database.Config `mapstructure:"database"`
	// Metrics holds the textfile export settings.
	Metrics metrics.Config `mapstructure:"metrics"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := filepath.Join(path, ".env")

	// Missing .env is fine, the environment may carry everything.
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// LISTER_GAME -> lister.game
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrConfiguration, err)
	}

	return &config, nil
}

// bindValues registers every mapstructure key with its 'default' tag value.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Empty defaults are still set so AutomaticEnv sees the key.
		v.SetDefault(key, defaultValue)
	}
}

// Validate checks the sections used by every command.
func (c *Config) Validate() error {
	if err := c.Lister.Validate(); err != nil {
		return err
	}
	if !c.Output.IsValidDriver() {
		return fmt.Errorf("%w: unknown output driver %q", reconcile.ErrConfiguration, c.Output.Driver)
	}
	if c.Output.Driver == persist.DriverS3 && c.Storage.Bucket == "" {
		return fmt.Errorf("%w: storage bucket is required for the s3 driver", reconcile.ErrConfiguration)
	}
	return nil
}
