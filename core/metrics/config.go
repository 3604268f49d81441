package metrics

import "path/filepath"

// Config holds the metrics export settings.
type Config struct {
	// Enabled turns on the textfile export.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Dir is the node exporter textfile directory.
	Dir string `mapstructure:"dir" default:"."`
	// FileName is the file written inside Dir. It must end in .prom. Empty
	// uses serverlister-<game>.prom so runs of different games do not
	// overwrite each other.
	FileName string `mapstructure:"file_name" default:""`
}

// Path returns the full path of the metrics file for game.
func (c Config) Path(game string) string {
	name := c.FileName
	if name == "" {
		name = "serverlister-" + game + ".prom"
	}
	return filepath.Join(c.Dir, name)
}
