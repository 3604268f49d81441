package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Game:                   "bf2",
		ExpiredTTLHours:        24,
		ProbeWorkers:           16,
		ProbeRate:              50,
		ProbeTimeoutSeconds:    120,
		ProbeRefreshesLastSeen: true,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"zero ttl", func(c *Config) { c.ExpiredTTLHours = 0 }, true},
		{"no game", func(c *Config) { c.Game = "" }, false},
		{"negative ttl", func(c *Config) { c.ExpiredTTLHours = -1 }, false},
		{"no workers with super query", func(c *Config) { c.SuperQuery = true; c.ProbeWorkers = 0 }, false},
		{"no workers without super query", func(c *Config) { c.ProbeWorkers = 0 }, true},
		{"negative rate", func(c *Config) { c.ProbeRate = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrConfiguration)
			}
		})
	}
}

func TestConfig_Spec(t *testing.T) {
	c := validConfig()
	c.SuperQuery = true
	c.Filter = "numplayers>0"

	spec := c.Spec()
	assert.Equal(t, "bf2", spec.Game)
	assert.Equal(t, 24*time.Hour, spec.ExpiredTTL)
	assert.True(t, spec.Probe)
	assert.Equal(t, "numplayers>0", spec.Filter)
	assert.Equal(t, ProbeOptions{Workers: 16, Rate: 50, Timeout: 2 * time.Minute, RefreshLastSeen: true}, spec.ProbeOptions)
}
