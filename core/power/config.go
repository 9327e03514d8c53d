package power

import (
	"fmt"
	"time"
)

// Config holds the engine cadence settings.
type Config struct {
	// ManagementIntervalMS is the period of the management tick.
	ManagementIntervalMS int `json:"management_interval_ms"`
	// PredictionIntervalMS is the period of the prediction tick.
	PredictionIntervalMS int `json:"prediction_interval_ms"`
	// SolarWindowSize bounds the rolling window of solar samples used for
	// observed statistics.
	SolarWindowSize int `json:"solar_window_size"`
}

// SetDefaults applies the nominal cadences.
func (c *Config) SetDefaults() {
	if c.ManagementIntervalMS == 0 {
		c.ManagementIntervalMS = 100
	}
	if c.PredictionIntervalMS == 0 {
		c.PredictionIntervalMS = 1000
	}
	if c.SolarWindowSize == 0 {
		c.SolarWindowSize = 64
	}
}

// Validate checks the cadence settings.
func (c Config) Validate() error {
	if c.ManagementIntervalMS <= 0 {
		return fmt.Errorf("management_interval_ms must be positive")
	}
	if c.PredictionIntervalMS <= 0 {
		return fmt.Errorf("prediction_interval_ms must be positive")
	}
	if c.SolarWindowSize <= 0 {
		return fmt.Errorf("solar_window_size must be positive")
	}
	return nil
}

// ManagementInterval returns the management tick period.
func (c Config) ManagementInterval() time.Duration {
	return time.Duration(c.ManagementIntervalMS) * time.Millisecond
}

// PredictionInterval returns the prediction tick period.
func (c Config) PredictionInterval() time.Duration {
	return time.Duration(c.PredictionIntervalMS) * time.Millisecond
}
