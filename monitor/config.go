package monitor

import (
	"fmt"

	"github.com/preeja73/robocurrent/dal"
	"github.com/preeja73/robocurrent/detector"
)

// Config .
type Config struct {
	LogLevel string `yaml:"LogLevel"`
	Port     string `yaml:"Port"`

	// PostgresDSN may be empty; the DAL then falls back to NEON_DATABASE_URL.
	PostgresDSN string `yaml:"PostgresDSN"`

	Trait     string `yaml:"Trait"`
	ChunkSize int    `yaml:"ChunkSize"`

	DefaultThresholds detector.ThresholdConfig         `yaml:"DefaultThresholds"`
	AxisThresholds    map[int]detector.ThresholdConfig `yaml:"AxisThresholds"`
}

// Thresholds returns the effective per-axis threshold configs: the default
// config with per-axis overrides applied.
func (c *Config) Thresholds() map[int]detector.ThresholdConfig {
	cfgs := make(map[int]detector.ThresholdConfig, dal.NumAxes)
	for axis := 1; axis <= dal.NumAxes; axis++ {
		cfg := c.DefaultThresholds
		if override, ok := c.AxisThresholds[axis]; ok {
			cfg = override
		}
		cfgs[axis] = cfg
	}
	return cfgs
}

// Validate .
func (c *Config) Validate() error {
	for axis, cfg := range c.Thresholds() {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("axis %v: %v", axis, err)
		}
	}
	return nil
}
