package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes one stress run. Every world runs the same workload with
// its own random seed.
type Config struct {
	Duration       time.Duration `yaml:"duration"`
	Frames         int           `yaml:"frames"`
	Worlds         int           `yaml:"worlds"`
	Particles      int           `yaml:"particles"`
	SpawnPerFrame  int           `yaml:"spawn_per_frame"`
	Lifetime       float64       `yaml:"lifetime"`
	Gravity        float64       `yaml:"gravity"`
	TimeStep       float64       `yaml:"time_step"`
	Seed           uint64        `yaml:"seed"`
	GCPauseMetrics bool          `yaml:"gc_pause_metrics"`
}

// DefaultConfig returns the workload used when no file or flag overrides it.
func DefaultConfig() Config {
	return Config{
		Duration:      10 * time.Second,
		Worlds:        1,
		Particles:     10000,
		SpawnPerFrame: 100,
		Lifetime:      2.0,
		Gravity:       -9.81,
		TimeStep:      1.0 / 60,
		Seed:          1,
	}
}

// LoadConfig returns the defaults overlaid with the YAML file at path. An
// empty path yields the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}

	return config, nil
}

// Validate checks that the workload can run.
func (c Config) Validate() error {
	var errs []error

	if c.Duration <= 0 && c.Frames <= 0 {
		errs = append(errs, errors.New("either duration or frames must be positive"))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Frames))
	}
	if c.Worlds < 1 {
		errs = append(errs, fmt.Errorf("worlds must be at least 1, got %d", c.Worlds))
	}
	if c.Particles < 0 {
		errs = append(errs, fmt.Errorf("particles must not be negative, got %d", c.Particles))
	}
	if c.SpawnPerFrame < 0 {
		errs = append(errs, fmt.Errorf("spawn_per_frame must not be negative, got %d", c.SpawnPerFrame))
	}
	if c.Lifetime <= 0 {
		errs = append(errs, fmt.Errorf("lifetime must be positive, got %g", c.Lifetime))
	}
	if c.TimeStep <= 0 {
		errs = append(errs, fmt.Errorf("time_step must be positive, got %g", c.TimeStep))
	}

	return errors.Join(errs...)
}
