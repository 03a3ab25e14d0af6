// Package config loads simulation settings from an HCL file.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	DefaultMinWins          = 1000
	DefaultWorkers          = 1
	DefaultProgressInterval = 100000
	DefaultLogLevel         = "warn"
)

// Config represents the complete simulation configuration
type Config struct {
	Simulation SimulationSettings `hcl:"simulation,block"`
	Output     OutputSettings     `hcl:"output,block"`
}

// SimulationSettings controls the simulation loop
type SimulationSettings struct {
	MinWins          int   `hcl:"min_wins,optional"`
	Seed             int64 `hcl:"seed,optional"`
	Workers          int   `hcl:"workers,optional"`
	MaxHands         int   `hcl:"max_hands,optional"`
	BatchSize        int   `hcl:"batch_size,optional"`
	ProgressInterval int   `hcl:"progress_interval,optional"`
}

// OutputSettings controls logging and reporting
type OutputSettings struct {
	LogLevel string `hcl:"log_level,optional"`
	JSONFile string `hcl:"json_file,optional"`
	Color    *bool  `hcl:"color,optional"`
}

// fileConfig mirrors Config with optional blocks for decoding
type fileConfig struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Output     *OutputSettings     `hcl:"output,block"`
}

// Default returns the default configuration
func Default() *Config {
	color := true
	return &Config{
		Simulation: SimulationSettings{
			MinWins:          DefaultMinWins,
			Workers:          DefaultWorkers,
			ProgressInterval: DefaultProgressInterval,
		},
		Output: OutputSettings{
			LogLevel: DefaultLogLevel,
			Color:    &color,
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults for missing values
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diagnosticsError(diags))
	}

	config := Default()
	if raw.Simulation != nil {
		config.Simulation = *raw.Simulation
	}
	if raw.Output != nil {
		config.Output = *raw.Output
	}
	config.applyDefaults()

	return config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Simulation.MinWins == 0 {
		c.Simulation.MinWins = defaults.Simulation.MinWins
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = defaults.Simulation.Workers
	}
	if c.Simulation.ProgressInterval == 0 {
		c.Simulation.ProgressInterval = defaults.Simulation.ProgressInterval
	}
	if c.Output.LogLevel == "" {
		c.Output.LogLevel = defaults.Output.LogLevel
	}
	if c.Output.Color == nil {
		c.Output.Color = defaults.Output.Color
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.MinWins < 1 {
		return fmt.Errorf("min_wins must be at least 1: %d", c.Simulation.MinWins)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("workers must be at least 1: %d", c.Simulation.Workers)
	}
	if c.Simulation.MaxHands < 0 {
		return fmt.Errorf("max_hands must not be negative: %d", c.Simulation.MaxHands)
	}
	if c.Simulation.BatchSize < 0 {
		return fmt.Errorf("batch_size must not be negative: %d", c.Simulation.BatchSize)
	}
	if c.Simulation.ProgressInterval < 0 {
		return fmt.Errorf("progress_interval must not be negative: %d", c.Simulation.ProgressInterval)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.Output.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.Output.LogLevel, err)
	}
	return level, nil
}

// ColorEnabled reports whether styled output is wanted
func (c *Config) ColorEnabled() bool {
	return c.Output.Color == nil || *c.Output.Color
}

func diagnosticsError(diags hcl.Diagnostics) string {
	if len(diags) == 1 {
		return diags[0].Error()
	}
	return diags.Error()
}
