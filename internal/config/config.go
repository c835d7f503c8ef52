// Package config resolves colourgrid's settings from defaults, a YAML file,
// the environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/jmylchreest/colourgrid/internal/colour"
	"github.com/jmylchreest/colourgrid/internal/grid"
)

const (
	DefaultAddr            = ":5000"
	DefaultTitle           = "Colour Grid"
	DefaultShutdownTimeout = 5 * time.Second
	DefaultLogLevel        = "info"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all colourgrid settings.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Grid   GridConfig   `yaml:"grid"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP picker.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	Title           string        `yaml:"title" validate:"required"`
	TemplateDir     string        `yaml:"template_dir"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// GridConfig selects the colour space and the number of cells per grid.
type GridConfig struct {
	Components int `yaml:"components" validate:"min=1,max=8"`
	Bits       int `yaml:"bits" validate:"oneof=4 8 12 16"`

	// CellsLog2 of zero selects grid.DefaultCellsLog2. The maximum matches
	// grid.MaxCellsLog2.
	CellsLog2 int `yaml:"cells_log2" validate:"gte=0,max=24,cells_multiple"`
}

// LogConfig configures the root logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error off"`
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			Title:           DefaultTitle,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Grid: GridConfig{
			Components: colour.RGB24.ComponentCount,
			Bits:       colour.RGB24.BitsPerComponent,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, convertValidationError(err))
	}
	return nil
}

// Space returns the configured colour space.
func (c Config) Space() colour.Space {
	return colour.Space{ComponentCount: c.Grid.Components, BitsPerComponent: c.Grid.Bits}
}

// CellsLog2 returns the configured cells per grid, applying the default.
func (c Config) CellsLog2() int {
	if c.Grid.CellsLog2 == 0 {
		return grid.DefaultCellsLog2(c.Space())
	}
	return c.Grid.CellsLog2
}

// Geometry builds the grid geometry for the configured space.
func (c Config) Geometry() (*grid.Geometry, error) {
	g, err := grid.NewGeometry(c.Space(), c.CellsLog2())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return g, nil
}
