package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/colourgrid/internal/security"
)

// EnvPrefix prefixes every environment variable the builder reads.
const EnvPrefix = "COLOURGRID_"

// maxConfigSize bounds the YAML file the builder is willing to read.
const maxConfigSize = 1 << 20

// Flag names understood by ApplyFlags.
const (
	FlagAddr        = "addr"
	FlagTitle       = "title"
	FlagTemplateDir = "template-dir"
	FlagLogLevel    = "log-level"
	FlagLogJSON     = "log-json"
	FlagComponents  = "components"
	FlagBits        = "bits"
	FlagCellsLog2   = "cells-log2"
)

// Builder provides a fluent interface for constructing a Config.
type Builder struct {
	filePath string
	useEnv   bool
	flags    *pflag.FlagSet
	getenv   func(string) string
}

// NewBuilder creates a builder starting from Default.
func NewBuilder() *Builder {
	return &Builder{getenv: os.Getenv}
}

// WithFile layers a YAML file over the defaults. An empty path is ignored.
func (b *Builder) WithFile(path string) *Builder {
	b.filePath = path
	return b
}

// WithEnvConfig layers COLOURGRID_* environment variables over the file.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithFlags layers the flags that were set explicitly on the command line
// over everything else.
func (b *Builder) WithFlags(flags *pflag.FlagSet) *Builder {
	b.flags = flags
	return b
}

// Build resolves and validates the configuration.
func (b *Builder) Build() (Config, error) {
	cfg := Default()

	if b.filePath != "" {
		if err := loadFile(b.filePath, &cfg); err != nil {
			return Config{}, err
		}
	}

	if b.useEnv {
		if err := applyEnv(&cfg, b.getenv); err != nil {
			return Config{}, err
		}
	}

	if b.flags != nil {
		if err := ApplyFlags(&cfg, b.flags); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(security.NewLimitedReader(f, maxConfigSize))
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	var errs []error

	setString := func(name string, dst *string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) {
		if v := getenv(EnvPrefix + name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %q is not an integer", EnvPrefix, name, v))
				return
			}
			*dst = n
		}
	}
	setBool := func(name string, dst *bool) {
		if v := getenv(EnvPrefix + name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %q is not a boolean", EnvPrefix, name, v))
				return
			}
			*dst = b
		}
	}
	setDuration := func(name string, dst *time.Duration) {
		if v := getenv(EnvPrefix + name); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %q is not a duration", EnvPrefix, name, v))
				return
			}
			*dst = d
		}
	}

	setString("ADDR", &cfg.Server.Addr)
	setString("TITLE", &cfg.Server.Title)
	setString("TEMPLATE_DIR", &cfg.Server.TemplateDir)
	setDuration("SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	setString("LOG_LEVEL", &cfg.Log.Level)
	setBool("LOG_JSON", &cfg.Log.JSON)
	setInt("COMPONENTS", &cfg.Grid.Components)
	setInt("BITS", &cfg.Grid.Bits)
	setInt("CELLS_LOG2", &cfg.Grid.CellsLog2)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ApplyFlags copies every flag that was changed on the command line into cfg.
// Flags missing from the set are ignored.
func ApplyFlags(cfg *Config, flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagAddr:
			cfg.Server.Addr, err = flags.GetString(f.Name)
		case FlagTitle:
			cfg.Server.Title, err = flags.GetString(f.Name)
		case FlagTemplateDir:
			cfg.Server.TemplateDir, err = flags.GetString(f.Name)
		case FlagLogLevel:
			cfg.Log.Level, err = flags.GetString(f.Name)
		case FlagLogJSON:
			cfg.Log.JSON, err = flags.GetBool(f.Name)
		case FlagComponents:
			cfg.Grid.Components, err = flags.GetInt(f.Name)
		case FlagBits:
			cfg.Grid.Bits, err = flags.GetInt(f.Name)
		case FlagCellsLog2:
			cfg.Grid.CellsLog2, err = flags.GetInt(f.Name)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to read flags: %w", err)
	}
	return nil
}
