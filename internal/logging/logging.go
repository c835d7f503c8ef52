// Package logging builds the application's hclog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "colourgrid"

// Options configures the root logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error or off.
	Level string

	// JSON selects JSON output instead of hclog's human format.
	JSON bool

	// Verbose forces debug level, Quiet forces error level. Verbose wins.
	Verbose bool
	Quiet   bool

	// Output defaults to stderr.
	Output io.Writer
}

// ParseLevel converts a level name into an hclog level.
func ParseLevel(name string) (hclog.Level, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return hclog.Info, nil
	}

	level := hclog.LevelFromString(name)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// New returns the root logger described by opts.
func New(opts Options) (hclog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	switch {
	case opts.Verbose:
		level = hclog.Debug
	case opts.Quiet:
		level = hclog.Error
	}

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       Name,
		Output:     output,
		Level:      level,
		JSONFormat: opts.JSON,
	}), nil
}
