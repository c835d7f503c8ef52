// Package template loads page templates, preferring a user's customised copy
// over the default compiled into the binary.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/colourgrid/internal/security"
)

// Extension is the file extension of every template the loader knows about.
const Extension = ".tmpl"

// ErrTemplateExists is returned by Dump when a custom template is already
// present and force was not requested.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader handles loading templates with support for custom overrides.
// It checks for custom templates in ~/.config/colourgrid/templates/{name}/
// (or the directory set with WithCustomDir) and falls back to the embedded
// templates if custom ones don't exist.
type Loader struct {
	name      string
	embedded  fs.FS
	customDir string
	logger    hclog.Logger
}

// New creates a loader for the named template set backed by the embedded
// filesystem. Template filenames are paths within embedded.
func New(name string, embedded fs.FS) *Loader {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "" // Fallback to a relative directory if home is unavailable.
	}

	return &Loader{
		name:      name,
		embedded:  embedded,
		customDir: filepath.Join(home, ".config", "colourgrid", "templates", name),
		logger:    hclog.NewNullLogger(),
	}
}

// WithCustomDir sets the directory holding custom templates. An empty dir
// keeps the default.
func (l *Loader) WithCustomDir(dir string) *Loader {
	if dir != "" {
		l.customDir = dir
	}
	return l
}

// WithLogger sets the logger used to report which template was chosen.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger.Named("templates")
	}
	return l
}

// Name returns the template set's name.
func (l *Loader) Name() string {
	return l.name
}

// CustomDir returns the directory where custom templates are looked up.
func (l *Loader) CustomDir() string {
	return l.customDir
}

// CustomPath returns the path where a custom template would be located.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customDir, filepath.FromSlash(filename))
}

// Load reads a template, checking for a custom override first.
// Returns the content and whether it was loaded from a custom override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	if err := security.ValidateFilePath(filename, l.customDir); err != nil {
		return nil, false, fmt.Errorf("invalid template name %q: %w", filename, err)
	}

	customPath := l.CustomPath(filename)
	if content, err := os.ReadFile(customPath); err == nil {
		l.logger.Debug("using custom template", "path", customPath)
		return content, true, nil
	}

	l.logger.Debug("using embedded template", "name", filename)
	content, err = fs.ReadFile(l.embedded, path.Clean(filename))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}

	return content, false, nil
}

// HasCustomTemplate checks if a custom template exists for the given filename.
func (l *Loader) HasCustomTemplate(filename string) bool {
	_, err := os.Stat(l.CustomPath(filename))
	return err == nil
}

// List returns the names of all embedded templates, sorted.
func (l *Loader) List() ([]string, error) {
	var templates []string

	err := fs.WalkDir(l.embedded, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, Extension) {
			templates = append(templates, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}

	slices.Sort(templates)
	return templates, nil
}

// Dump writes an embedded template to the custom templates directory so that
// it can be edited. Without force an existing custom template is kept and
// the error wraps ErrTemplateExists.
func (l *Loader) Dump(filename string, force bool) (string, error) {
	content, err := fs.ReadFile(l.embedded, filename)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	outputPath := l.CustomPath(filename)
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return outputPath, fmt.Errorf("%w: %s (use --force to overwrite)", ErrTemplateExists, outputPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", filepath.Dir(outputPath), err)
	}
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}

	return outputPath, nil
}

// DumpAll writes every embedded template to the custom templates directory.
// Existing templates are skipped unless force is set; the skipped ones are
// reported in the returned error while the rest are still written.
func (l *Loader) DumpAll(force bool) ([]string, error) {
	templates, err := l.List()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error
	for _, name := range templates {
		outputPath, err := l.Dump(name, force)
		if err != nil {
			if errors.Is(err, ErrTemplateExists) {
				skipped = append(skipped, err)
				continue
			}
			return dumped, err
		}
		dumped = append(dumped, outputPath)
	}

	return dumped, errors.Join(skipped...)
}
