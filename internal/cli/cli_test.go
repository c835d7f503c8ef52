// Package cli_test provides tests for the CLI package.
package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/colourgrid/internal/cli"
	"github.com/jmylchreest/colourgrid/internal/colour"
	"github.com/jmylchreest/colourgrid/internal/config"
	"github.com/jmylchreest/colourgrid/internal/grid"
)

// execute runs the CLI with args on a fresh command tree.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "colourgrid version ") {
		t.Errorf("version output = %q", out)
	}
}

func TestShowCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "show", "--format", "json")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		var got struct {
			Depth     int              `json:"depth"`
			CellCount int              `json:"cell_count"`
			Cells     []map[string]any `json:"cells"`
		}
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if got.Depth != 0 || got.CellCount != 512 || len(got.Cells) != 512 {
			t.Errorf("show json = depth %d, %d cells (%d listed)", got.Depth, got.CellCount, len(got.Cells))
		}
	})

	t.Run("table", func(t *testing.T) {
		out, _, err := execute(t, "show", "2", "241C08", "--format", "table", "--no-colour")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		for _, want := range []string{"FIRST", "#241C08", "/?prev=241C08", "8 x 8 = 64 colours: #241C08-#271F0B / 1"} {
			if !strings.Contains(out, want) {
				t.Errorf("show table missing %q", want)
			}
		}
		if strings.Contains(out, "\033[") {
			t.Error("show --no-colour printed ANSI codes")
		}
		// Header, separator, 64 cells and the summary.
		if lines := strings.Count(out, "\n"); lines != 67 {
			t.Errorf("show table printed %d lines, want 67", lines)
		}
	})

	t.Run("table with previews", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		out, _, err := execute(t, "show", "2", "241C08", "--format", "table")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.Contains(out, "PREVIEW") {
			t.Error("show table has no PREVIEW column")
		}
		if got := strings.Count(out, "\033[48;2;"); got != 64 {
			t.Errorf("show table printed %d previews, want 64", got)
		}
	})

	t.Run("swatch", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		out, _, err := execute(t, "show", "1", "200000")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		if len(lines) != 17 {
			t.Fatalf("swatch printed %d lines, want 17", len(lines))
		}
		if got := strings.Count(lines[0], "\033[48;2;"); got != 32 {
			t.Errorf("first swatch row has %d cells, want 32", got)
		}
		if lines[16] != "16 x 32 = 512 colours: #200000-#3F1F1F / 4" {
			t.Errorf("summary = %q", lines[16])
		}
	})

	t.Run("swatch honours NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		out, _, err := execute(t, "show")
		if err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if strings.Contains(out, "\033[") {
			t.Error("NO_COLOR output contains ANSI codes")
		}
	})

	t.Run("errors", func(t *testing.T) {
		if _, _, err := execute(t, "show", "1"); err == nil {
			t.Error("show accepted a depth without a colour")
		}
		if _, _, err := execute(t, "show", "5", "000000"); !errors.Is(err, grid.ErrInvalidDepth) {
			t.Errorf("show 5 error = %v, want ErrInvalidDepth", err)
		}
		if _, _, err := execute(t, "show", "+1", "200000"); !errors.Is(err, grid.ErrInvalidDepth) {
			t.Errorf("show +1 error = %v, want ErrInvalidDepth", err)
		}
		if _, _, err := execute(t, "show", "1", "FFFFFF"); !errors.Is(err, grid.ErrInvalidStart) {
			t.Errorf("show 1 FFFFFF error = %v, want ErrInvalidStart", err)
		}
		if _, _, err := execute(t, "show", "--format", "xml"); err == nil {
			t.Error("show accepted an unknown format")
		}
	})
}

func TestLocateCommand(t *testing.T) {
	for _, arg := range []string{"6A3BF1", "#6a3bf1"} {
		out, _, err := execute(t, "locate", arg)
		if err != nil {
			t.Fatalf("locate %s failed: %v", arg, err)
		}
		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		if len(lines) != 5 {
			t.Fatalf("locate printed %d lines, want 5:\n%s", len(lines), out)
		}
		for i, wantGrid := range []string{"#000000", "#6020E0", "#6838F0"} {
			if !strings.Contains(lines[i+2], wantGrid) {
				t.Errorf("line %d = %q, want grid %s", i+2, lines[i+2], wantGrid)
			}
		}
		if !strings.Contains(lines[4], "#6A3BF1 ") || !strings.HasSuffix(lines[4], "/?prev=6A3BF1") {
			t.Errorf("leaf line = %q", lines[4])
		}
	}

	if _, _, err := execute(t, "locate", "XYZ"); !errors.Is(err, colour.ErrInvalidHex) {
		t.Errorf("locate XYZ error = %v, want ErrInvalidHex", err)
	}
}

func TestExportCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaf.png")

	_, stderr, err := execute(t, "export", "2", "241C08", "-o", path, "--cell-size", "10")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stderr, "swatch written") {
		t.Errorf("export did not log the written file: %q", stderr)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("export did not write %s: %v", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 80, 80); got != want {
		t.Errorf("bounds = %v, want %v", got, want)
	}

	if _, _, err := execute(t, "export", "0", "000000"); err == nil {
		t.Error("export without --output succeeded")
	}
}

func TestTemplatesCommand(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "templates", "list", "--dir", dir)
	if err != nil {
		t.Fatalf("templates list failed: %v", err)
	}
	if !strings.Contains(out, "  - grid.html.tmpl\n") {
		t.Errorf("templates list = %q", out)
	}

	out, _, err = execute(t, "templates", "dump", "--dir", dir)
	if err != nil {
		t.Fatalf("templates dump failed: %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, "grid.html.tmpl")) {
		t.Errorf("templates dump = %q", out)
	}

	_, stderr, err := execute(t, "templates", "dump", "--dir", dir)
	if err != nil {
		t.Fatalf("second templates dump failed: %v", err)
	}
	if !strings.Contains(stderr, "Skipped") {
		t.Errorf("second dump did not report skipped templates: %q", stderr)
	}

	out, _, err = execute(t, "templates", "list", "--dir", dir)
	if err != nil {
		t.Fatalf("templates list failed: %v", err)
	}
	if !strings.Contains(out, "grid.html.tmpl*") {
		t.Errorf("templates list does not mark the override: %q", out)
	}
}

func TestGlobalGridFlags(t *testing.T) {
	out, _, err := execute(t, "--components", "1", "show", "--format", "json")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	var got struct {
		CellCount int    `json:"cell_count"`
		Last      string `json:"last"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.CellCount != 8 || got.Last != "FF" {
		t.Errorf("grey grid = %d cells up to %s, want 8 up to FF", got.CellCount, got.Last)
	}

	for _, args := range [][]string{
		{"--bits", "5", "show"},
		{"--cells-log2", "4", "show"},
		{"--log-level", "loud", "show"},
	} {
		if _, _, err := execute(t, args...); !errors.Is(err, config.ErrInvalidConfig) {
			t.Errorf("%v error = %v, want ErrInvalidConfig", args, err)
		}
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colourgrid.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  bits: 4\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	out, _, err := execute(t, "--config", path, "show", "--format", "json")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, `"last": "FFF"`) {
		t.Errorf("config file not applied: %.200s", out)
	}
}

func TestServeArgs(t *testing.T) {
	if _, _, err := execute(t, "serve", "80", "81"); err == nil {
		t.Error("serve accepted two arguments")
	}
	if _, _, err := execute(t, "serve", "port"); err == nil || !strings.Contains(err.Error(), "invalid port") {
		t.Errorf("serve port error = %v", err)
	}
}
