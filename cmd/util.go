// Package cmd provides CLI commands for the chatlens tool.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/chatlens/chatlens/config"
	"github.com/chatlens/chatlens/pkg/export"
	"github.com/chatlens/chatlens/pkg/logging"
	"github.com/chatlens/chatlens/pkg/transcript"
)

// Deps holds the dependencies shared by all chatlens commands. Tests inject
// their own config and a no-op logger.
type Deps struct {
	Config     *config.CLIConfig
	Logger     logging.Logger
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultDeps returns the default dependencies for production use.
func DefaultDeps() *Deps {
	return &Deps{
		LoadConfig: config.LoadConfig,
		Logger:     logging.NewNopLogger(),
	}
}

// resolveConfig returns the injected config, loading it on first use.
func (d *Deps) resolveConfig() (*config.CLIConfig, error) {
	if d.Config != nil {
		return d.Config, nil
	}
	cfg, err := d.LoadConfig()
	if err != nil {
		return nil, err
	}
	d.Config = cfg
	return cfg, nil
}

// resolveOutput picks the output format: a per-command -o flag wins over the
// configured default.
func (d *Deps) resolveOutput(override string) (config.OutputFormat, error) {
	if override != "" {
		format := config.OutputFormat(override)
		if !format.IsValid() {
			return "", fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", override)
		}
		return format, nil
	}
	cfg, err := d.resolveConfig()
	if err != nil {
		return "", err
	}
	return cfg.OutputFormat, nil
}

// loadTranscript reads a chat export (plain text or zip) and parses it.
func (d *Deps) loadTranscript(path string) (*transcript.Result, error) {
	cfg, err := d.resolveConfig()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := export.Read(path)
	if err != nil {
		return nil, err
	}

	result := transcript.New(cfg.Parser).Parse(text)
	d.Logger.Info("transcript parsed",
		logging.F("path", path),
		logging.F("format", result.Format),
		logging.F("messages", len(result.Messages)),
		logging.F("participants", len(result.Participants)),
		logging.F("duration_ms", time.Since(start).Milliseconds()),
	)
	return result, nil
}

// Report wraps a command's result with identifying metadata for machine
// output.
type Report struct {
	ReportID    string      `json:"report_id" yaml:"report_id"`
	GeneratedAt time.Time   `json:"generated_at" yaml:"generated_at"`
	Source      string      `json:"source" yaml:"source"`
	Data        interface{} `json:"data" yaml:"data"`
}

// newReport wraps data in a Report with a fresh ID.
func newReport(source string, data interface{}) Report {
	return Report{
		ReportID:    uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Data:        data,
	}
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML writes v as YAML.
func outputYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(v)
}

// terminalWidth returns the width of the attached terminal, or a sensible
// default when stdout is not a terminal (pipes, tests).
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 40 {
		return 80
	}
	return width
}

// bar renders a proportional bar of at most maxWidth cells.
func bar(value, max, maxWidth int) string {
	if max <= 0 || value <= 0 || maxWidth <= 0 {
		return ""
	}
	n := value * maxWidth / max
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// formatDuration renders a duration as a compact human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// truncate shortens s to at most n runes, appending an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
