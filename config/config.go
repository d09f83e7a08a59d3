// Package config provides CLI configuration management for the chatlens
// command-line tool. It supports loading configuration from a YAML file,
// with the parser's indicator tables and the analyzers' thresholds exposed
// so additional languages and alternate heuristics need no rebuild.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	clerrors "github.com/chatlens/chatlens/pkg/errors"
	"github.com/chatlens/chatlens/pkg/transcript"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// IsValid reports whether the output format is one of the supported values.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	}
	return false
}

// Default configuration values.
const (
	DefaultOutputFormat = OutputFormatText
	DefaultConfigDir    = ".chatlens"
	DefaultConfigFile   = "config.yaml"

	// DefaultConversationGapHours is the silence length after which the
	// next message counts as starting a new conversation.
	DefaultConversationGapHours = 6.0

	// DefaultMaxResponseTimeMinutes caps plausible response times; gaps
	// beyond it (24h) are not responses, just the next conversation.
	DefaultMaxResponseTimeMinutes = 1440.0

	// DefaultMinWordLength is the shortest word counted by word
	// frequency analysis.
	DefaultMinWordLength = 2
)

// AnalysisConfig holds the thresholds consumed by the pattern and stats
// analyzers. These are configuration inputs alongside the parser tables,
// not parser state.
type AnalysisConfig struct {
	// ConversationGapHours is hours of silence before a new conversation.
	ConversationGapHours float64 `yaml:"conversation_gap_hours"`

	// MaxResponseTimeMinutes is the longest gap still counted as a
	// response.
	MaxResponseTimeMinutes float64 `yaml:"max_response_time_minutes"`

	// MinWordLength is the minimum word length for frequency analysis.
	MinWordLength int `yaml:"min_word_length"`
}

// CLIConfig is the chatlens configuration, persisted as YAML at
// ~/.chatlens/config.yaml.
type CLIConfig struct {
	// OutputFormat is the default output format (text, json, yaml).
	OutputFormat OutputFormat `yaml:"output_format"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug"`

	// Parser holds the transcript parser's configuration surface:
	// ordered media indicator table, system phrases, and the date layout
	// chains per line grammar.
	Parser *transcript.Config `yaml:"parser"`

	// Analysis holds the analyzer thresholds.
	Analysis AnalysisConfig `yaml:"analysis"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		OutputFormat: DefaultOutputFormat,
		Parser:       transcript.DefaultConfig(),
		Analysis: AnalysisConfig{
			ConversationGapHours:   DefaultConversationGapHours,
			MaxResponseTimeMinutes: DefaultMaxResponseTimeMinutes,
			MinWordLength:          DefaultMinWordLength,
		},
	}
}

// Validate checks the configuration for values that would break parsing or
// analysis.
func (c *CLIConfig) Validate() error {
	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("%w: unknown output format %q", clerrors.ErrInvalidConfig, c.OutputFormat)
	}
	if c.Parser == nil {
		return fmt.Errorf("%w: parser section missing", clerrors.ErrInvalidConfig)
	}
	if len(c.Parser.AndroidDateLayouts) == 0 || len(c.Parser.IOSDateLayouts) == 0 {
		return fmt.Errorf("%w: date layout lists must not be empty", clerrors.ErrInvalidConfig)
	}
	for _, ind := range c.Parser.MediaIndicators {
		if ind.Phrase == "" {
			return fmt.Errorf("%w: media indicator with empty phrase", clerrors.ErrInvalidConfig)
		}
	}
	if c.Analysis.ConversationGapHours <= 0 {
		return fmt.Errorf("%w: conversation_gap_hours must be positive", clerrors.ErrInvalidConfig)
	}
	if c.Analysis.MaxResponseTimeMinutes <= 0 {
		return fmt.Errorf("%w: max_response_time_minutes must be positive", clerrors.ErrInvalidConfig)
	}
	return nil
}

// ConfigPath returns the path to the configuration file. The CHATLENS_CONFIG
// environment variable overrides the default location.
func ConfigPath() (string, error) {
	if env := os.Getenv("CHATLENS_CONFIG"); env != "" {
		return ExpandPath(env)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// LoadConfig loads the configuration from disk. A missing file yields the
// defaults; a present but malformed file is an error.
func LoadConfig() (*CLIConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from an explicit path.
func LoadConfigFile(path string) (*CLIConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", clerrors.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the configuration to the default path, creating the
// config directory if needed.
func SaveConfig(cfg *CLIConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Set updates a single configuration key from its string representation.
// Used by `chatlens config set`.
func (c *CLIConfig) Set(key, value string) error {
	switch key {
	case "output_format":
		format := OutputFormat(value)
		if !format.IsValid() {
			return fmt.Errorf("invalid output format: %s (must be text, json, or yaml)", value)
		}
		c.OutputFormat = format
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid debug value: %s (must be true or false)", value)
		}
		c.Debug = b
	case "conversation_gap_hours":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid conversation_gap_hours value: %s", value)
		}
		c.Analysis.ConversationGapHours = f
	case "max_response_time_minutes":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("invalid max_response_time_minutes value: %s", value)
		}
		c.Analysis.MaxResponseTimeMinutes = f
	case "min_word_length":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid min_word_length value: %s", value)
		}
		c.Analysis.MinWordLength = n
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
