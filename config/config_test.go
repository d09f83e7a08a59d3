package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clerrors "github.com/chatlens/chatlens/pkg/errors"
	"github.com/chatlens/chatlens/pkg/transcript"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, OutputFormatText, cfg.OutputFormat)
	assert.False(t, cfg.Debug)
	assert.InDelta(t, 6.0, cfg.Analysis.ConversationGapHours, 1e-9)
	assert.InDelta(t, 1440.0, cfg.Analysis.MaxResponseTimeMinutes, 1e-9)
	assert.Equal(t, 2, cfg.Analysis.MinWordLength)

	require.NotNil(t, cfg.Parser)
	assert.NotEmpty(t, cfg.Parser.MediaIndicators)
	assert.NotEmpty(t, cfg.Parser.SystemPhrases)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigFile_Missing(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().OutputFormat, cfg.OutputFormat)
}

func TestLoadConfigFile_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `output_format: json
debug: true
analysis:
  conversation_gap_hours: 12
  max_response_time_minutes: 720
  min_word_length: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, OutputFormatJSON, cfg.OutputFormat)
	assert.True(t, cfg.Debug)
	assert.InDelta(t, 12.0, cfg.Analysis.ConversationGapHours, 1e-9)
	assert.InDelta(t, 720.0, cfg.Analysis.MaxResponseTimeMinutes, 1e-9)
	assert.Equal(t, 3, cfg.Analysis.MinWordLength)

	// The parser section falls back to defaults when absent.
	require.NotNil(t, cfg.Parser)
	assert.NotEmpty(t, cfg.Parser.MediaIndicators)
}

func TestLoadConfigFile_ParserIndicators(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `parser:
  media_indicators:
    - phrase: "photo absente"
      kind: image
  system_phrases:
    - "chiffrement"
  android_date_layouts:
    - "2/1/06 15:04"
  ios_date_layouts:
    - "02.01.06 15:04:05"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	require.Len(t, cfg.Parser.MediaIndicators, 1)
	assert.Equal(t, "photo absente", cfg.Parser.MediaIndicators[0].Phrase)
	assert.Equal(t, transcript.MediaImage, cfg.Parser.MediaIndicators[0].Kind)
	assert.Equal(t, []string{"2/1/06 15:04"}, cfg.Parser.AndroidDateLayouts)
}

func TestLoadConfigFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\nnot yaml: ["), 0o600))

	_, err := LoadConfigFile(path)
	assert.True(t, clerrors.IsInvalidConfig(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CLIConfig)
	}{
		{"bad output format", func(c *CLIConfig) { c.OutputFormat = "xml" }},
		{"nil parser", func(c *CLIConfig) { c.Parser = nil }},
		{"empty layouts", func(c *CLIConfig) { c.Parser.AndroidDateLayouts = nil }},
		{"empty phrase", func(c *CLIConfig) {
			c.Parser.MediaIndicators = append(c.Parser.MediaIndicators, transcript.MediaIndicator{})
		}},
		{"zero gap", func(c *CLIConfig) { c.Analysis.ConversationGapHours = 0 }},
		{"negative response cap", func(c *CLIConfig) { c.Analysis.MaxResponseTimeMinutes = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.True(t, clerrors.IsInvalidConfig(cfg.Validate()))
		})
	}
}

func TestSet(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Set("output_format", "yaml"))
	assert.Equal(t, OutputFormatYAML, cfg.OutputFormat)

	require.NoError(t, cfg.Set("debug", "true"))
	assert.True(t, cfg.Debug)

	require.NoError(t, cfg.Set("conversation_gap_hours", "8"))
	assert.InDelta(t, 8.0, cfg.Analysis.ConversationGapHours, 1e-9)

	require.NoError(t, cfg.Set("min_word_length", "4"))
	assert.Equal(t, 4, cfg.Analysis.MinWordLength)

	assert.Error(t, cfg.Set("output_format", "xml"))
	assert.Error(t, cfg.Set("conversation_gap_hours", "-1"))
	assert.Error(t, cfg.Set("no_such_key", "x"))
}

func TestConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("CHATLENS_CONFIG", "/tmp/custom.yaml")

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
}
