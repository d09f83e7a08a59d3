package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatlens/chatlens/pkg/transcript"
)

func TestSearchCommand_Text(t *testing.T) {
	path := writeExport(t, sampleExport)
	cmd := NewSearchCommand(testDeps())

	out, err := execute(t, cmd, path, "HELLO")
	require.NoError(t, err)
	assert.Contains(t, out, `1 matches for "HELLO"`)
	assert.Contains(t, out, "hello there")
}

func TestSearchCommand_CaseSensitive(t *testing.T) {
	path := writeExport(t, sampleExport)
	cmd := NewSearchCommand(testDeps())

	out, err := execute(t, cmd, path, "HELLO", "--case-sensitive")
	require.NoError(t, err)
	assert.Contains(t, out, `0 matches`)
}

func TestSearchCommand_From(t *testing.T) {
	path := writeExport(t, sampleExport)
	cmd := NewSearchCommand(testDeps())

	out, err := execute(t, cmd, path, "https", "--from", "Ben", "-o", "json")
	require.NoError(t, err)

	var report struct {
		Data []transcript.Message `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Data, 2)
	for _, m := range report.Data {
		assert.Equal(t, "Ben", m.Sender)
	}
}

func TestSearchCommand_Flags(t *testing.T) {
	cmd := NewSearchCommand(nil)

	require.NotNil(t, cmd)
	assert.Equal(t, "search <export> <keyword>", cmd.Use)
	for _, flag := range []string{"case-sensitive", "from", "output"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}
