package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatlens/chatlens/config"
	"github.com/chatlens/chatlens/pkg/logging"
)

const sampleExport = `12/5/23, 14:08 - Ava: hello there
12/5/23, 14:10 - Ben: hi! check https://example.com
12/5/23, 14:12 - Ava: <Media omitted>
12/6/23, 09:30 - Ben: location: https://maps.google.com/?q=52.52000,13.40500
12/6/23, 09:31 - Ava: see you there
`

// testDeps returns deps wired to defaults with a no-op logger, so no config
// file is touched.
func testDeps() *Deps {
	return &Deps{
		Config: config.DefaultConfig(),
		Logger: logging.NewNopLogger(),
	}
}

// writeExport writes a sample transcript to a temp file and returns its path.
func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs a command with args and returns its combined output.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestResolveOutput(t *testing.T) {
	deps := testDeps()

	format, err := deps.resolveOutput("")
	require.NoError(t, err)
	assert.Equal(t, config.OutputFormatText, format)

	format, err = deps.resolveOutput("json")
	require.NoError(t, err)
	assert.Equal(t, config.OutputFormatJSON, format)

	_, err = deps.resolveOutput("xml")
	assert.Error(t, err)
}

func TestLoadTranscript(t *testing.T) {
	deps := testDeps()
	path := writeExport(t, sampleExport)

	result, err := deps.loadTranscript(path)
	require.NoError(t, err)
	assert.Len(t, result.Messages, 5)
	assert.Equal(t, []string{"Ava", "Ben"}, result.Participants)
}

func TestLoadTranscript_MissingFile(t *testing.T) {
	deps := testDeps()

	_, err := deps.loadTranscript(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestBar(t *testing.T) {
	assert.Empty(t, bar(0, 10, 40))
	assert.Empty(t, bar(5, 0, 40))
	assert.Len(t, []rune(bar(10, 10, 40)), 40)
	// Small non-zero values still render one cell.
	assert.Len(t, []rune(bar(1, 1000, 40)), 1)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a very ...", truncate("a very long string", 10))
}

func TestNewReport(t *testing.T) {
	r := newReport("chat.txt", 42)

	assert.NotEmpty(t, r.ReportID)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.Equal(t, "chat.txt", r.Source)
	assert.Equal(t, 42, r.Data)
}
