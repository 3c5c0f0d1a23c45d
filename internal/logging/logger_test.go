package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   LogLevel
		want zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{"WARNING", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestSetupWritesJSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: LevelDebug, Output: &buf})
	t.Cleanup(func() { Setup(DefaultConfig()) })

	logger := NewLogger("loader")
	logger.Info().Int("page", 2).Msg("Page loaded")

	out := buf.String()
	require.Contains(t, out, `"component":"loader"`)
	require.Contains(t, out, `"page":2`)
	require.Contains(t, out, `"message":"Page loaded"`)
}

func TestSetupRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: LevelWarn, Output: &buf})
	t.Cleanup(func() { Setup(DefaultConfig()) })

	logger := NewLogger("tui")
	logger.Info().Msg("hidden")
	require.Empty(t, buf.String())
}

func TestOpenFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "artbrowse", "artbrowse.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString("ok\n")
	require.NoError(t, err)
}
