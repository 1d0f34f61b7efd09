package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default warn level", 0, zerolog.WarnLevel},
		{"info level", 1, zerolog.InfoLevel},
		{"debug level", 2, zerolog.DebugLevel},
		{"trace level", 3, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stateDir := t.TempDir()
			t.Setenv("DIRTREE_STATE_DIR", stateDir)

			var console bytes.Buffer
			SetupLoggerTo(&console, tt.verbosity)

			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			_, err := os.Stat(filepath.Join(stateDir, "dirtree.log"))
			assert.NoError(t, err, "log file should be created")
		})
	}
}

func TestSetupLoggerWritesBothSinks(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("DIRTREE_STATE_DIR", stateDir)

	var console bytes.Buffer
	SetupLoggerTo(&console, 1)
	log.Info().Str("path", "/tmp/x").Msg("copied tree")

	assert.Contains(t, console.String(), "copied tree")
	content, err := os.ReadFile(filepath.Join(stateDir, "dirtree.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"path":"/tmp/x"`)
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	logger := GetLogger("tree.copy")
	logger.Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"tree.copy"`)
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := zerolog.New(&buf)

	done := LogOperationStart(logger, "promote")
	assert.Contains(t, buf.String(), "Operation started")

	done()
	assert.Contains(t, buf.String(), "Operation completed")
	assert.Contains(t, buf.String(), `"duration"`)
}
