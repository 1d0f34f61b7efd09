// pkg/paths/paths_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test XDG path resolution and environment overrides

package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewUsesXDG(t *testing.T) {
	cfg := t.TempDir()
	state := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfg)
	t.Setenv("XDG_STATE_HOME", state)
	t.Setenv(EnvDirtreeConfigDir, "")
	t.Setenv(EnvDirtreeStateDir, "")

	p := New()

	assert.Equal(t, filepath.Join(cfg, "dirtree"), p.ConfigDir())
	assert.Equal(t, filepath.Join(cfg, "dirtree", "config.toml"), p.ConfigFile())
	assert.Equal(t, filepath.Join(state, "dirtree"), p.StateDir())
	assert.Equal(t, filepath.Join(state, "dirtree", "dirtree.log"), p.LogFilePath())
}

func TestNewEnvOverrides(t *testing.T) {
	t.Setenv(EnvDirtreeConfigDir, "/custom/config")
	t.Setenv(EnvDirtreeStateDir, "/custom/state")

	p := New()

	assert.Equal(t, "/custom/config", p.ConfigDir())
	assert.Equal(t, "/custom/state/dirtree.log", p.LogFilePath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/conf", filepath.Join(home, "conf")},
		{"/abs/path", "/abs/path"},
		{"rel/~/x", "rel/~/x"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, expandHome(tt.in))
		})
	}
}
