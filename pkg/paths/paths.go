// Package paths provides centralized path handling for dirtree.
// It resolves the XDG Base Directory locations dirtree reads its
// configuration from and writes its log file to.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvDirtreeConfigDir overrides the XDG config directory for dirtree
	EnvDirtreeConfigDir = "DIRTREE_CONFIG_DIR"

	// EnvDirtreeStateDir overrides the XDG state directory for dirtree
	EnvDirtreeStateDir = "DIRTREE_STATE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name used under each XDG base dir
	AppDirName = "dirtree"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// ProjectConfigFileName is looked up in the working directory
	ProjectConfigFileName = ".dirtree.toml"

	// LogFileName is the name of the log file
	LogFileName = "dirtree.log"
)

// Paths holds the resolved locations for a dirtree invocation
type Paths struct {
	configDir string
	stateDir  string
}

// New resolves paths from the environment. XDG variables are re-read on
// every call so tests can point them at temporary directories.
func New() *Paths {
	xdg.Reload()

	p := &Paths{}

	if dir := os.Getenv(EnvDirtreeConfigDir); dir != "" {
		p.configDir = expandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvDirtreeStateDir); dir != "" {
		p.stateDir = expandHome(dir)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

// ConfigDir returns the directory holding the user configuration
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// StateDir returns the directory holding logs and other state
func (p *Paths) StateDir() string {
	return p.stateDir
}

// ConfigFile returns the user configuration file path
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// LogFilePath returns the log file path
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// expandHome expands ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
