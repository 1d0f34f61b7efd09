// Package config handles configuration management for dirtree.
// Settings are layered with koanf from embedded defaults, TOML files,
// environment variables and command-line flags.
package config

import (
	"io/fs"
	"strconv"
	"unicode/utf8"

	"github.com/arthur-debert/dirtree/pkg/errors"
	"github.com/arthur-debert/dirtree/pkg/tree"
)

// Config is the effective dirtree configuration
type Config struct {
	Sanitize    SanitizeConfig    `koanf:"sanitize" toml:"sanitize"`
	Directories DirectoriesConfig `koanf:"directories" toml:"directories"`
	Copy        CopyConfig        `koanf:"copy" toml:"copy"`
	Promote     PromoteConfig     `koanf:"promote" toml:"promote"`
}

// SanitizeConfig configures name sanitizing
type SanitizeConfig struct {
	Replacement string `koanf:"replacement" toml:"replacement"`
}

// DirectoriesConfig configures directory creation
type DirectoriesConfig struct {
	// Mode is an octal permission string such as "0755"
	Mode string `koanf:"mode" toml:"mode"`
}

// CopyConfig configures tree copies
type CopyConfig struct {
	Symlinks            string `koanf:"symlinks" toml:"symlinks"`
	PreservePermissions bool   `koanf:"preserve_permissions" toml:"preserve_permissions"`
	MaxDepth            int    `koanf:"max_depth" toml:"max_depth"`
}

// PromoteConfig configures content promotion
type PromoteConfig struct {
	TempPrefix string `koanf:"temp_prefix" toml:"temp_prefix"`
}

// Validate checks every field and returns the first problem as
// ErrConfigValid.
func (c *Config) Validate() error {
	r := c.Sanitize.Replacement
	if utf8.RuneCountInString(r) != 1 {
		return invalid("sanitize.replacement", r, "must be a single character")
	}
	if !tree.IsPortableName(r) {
		return invalid("sanitize.replacement", r, "must not itself be an illegal file name character")
	}

	if _, err := c.DirMode(); err != nil {
		return err
	}

	if _, err := tree.ParseSymlinkPolicy(c.Copy.Symlinks); err != nil {
		return invalid("copy.symlinks", c.Copy.Symlinks, "must be follow, preserve or skip")
	}
	if c.Copy.MaxDepth <= 0 {
		return invalid("copy.max_depth", c.Copy.MaxDepth, "must be positive")
	}

	p := c.Promote.TempPrefix
	if p == "" || !tree.IsPortableName(p) {
		return invalid("promote.temp_prefix", p, "must be a non-empty portable file name")
	}
	return nil
}

// DirMode parses Directories.Mode
func (c *Config) DirMode() (fs.FileMode, error) {
	mode, err := strconv.ParseUint(c.Directories.Mode, 8, 32)
	if err != nil || mode > 0o777 {
		return 0, invalid("directories.mode", c.Directories.Mode, "must be an octal permission between 0000 and 0777")
	}
	return fs.FileMode(mode), nil
}

// CopyOptions converts the copy section into tree options
func (c *Config) CopyOptions() (tree.CopyOptions, error) {
	policy, err := tree.ParseSymlinkPolicy(c.Copy.Symlinks)
	if err != nil {
		return tree.CopyOptions{}, err
	}
	mode, err := c.DirMode()
	if err != nil {
		return tree.CopyOptions{}, err
	}
	return tree.CopyOptions{
		Symlinks:            policy,
		PreservePermissions: c.Copy.PreservePermissions,
		DirMode:             mode,
		MaxDepth:            c.Copy.MaxDepth,
	}, nil
}

// PromoteOptions converts the promote section into tree options
func (c *Config) PromoteOptions() []tree.PromoteOption {
	return []tree.PromoteOption{tree.WithTempPrefix(c.Promote.TempPrefix)}
}

func invalid(key string, value interface{}, reason string) error {
	return errors.Newf(errors.ErrConfigValid, "invalid %s %#v: %s", key, value, reason).
		WithDetail("key", key).
		WithDetail("value", value)
}
