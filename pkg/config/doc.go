// Package config loads dirtree settings.
//
// Sources are merged in order, later ones winning:
//
//   - defaults embedded from embedded/defaults.toml
//   - the user file, $XDG_CONFIG_HOME/dirtree/config.toml
//   - .dirtree.toml in the working directory
//   - an explicit --config file
//   - DIRTREE_* environment variables
//   - command-line flag overrides
//
// The merged tree is decoded into a Config and validated before use.
// Invalid values are reported as CONFIG_INVALID errors.
package config
