package config

import (
	"bytes"

	"github.com/arthur-debert/dirtree/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

const renderHeader = `# dirtree configuration
# Generated by "dirtree gen-config". Remove any key to fall back to the
# built-in default.

`

// Render encodes cfg as a TOML config file
func Render(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(renderHeader)

	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}

// Parse decodes a TOML config file into a Config without layering. It
// is strict: unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse configuration")
	}
	return &cfg, nil
}
