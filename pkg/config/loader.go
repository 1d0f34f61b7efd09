package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dirtree/pkg/errors"
	"github.com/arthur-debert/dirtree/pkg/logging"
	"github.com/arthur-debert/dirtree/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides: DIRTREE_COPY_SYMLINKS sets
// copy.symlinks.
const EnvPrefix = "DIRTREE_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultTOML returns the embedded defaults file
func DefaultTOML() []byte {
	return defaultConfig
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions selects the optional configuration layers
type LoadOptions struct {
	// ConfigFile is an explicit file (--config). It must exist.
	ConfigFile string
	// WorkDir is searched for a project .dirtree.toml. Empty skips it.
	WorkDir string
	// Overrides are dotted keys applied last, typically from flags.
	Overrides map[string]interface{}
	// SkipUserConfig ignores the XDG user config file.
	SkipUserConfig bool
	// SkipEnv ignores DIRTREE_* environment variables.
	SkipEnv bool
}

// Load builds the configuration from, in increasing precedence: embedded
// defaults, the user config file, the project file, the explicit file,
// DIRTREE_* environment variables and Overrides. The result is validated.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load embedded defaults")
	}

	var files []string
	if !opts.SkipUserConfig {
		files = append(files, paths.New().ConfigFile())
	}
	if opts.WorkDir != "" {
		files = append(files, filepath.Join(opts.WorkDir, paths.ProjectConfigFileName))
	}
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("Loaded explicit config file")
	}

	if !opts.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults. They are compiled in, so a
// failure here is a build problem.
func Default() *Config {
	cfg, err := Load(LoadOptions{SkipUserConfig: true, SkipEnv: true})
	if err != nil {
		panic(err)
	}
	return cfg
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path).
			WithDetail("path", path)
	}
	return nil
}

// envKey maps DIRTREE_SECTION_KEY to section.key. Only the first
// underscore separates the section so keys like preserve_permissions
// survive. Variables that name no section are dropped.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, ok := strings.Cut(key, "_")
	if !ok {
		return ""
	}
	switch section {
	case "sanitize", "directories", "copy", "promote":
		return section + "." + rest
	}
	return ""
}
