package genconfig

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirtree/pkg/config"
	"github.com/arthur-debert/dirtree/pkg/errors"
	"github.com/arthur-debert/dirtree/pkg/logging"
	"github.com/arthur-debert/dirtree/pkg/paths"
	"github.com/arthur-debert/dirtree/pkg/tree"
	"github.com/arthur-debert/dirtree/pkg/types"
)

// Options wires the command to the rest of the CLI
type Options struct {
	// FS is used for reading checked files and writing the config
	FS types.FS
	// Config returns the effective configuration loaded by the root command
	Config func() *config.Config
	// Target overrides the file written by -w; empty means the user config
	Target string
}

// NewCommand creates the gen-config command
func NewCommand(opts Options) *cobra.Command {
	var (
		write bool
		force bool
		check string
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check != "" {
				if err := Check(opts.FS, check); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgCheckOK+"\n", check)
				return err
			}

			data, err := config.Render(opts.Config())
			if err != nil {
				return err
			}

			if !write {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}

			target := opts.Target
			if target == "" {
				target = paths.New().ConfigFile()
			}
			if err := Write(opts.FS, target, data, force); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgWritten+"\n", target)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	cmd.Flags().StringVar(&check, "check", "", MsgFlagCheck)
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

// Write stores data at target, creating the parent directory. An existing
// file is only replaced when force is set.
func Write(fsys types.FS, target string, data []byte, force bool) error {
	logger := logging.GetLogger("genconfig")

	if _, err := fsys.Lstat(target); err == nil && !force {
		return errors.Newf(errors.ErrPathConflict, MsgErrExists, target).
			WithDetail("path", target)
	}

	if err := tree.EnsureDirectory(fsys, filepath.Dir(target)); err != nil {
		return err
	}
	if err := fsys.WriteFile(target, data, 0644); err != nil {
		return errors.WrapIO(err, "write", target)
	}

	logger.Info().Str("path", target).Msg("Wrote configuration")
	return nil
}

// Check validates a standalone configuration file. Unknown keys are
// errors, and the file is layered over the defaults before validation so
// that only the keys it sets can fail.
func Check(fsys types.FS, path string) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}

	if _, err := config.Parse(data); err != nil {
		return err
	}

	_, err = config.Load(config.LoadOptions{
		ConfigFile:     path,
		SkipUserConfig: true,
		SkipEnv:        true,
	})
	return err
}
