package dirtree

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dirtree/cmd/dirtree/commands/genconfig"
	"github.com/arthur-debert/dirtree/internal/version"
	"github.com/arthur-debert/dirtree/pkg/config"
	"github.com/arthur-debert/dirtree/pkg/errors"
	"github.com/arthur-debert/dirtree/pkg/filesystem"
	"github.com/arthur-debert/dirtree/pkg/logging"
	"github.com/arthur-debert/dirtree/pkg/tree"
	"github.com/arthur-debert/dirtree/pkg/types"
	"github.com/arthur-debert/dirtree/pkg/ui"
)

// annotationNoConfig marks commands that run without loading configuration
const annotationNoConfig = "dirtree/no-config"

// flagKeys maps command flags to the config keys they override
var flagKeys = map[string]string{
	"replacement": "sanitize.replacement",
	"mode":        "directories.mode",
	"symlinks":    "copy.symlinks",
	"max-depth":   "copy.max_depth",
	"temp-prefix": "promote.temp_prefix",
}

// cli holds what the root command's flags and pre-run produce
type cli struct {
	verbosity  int
	configFile string
	format     string

	fsys   types.FS
	cfg    *config.Config
	output ui.Format
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(filesystem.NewOS())
}

func newRootCmd(fsys types.FS) *cobra.Command {
	initTemplateFormatting()

	c := &cli{fsys: fsys}

	rootCmd := &cobra.Command{
		Use:               "dirtree",
		Short:             MsgRootShort,
		Long:              MsgRootLong,
		Version:           version.Version,
		PersistentPreRunE: c.preRun,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		Annotations:       map[string]string{annotationNoConfig: "true"},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&c.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&c.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "tree", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(c.newSanitizeCmd())
	rootCmd.AddCommand(c.newMkdirCmd())
	rootCmd.AddCommand(c.newRmCmd())
	rootCmd.AddCommand(c.newPromoteCmd())
	rootCmd.AddCommand(c.newCopyCmd())
	rootCmd.AddCommand(genconfig.NewCommand(genconfig.Options{
		FS:     fsys,
		Config: func() *config.Config { return c.cfg },
	}))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	if err := initTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
	rootCmd.SetHelpCommandGroupID("misc")
	if helpCmd, _, err := rootCmd.Find([]string{"help"}); err == nil && helpCmd != rootCmd {
		helpCmd.Annotations = map[string]string{annotationNoConfig: "true"}
	}

	return rootCmd
}

// preRun sets up logging, the output format and the layered configuration
func (c *cli) preRun(cmd *cobra.Command, args []string) error {
	logging.SetupLogger(c.verbosity)
	log.Debug().Str("command", cmd.Name()).Msg("Command started")

	format, err := ui.ParseFormat(c.format)
	if err != nil {
		return err
	}
	c.output = format

	if cmd.Annotations[annotationNoConfig] == "true" {
		return nil
	}

	workDir, err := os.Getwd()
	if err != nil {
		workDir = ""
	}
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: c.configFile,
		WorkDir:    workDir,
		Overrides:  flagOverrides(cmd),
	})
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// flagOverrides collects the flags set on cmd that shadow config keys
func flagOverrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	if f := cmd.Flags().Lookup("no-preserve-perms"); f != nil && f.Changed {
		overrides["copy.preserve_permissions"] = f.Value.String() != "true"
	}
	return overrides
}

// FailedError reports that some of a command's operations failed. The
// failures have already been rendered item by item.
type FailedError struct {
	Failed int
	Total  int
	First  error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf(MsgErrOperationsFailed, e.Failed, e.Total) + ": " + e.First.Error()
}

func (e *FailedError) Unwrap() error {
	return e.First
}

// run applies op to every item, renders the result and reports failures.
// Items are independent: a failure does not stop the remaining ones.
func (c *cli) run(cmd *cobra.Command, items []types.OperationItem, op func(item *types.OperationItem) error) error {
	start := time.Now()
	result := &types.CommandResult{Command: cmd.Name()}

	var failed *FailedError
	for _, item := range items {
		if err := op(&item); err != nil {
			item.Status = types.StatusFailed
			item.Error = err.Error()
			item.ErrorCode = string(errors.GetErrorCode(err))
			log.Debug().Err(err).Str("path", item.Path).Str("command", cmd.Name()).Msg("Operation failed")
			if failed == nil {
				failed = &FailedError{Total: len(items), First: err}
			}
			failed.Failed++
		} else {
			item.Status = types.StatusDone
		}
		result.Items = append(result.Items, item)
	}
	result.Duration = time.Since(start)
	result.Elapsed = result.Duration.Round(time.Microsecond).String()

	renderer, err := ui.NewRenderer(c.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := renderer.RenderResult(result); err != nil {
		return errors.Wrap(err, errors.ErrInternal, MsgErrRender)
	}

	if failed != nil {
		return failed
	}
	return nil
}

func pathItems(operation string, args []string) []types.OperationItem {
	items := make([]types.OperationItem, len(args))
	for i, arg := range args {
		items[i] = types.OperationItem{Operation: operation, Path: arg}
	}
	return items
}

func (c *cli) newSanitizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sanitize NAME...",
		Short:   MsgSanitizeShort,
		Long:    MsgSanitizeLong,
		Example: MsgSanitizeExample,
		GroupID: "tree",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			replacement := c.cfg.Sanitize.Replacement
			return c.run(cmd, pathItems("sanitize", args), func(item *types.OperationItem) error {
				item.Output = tree.SanitizeName(item.Path, replacement)
				return nil
			})
		},
	}
	cmd.Flags().StringP("replacement", "r", tree.DefaultReplacement, MsgFlagReplacement)
	return cmd
}

func (c *cli) newMkdirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mkdir PATH...",
		Short:   MsgMkdirShort,
		Long:    MsgMkdirLong,
		GroupID: "tree",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := c.cfg.DirMode()
			if err != nil {
				return err
			}
			return c.run(cmd, pathItems("mkdir", args), func(item *types.OperationItem) error {
				return tree.EnsureDirectoryMode(c.fsys, item.Path, mode)
			})
		},
	}
	cmd.Flags().StringP("mode", "m", "0777", MsgFlagMode)
	return cmd
}

func (c *cli) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm PATH...",
		Short:   MsgRmShort,
		Long:    MsgRmLong,
		GroupID: "tree",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, pathItems("rm", args), func(item *types.OperationItem) error {
				return tree.RemoveTree(c.fsys, item.Path)
			})
		},
	}
}

func (c *cli) newPromoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "promote DIR...",
		Short:   MsgPromoteShort,
		Long:    MsgPromoteLong,
		Example: MsgPromoteExample,
		GroupID: "tree",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg.PromoteOptions()
			return c.run(cmd, pathItems("promote", args), func(item *types.OperationItem) error {
				return tree.PromoteContents(c.fsys, item.Path, opts...)
			})
		},
	}
	cmd.Flags().String("temp-prefix", tree.DefaultTempPrefix, MsgFlagTempPrefix)
	return cmd
}

func (c *cli) newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "copy SRC DST",
		Short:   MsgCopyShort,
		Long:    MsgCopyLong,
		Example: MsgCopyExample,
		GroupID: "tree",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.cfg.CopyOptions()
			if err != nil {
				return err
			}
			items := []types.OperationItem{{Operation: "copy", Path: args[0], Target: args[1]}}
			return c.run(cmd, items, func(item *types.OperationItem) error {
				return tree.CopyTree(c.fsys, item.Path, item.Target, tree.WithCopyOptions(opts))
			})
		},
	}
	cmd.Flags().String("symlinks", string(tree.SymlinkFollow), MsgFlagSymlinks)
	cmd.Flags().Bool("no-preserve-perms", false, MsgFlagNoPerms)
	cmd.Flags().Int("max-depth", tree.DefaultMaxDepth, MsgFlagMaxDepth)
	_ = cmd.RegisterFlagCompletionFunc("symlinks", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{
			string(tree.SymlinkFollow),
			string(tree.SymlinkPreserve),
			string(tree.SymlinkSkip),
		}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       MsgVersionShort,
		GroupID:     "misc",
		Annotations: map[string]string{annotationNoConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		Annotations:           map[string]string{annotationNoConfig: "true"},
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "man",
		Short:       MsgManShort,
		GroupID:     "misc",
		Hidden:      true,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
		},
	}
}

// ManHeader is the header used for the generated man page
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "DIRTREE",
		Section: "1",
		Source:  "dirtree " + version.Version,
		Manual:  "dirtree manual",
	}
}
