package dirtree

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Sanitize, create, remove, promote and copy directory trees"
	MsgSanitizeShort   = "Replace characters that are illegal in file names"
	MsgSanitizeLong    = "Print each NAME with every one of / \\ ? % * : | \" < > replaced by the replacement character."
	MsgMkdirShort      = "Create directories and any missing parents"
	MsgMkdirLong       = "Create each PATH with all missing parents. Existing directories are left alone; a file in the way is an error and is never removed."
	MsgRmShort         = "Remove directory trees"
	MsgPromoteShort    = "Move a folder's contents up into its parent"
	MsgCopyShort       = "Copy a directory tree"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	MsgSanitizeExample = `  dirtree sanitize 'report: v1/2'      # report_ v1_2
  dirtree sanitize -r - 'a|b' 'c*d'    # a-b, c-d`
	MsgCopyExample = `  dirtree copy photos backup/photos
  dirtree copy --symlinks preserve src dst
  dirtree copy --format json src dst`
	MsgPromoteExample = `  dirtree promote downloads/archive-1.0   # archive-1.0/* -> downloads/`

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Config file (default is $XDG_CONFIG_HOME/dirtree/config.toml)"
	MsgFlagFormat      = "Output format: auto, term, text, json or yaml"
	MsgFlagReplacement = "Replacement character"
	MsgFlagMode        = "Permission for created directories, octal"
	MsgFlagSymlinks    = "Symbolic link policy: follow, preserve or skip"
	MsgFlagNoPerms     = "Do not copy file permission bits"
	MsgFlagMaxDepth    = "Maximum directory depth to copy"
	MsgFlagTempPrefix  = "Prefix of the temporary folder name"

	// Version output
	MsgVersionFormat = "dirtree version %s\n  commit: %s\n  built:  %s\n"

	// Errors
	MsgErrOperationsFailed = "%d of %d operations failed"
	MsgErrRender           = "failed to render output"
	MsgErrNoCommand        = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/rm-long.txt
	msgRmLongRaw string
	MsgRmLong    = strings.TrimSpace(msgRmLongRaw)

	//go:embed msgs/promote-long.txt
	msgPromoteLongRaw string
	MsgPromoteLong    = strings.TrimSpace(msgPromoteLongRaw)

	//go:embed msgs/copy-long.txt
	msgCopyLongRaw string
	MsgCopyLong    = strings.TrimSpace(msgCopyLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
