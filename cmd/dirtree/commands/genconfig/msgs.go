package genconfig

// Message constants
const (
	MsgShort   = "Print or write the configuration file"
	MsgLong    = "Output the effective configuration as TOML.\n\nWith -w, write it to the user config file instead, creating its directory.\nWith --check FILE, validate an existing configuration file."
	MsgExample = `  dirtree gen-config                       # Output to stdout
  dirtree gen-config -w                    # Write to $XDG_CONFIG_HOME/dirtree/config.toml
  dirtree gen-config --check .dirtree.toml # Validate a file`

	MsgFlagWrite = "Write config to the user config file instead of stdout"
	MsgFlagForce = "Overwrite an existing config file"
	MsgFlagCheck = "Validate FILE instead of generating one"

	MsgWritten   = "Wrote configuration to %s"
	MsgCheckOK   = "%s is valid"
	MsgErrExists = "config file %s already exists, use --force to overwrite"
)
