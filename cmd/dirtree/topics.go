package dirtree

import (
	"embed"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dirtree/pkg/cobrax/topics"
)

//go:embed topics/*.md
var topicFiles embed.FS

// helpTopics returns the embedded topics directory
func helpTopics() fs.FS {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		panic(err)
	}
	return sub
}

// initTopics installs topic help. Markdown is rendered with glamour only
// when stdout is a terminal.
func initTopics(rootCmd *cobra.Command) error {
	opts := topics.Options{Extensions: []string{".md"}}
	if stdoutIsTerminal() {
		opts.Renderer = topics.NewGlamourRenderer()
	}
	_, err := topics.InitializeWithOptions(rootCmd, helpTopics(), opts)
	return err
}
