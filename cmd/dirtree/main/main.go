package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dirtree/cmd/dirtree"
	"github.com/arthur-debert/dirtree/pkg/ui/terminal"
)

func main() {
	rootCmd := dirtree.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, terminal.FormatError(err))
		os.Exit(1)
	}
}
