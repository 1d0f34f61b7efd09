package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/dirtree/cmd/dirtree"
)

func main() {
	rootCmd := dirtree.NewRootCmd()

	if err := doc.GenMan(rootCmd, dirtree.ManHeader(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
