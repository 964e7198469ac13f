// Package cli implements htmlcore's command-line surface with cobra.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "htmlcore",
	Short: "A minimal WHATWG HTML5 tokenizer and tree builder",
	Long: `htmlcore parses the in-scope subset of WHATWG HTML5 §13.2 into an
arena-addressed document tree, printing it in the depth-first renderer
format or checking it against html5lib-style tree-construction fixtures.`,
}

// Execute runs the root command, exiting the process with status 1 on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
