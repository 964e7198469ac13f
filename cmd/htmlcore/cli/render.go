package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tamarisk-labs/htmlcore"
)

var renderStrict bool

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Parse an HTML file and print its tree in the renderer format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		var opts []htmlcore.Option
		if renderStrict {
			opts = append(opts, htmlcore.WithStrictMode())
		}

		tree, errs, err := htmlcore.Parse(string(data), opts...)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tree.Render())
		if len(errs) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d recorded parse error(s)\n", len(errs))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&renderStrict, "strict", false, "fail on the first recorded parse error")
}
