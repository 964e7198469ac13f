package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tamarisk-labs/htmlcore/harness"
)

var conformVerbose bool

var conformCmd = &cobra.Command{
	Use:   "conform [dir]",
	Short: "Run html5lib-style tree-construction .dat files and report pass/fail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := filepath.Glob(filepath.Join(args[0], "*.dat"))
		if err != nil {
			return fmt.Errorf("globbing %s: %w", args[0], err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no .dat files found in %s", args[0])
		}

		out := cmd.OutOrStdout()
		var totalPassed, totalFailed int
		for _, f := range files {
			summary, err := harness.RunFile(f)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, summary.FormatSummary())
			totalPassed += summary.Passed
			totalFailed += summary.Failed

			if conformVerbose {
				for _, r := range summary.Results {
					if r.Passed {
						continue
					}
					if r.RunErr != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "  FAIL %q: %v\n", r.Case.Data, r.RunErr)
						continue
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "  FAIL %q: %s\n", r.Case.Data, r.FirstDiff)
				}
			}
		}

		fmt.Fprintf(out, "total: %d/%d\n", totalPassed, totalPassed+totalFailed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(conformCmd)
	conformCmd.Flags().BoolVarP(&conformVerbose, "verbose", "v", false, "print each failing case's diff")
}
