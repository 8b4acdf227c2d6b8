package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/phoneinput/internal/policy"
	"github.com/ppiankov/phoneinput/internal/policydiff"
)

var diffFormat string

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "text", "Output format (text|json)")
}

var diffCmd = &cobra.Command{
	Use:   "diff <old.yaml> <new.yaml>",
	Short: "Compare the resolved policies of two widget files",
	Long:  "Resolves both widget files and shows which policy fields changed:\ninput limits, formatting flags, country detection, calling codes, popover flags.",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	oldSrc, err := policy.LoadSources(args[0])
	if err != nil {
		return fmt.Errorf("load old widget: %w", err)
	}

	newSrc, err := policy.LoadSources(args[1])
	if err != nil {
		return fmt.Errorf("load new widget: %w", err)
	}

	result := policydiff.Diff(policy.Resolve(oldSrc.Input()), policy.Resolve(newSrc.Input()))
	result.OldPath = args[0]
	result.NewPath = args[1]

	switch diffFormat {
	case "json":
		out, err := policydiff.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	default:
		fmt.Fprint(cmd.OutOrStdout(), policydiff.FormatText(result))
	}

	return nil
}
