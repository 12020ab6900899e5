package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/csvpeek-cli/internal/guide"
)

var guideCmd = &cobra.Command{
	Use:       "guide [topic]",
	Short:     "Detailed help: " + strings.Join(guide.Topics, ", "),
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: guide.Topics,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprint(out, guide.Index())
			return nil
		}
		text, ok := guide.Lookup(args[0])
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Unknown topic: %s\n\n", args[0])
			fmt.Fprint(out, guide.Index())
			return nil
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
