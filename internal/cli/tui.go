package tradesift

import (
	"github.com/spf13/cobra"

	"github.com/tradesift/tradesift/cli"
)

// startTUI is swappable so tests can exercise the command without a terminal.
var startTUI = cli.StartTUI

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse documents and run screenings interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startTUI(GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
