package tradesift

import "github.com/spf13/cobra"

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate the rules corpus",
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
