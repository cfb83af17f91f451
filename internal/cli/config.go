package tradesift

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Work with the application configuration",
}

func init() {
	rootCmd.AddCommand(configCmd)
}
