package tradesift

import (
	"encoding/json"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tradesift/tradesift/internal/appconfig"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after flags, env, and file merge",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		if DebugEnabled() {
			pp.Println(cfg)
		}

		if JSONModeEnabled() {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}

		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg, appconfig.Config{})
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
