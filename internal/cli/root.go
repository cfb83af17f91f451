// internal/cli/root.go
package tradesift

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tradesift/tradesift/internal/appconfig"
	"github.com/tradesift/tradesift/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tradesift",
	Short: "tradesift — terminal-first compliance screening for trade-finance documents",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Pull a .env into the process environment so TRADESIFT_* overrides
		//    work the same from a file or the shell.
		_ = godotenv.Load()

		// 2) Load config (file or defaults).
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 3) If the user did NOT set a flag, copy the config value into the
		//    flag so both pflags and viper reflect the same, final value.
		for _, name := range []string{"debug", "jsonMode"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}

		// 4) Materialize the fully merged configuration into currentConfig
		//    (flags > env > config > defaults) so other packages get a stable
		//    snapshot. Environment values arrive as strings, hence the weakly
		//    typed decode.
		var cfg appconfig.Config
		weakly := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
		if err := viper.Unmarshal(&cfg, weakly); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath(), cfg.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("jsonMode", false, "enable JSON output mode")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("jsonMode", rootCmd.PersistentFlags().Lookup("jsonMode"))
}

// initConfig points viper at the config file and the TRADESIFT_* environment.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("json")
		viper.AddConfigPath("config")
		// Legacy root-level config.json still works.
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("TRADESIFT")
	viper.AutomaticEnv()
}

// ensureConfigLoaded reads the config file and registers every key so
// environment overrides reach viper.Unmarshal. A missing file is fine; an
// unreadable or unparsable one is not.
func ensureConfigLoaded() error {
	viper.SetDefault("debug", false)
	viper.SetDefault("jsonMode", false)
	viper.SetDefault("rulesDir", "")
	viper.SetDefault("rulesManifest", "")
	viper.SetDefault("docsDir", "")
	viper.SetDefault("chunkSize", 0)
	viper.SetDefault("topK", 0)
	viper.SetDefault("contextCharLimit", 0)
	viper.SetDefault("contextFallbackChunks", 0)
	viper.SetDefault("maxWorkers", 0)
	viper.SetDefault("cacheSize", 256)
	viper.SetDefault("logPath", "")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No file anywhere on the search path: defaults, env, and flags apply.
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// JSONModeEnabled returns true if JSON output mode is enabled.
func JSONModeEnabled() bool { return viper.GetBool("jsonMode") }
