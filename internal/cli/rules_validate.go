package tradesift

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradesift/tradesift/internal/rules"
)

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the manifest schema, referenced files, and type keys",
	Args:  cobra.NoArgs,
	// A failed validation is a result, not a usage mistake.
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "validating %s\n\n", cfg.RulesManifestPath())

		manifest, err := rules.LoadManifest(cfg.RulesManifestPath())
		if err != nil {
			fmt.Fprintf(out, "  %s %s\n", red("manifest:"), err)
			return fmt.Errorf("rules validation failed")
		}
		fmt.Fprintf(out, "  %s schema ok, %d general / %d document-specific entries\n",
			green("manifest:"), len(manifest.GeneralRules), len(manifest.DocumentSpecificRules))

		corpus, err := rules.LoadCorpus(cfg.RulesDirPath(), manifest)
		if err != nil {
			fmt.Fprintf(out, "  %s %s\n", red("rules dir:"), err)
			return fmt.Errorf("rules validation failed")
		}

		problems := 0
		if missing := corpus.Missing(); len(missing) > 0 {
			problems += len(missing)
			fmt.Fprintf(out, "  %s %d referenced file(s) not found in %s\n",
				red("files:"), len(missing), cfg.RulesDirPath())
			for _, name := range missing {
				fmt.Fprintf(out, "      %s\n", name)
			}
		} else {
			fmt.Fprintf(out, "  %s all %d referenced file(s) present\n", green("files:"), corpus.Len())
		}

		if unknown := manifest.UnknownTypes(); len(unknown) > 0 {
			problems += len(unknown)
			fmt.Fprintf(out, "  %s %d unrecognized type key(s)\n", yellow("types:"), len(unknown))
			for _, t := range unknown {
				fmt.Fprintf(out, "      %s\n", t)
			}
		} else {
			fmt.Fprintf(out, "  %s all type keys recognized\n", green("types:"))
		}

		if problems > 0 {
			return fmt.Errorf("rules validation failed: %d problem(s)", problems)
		}
		fmt.Fprintf(out, "\n%s\n", green("rules corpus is valid"))
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesValidateCmd)
}
