package tradesift

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tradesift/tradesift/internal/rules"
)

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rule files the manifest references and their load state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		manifest, err := rules.LoadManifest(cfg.RulesManifestPath())
		if err != nil {
			return fmt.Errorf("load rules manifest: %w", err)
		}
		corpus, err := rules.LoadCorpus(cfg.RulesDirPath(), manifest)
		if err != nil {
			return fmt.Errorf("load rules corpus: %w", err)
		}

		if JSONModeEnabled() {
			out := struct {
				Manifest string              `json:"manifest"`
				RulesDir string              `json:"rulesDir"`
				General  []string            `json:"generalRules"`
				ByType   map[string][]string `json:"documentSpecificRules"`
				Loaded   []string            `json:"loaded"`
				Missing  []string            `json:"missing,omitempty"`
			}{
				Manifest: cfg.RulesManifestPath(),
				RulesDir: cfg.RulesDirPath(),
				General:  manifest.GeneralRules,
				ByType:   manifest.DocumentSpecificRules,
				Loaded:   corpus.Files(),
				Missing:  corpus.Missing(),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  %s\n", bold("Manifest:"), cfg.RulesManifestPath())
		fmt.Fprintf(out, "%s %s\n", bold("Rules dir:"), cfg.RulesDirPath())
		fmt.Fprintf(out, "%s    %d rule files\n", bold("Loaded:"), corpus.Len())

		fmt.Fprintf(out, "\n%s\n", bold("General rules:"))
		for _, name := range manifest.GeneralRules {
			fmt.Fprintf(out, "  %s\n", formatRuleEntry(corpus, name))
		}

		types := make([]string, 0, len(manifest.DocumentSpecificRules))
		for t := range manifest.DocumentSpecificRules {
			types = append(types, t)
		}
		sort.Strings(types)
		fmt.Fprintf(out, "\n%s\n", bold("Document-specific rules:"))
		for _, t := range types {
			fmt.Fprintf(out, "  %s\n", cyan(t))
			for _, name := range manifest.DocumentSpecificRules[t] {
				fmt.Fprintf(out, "    %s\n", formatRuleEntry(corpus, name))
			}
		}

		if unknown := manifest.UnknownTypes(); len(unknown) > 0 {
			fmt.Fprintf(out, "\n%s\n", yellow("unrecognized type keys:"))
			for _, t := range unknown {
				fmt.Fprintf(out, "  %s\n", t)
			}
		}
		return nil
	},
}

// formatRuleEntry renders one manifest entry with its on-disk state.
func formatRuleEntry(corpus *rules.Corpus, name string) string {
	if text, ok := corpus.Text(name); ok {
		return fmt.Sprintf("%-28s %d bytes", name, len(text))
	}
	return fmt.Sprintf("%-28s %s", name, red("missing"))
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
}
