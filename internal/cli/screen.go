package tradesift

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tradesift/tradesift/internal/doctype"
	"github.com/tradesift/tradesift/internal/logging"
	"github.com/tradesift/tradesift/internal/screen"
	"github.com/tradesift/tradesift/internal/util"
)

const contextPreviewRunes = 300

var screenOutPath string

var screenCmd = &cobra.Command{
	Use:   "screen <file>",
	Short: "Run the full screening pipeline against a document",
	Long: `Screen detects the document's type, picks the general rules plus any
type-specific rules, retrieves the most relevant passages from each rule
set concurrently, and assembles a compliance context per set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read document %q: %w", path, err)
		}

		screener, err := screen.Open(cfg)
		if err != nil {
			return err
		}
		screener.Status = func(format string, a ...any) {
			msg := fmt.Sprintf(format, a...)
			log.Print(msg)
			if !JSONModeEnabled() {
				fmt.Println(msg)
			}
		}

		report, err := screener.Screen(cmd.Context(), filepath.Base(path), string(content))
		if err != nil {
			return fmt.Errorf("screen %q: %w", path, err)
		}
		logging.LogStage("screen", report.Filename, map[string]any{
			"type":      report.Detection.Type.String(),
			"sets":      len(report.Results),
			"missing":   len(report.Missing),
			"elapsedMs": report.ElapsedMS,
		})

		if screenOutPath != "" {
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			if err := util.WriteFile(screenOutPath, append(data, '\n')); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if !JSONModeEnabled() {
				fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", screenOutPath)
			}
		}

		if JSONModeEnabled() {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printReport(cmd, report)
		return nil
	},
}

func printReport(cmd *cobra.Command, report screen.Report) {
	out := cmd.OutOrStdout()

	label := green(report.Detection.Type.String())
	if report.Detection.Type == doctype.Unknown {
		label = yellow(report.Detection.Type.String())
	}
	fmt.Fprintf(out, "\n%s %s\n", bold("Document:"), report.Filename)
	fmt.Fprintf(out, "%s %s (score %d)\n", bold("Type:"), label, report.Detection.Score)

	for _, r := range report.Results {
		fmt.Fprintf(out, "\n%s\n", cyan(r.Rules))
		fmt.Fprintf(out, "  passages: %d ranked, %d in context\n", len(r.Passages), r.ChunksUsed)
		fmt.Fprintf(out, "  context:  %s\n", util.TruncateRunes(r.Context, contextPreviewRunes))
	}
	if len(report.Results) == 0 {
		fmt.Fprintf(out, "\n%s\n", yellow("no rule sets produced results"))
	}

	if len(report.Missing) > 0 {
		fmt.Fprintf(out, "\n%s %s\n", red("missing rule files:"), strings.Join(report.Missing, ", "))
	}
	fmt.Fprintf(out, "\nelapsed: %d ms\n", report.ElapsedMS)
}

func init() {
	screenCmd.Flags().StringVar(&screenOutPath, "out", "", "write the JSON report to this file")
	rootCmd.AddCommand(screenCmd)
}
