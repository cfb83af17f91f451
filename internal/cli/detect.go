package tradesift

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/tradesift/tradesift/internal/doctype"
	"github.com/tradesift/tradesift/internal/logging"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Classify a document into one of the known trade-finance types",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read document %q: %w", path, err)
		}

		det := doctype.Detect(string(content))
		logging.LogStage("detect", filepath.Base(path), det)

		if DebugEnabled() {
			pp.Println(det)
		}

		if JSONModeEnabled() {
			out := struct {
				Filename string `json:"filename"`
				doctype.Detection
			}{Filename: filepath.Base(path), Detection: det}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		label := green(det.Type.String())
		if det.Type == doctype.Unknown {
			label = yellow(det.Type.String())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", bold("Document:"), filepath.Base(path))
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (score %d)\n", bold("Type:"), label, det.Score)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", bold("Scores:"))
		for _, t := range doctype.Categories {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %d\n", t.String(), det.Scores[t])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
