package tradesift

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tradesift/tradesift/internal/logging"
	"github.com/tradesift/tradesift/internal/retrieval"
	"github.com/tradesift/tradesift/internal/rules"
	"github.com/tradesift/tradesift/internal/util"
)

const matchPreviewRunes = 240

var matchRuleFiles []string

var matchCmd = &cobra.Command{
	Use:   "match <file>",
	Short: "Rank rule passages by relevance to a document",
	Long: `Match chunks every rule file, scores each chunk against the document
with TF-IDF cosine similarity, and prints the highest-scoring passages.
All rule files compete in one ranking; use --rules to restrict the field.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		path := args[0]
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read document %q: %w", path, err)
		}

		manifest, err := rules.LoadManifest(cfg.RulesManifestPath())
		if err != nil {
			return fmt.Errorf("load rules manifest: %w", err)
		}
		corpus, err := rules.LoadCorpus(cfg.RulesDirPath(), manifest)
		if err != nil {
			return fmt.Errorf("load rules corpus: %w", err)
		}

		names := corpus.Files()
		if len(matchRuleFiles) > 0 {
			names = matchRuleFiles
		}
		texts := make([]string, 0, len(names))
		files := make([]string, 0, len(names))
		for _, name := range names {
			text, ok := corpus.Text(name)
			if !ok {
				return fmt.Errorf("rule file %q is not in the loaded corpus", name)
			}
			texts = append(texts, text)
			files = append(files, name)
		}

		status := func(format string, a ...any) {
			msg := fmt.Sprintf(format, a...)
			log.Print(msg)
			if !JSONModeEnabled() {
				fmt.Println(msg)
			}
		}

		opts := retrieval.Options{
			ChunkSize: cfg.ChunkWindow(),
			TopK:      cfg.TopKChunks(),
			Status:    status,
		}
		ranked, err := retrieval.Retrieve(string(content), texts, files, opts)
		if err != nil {
			return fmt.Errorf("match %q: %w", path, err)
		}
		logging.LogStage("match", filepath.Base(path), map[string]any{
			"ruleFiles": len(files),
			"chunkSize": opts.ChunkSize,
			"topK":      opts.TopK,
			"returned":  len(ranked),
		})

		if JSONModeEnabled() {
			type passage struct {
				Rank  int     `json:"rank"`
				File  string  `json:"file"`
				Score float64 `json:"score"`
				Text  string  `json:"text"`
			}
			out := make([]passage, len(ranked))
			for i, rc := range ranked {
				out[i] = passage{Rank: i + 1, File: rc.Chunk.File, Score: rc.Score, Text: rc.Chunk.Text}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		if len(ranked) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), yellow("no passages matched"))
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d passages from %d rule files\n\n",
			bold("Top"), len(ranked), len(files))
		for i, rc := range ranked {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s  (score %.4f)\n",
				i+1, cyan(rc.Chunk.File), rc.Score)
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", util.TruncateRunes(rc.Chunk.Text, matchPreviewRunes))
		}
		return nil
	},
}

func init() {
	matchCmd.Flags().StringSliceVar(&matchRuleFiles, "rules", nil, "limit matching to these rule files")
	matchCmd.Flags().Int("top-k", 0, "passages to return (0 uses config)")
	matchCmd.Flags().Int("chunk-size", 0, "token window per rule chunk (0 uses config)")
	_ = viper.BindPFlag("topK", matchCmd.Flags().Lookup("top-k"))
	_ = viper.BindPFlag("chunkSize", matchCmd.Flags().Lookup("chunk-size"))
	rootCmd.AddCommand(matchCmd)
}
