package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = defaultMaxWorkers
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:        %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Rules Dir:        %s\n", cfg.RulesDirPath())
	fmt.Fprintf(out, "  Rules Manifest:   %s\n", cfg.RulesManifestPath())
	fmt.Fprintf(out, "  Docs Dir:         %s\n", cfg.DocsDirPath())
	fmt.Fprintf(out, "  Chunk Size:       %d tokens\n", cfg.ChunkWindow())
	fmt.Fprintf(out, "  Top K:            %d chunks\n", cfg.TopKChunks())
	fmt.Fprintf(out, "  Context Limit:    %d chars\n", cfg.ContextLimit())
	fmt.Fprintf(out, "  Context Fallback: %d chunks\n", cfg.ContextFallback())
	fmt.Fprintf(out, "  Max Workers:      %d\n", workers)
	if size := cfg.CacheCapacity(); size > 0 {
		fmt.Fprintf(out, "  Cache Size:       %d entries\n", size)
	} else {
		fmt.Fprintln(out, "  Cache Size:       disabled")
	}
	fmt.Fprintf(out, "  Log Path:         %s\n", cfg.LogFilePath())
}
