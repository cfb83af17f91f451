// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad tests the Load function to ensure it correctly handles various
// scenarios, including valid and invalid configurations. It verifies that a
// valid configuration file is loaded without error and patched with
// defaults, that invalid JSON is rejected, and that an explicit path which
// does not exist results in an error. This test uses temporary files to
// simulate different configuration scenarios and asserts that the function
// behaves as expected in each case.
func TestLoad(t *testing.T) {
	validConfig := `{
        "rulesDir": "compliance/rules",
        "chunkSize": 150,
        "topK": 5,
        "debug": true
    }`
	tmpfile, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	if _, err := tmpfile.Write([]byte(validConfig)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.ConfigPath != tmpfile.Name() {
		t.Fatalf("expected ConfigPath %q, got %q", tmpfile.Name(), cfg.ConfigPath)
	}
	if cfg.RulesDirPath() != "compliance/rules" {
		t.Fatalf("expected rules dir to be overridden, got %q", cfg.RulesDirPath())
	}
	if got := cfg.RulesManifestPath(); got != filepath.Join("compliance/rules", "rules_config.json") {
		t.Fatalf("expected manifest to follow rules dir, got %q", got)
	}
	if cfg.ChunkWindow() != 150 {
		t.Fatalf("expected chunk size 150, got %d", cfg.ChunkWindow())
	}
	if cfg.TopKChunks() != 5 {
		t.Fatalf("expected top K of 5, got %d", cfg.TopKChunks())
	}
	if !cfg.Debug {
		t.Fatal("expected debug to be enabled")
	}

	if cfg.ContextLimit() != 15000 {
		t.Fatalf("expected default context limit of 15000 chars, got %d", cfg.ContextLimit())
	}
	if cfg.ContextFallback() != 5 {
		t.Fatalf("expected default context fallback of 5 chunks, got %d", cfg.ContextFallback())
	}
	if cfg.CacheCapacity() != 256 {
		t.Fatalf("expected default cache size of 256 entries, got %d", cfg.CacheCapacity())
	}
	if cfg.LogFilePath() != "tradesift.log" {
		t.Fatalf("expected default log path, got %q", cfg.LogFilePath())
	}

	invalidJSON := `{ "rulesDir": `
	tmpfile2, err := os.CreateTemp("", "config.json")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile2.Name())
	if _, err := tmpfile2.Write([]byte(invalidJSON)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile2.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tmpfile2.Name()); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}

	if _, err := Load("nonexistent.json"); err == nil {
		t.Fatal("Load() with nonexistent explicit path should have failed")
	}
}

// TestCacheCapacity verifies the memo sizing rules: an omitted cacheSize
// falls back to the default, while an explicit zero or negative value
// disables the memo.
func TestCacheCapacity(t *testing.T) {
	var cfg Config
	if got := cfg.CacheCapacity(); got != 256 {
		t.Fatalf("omitted cacheSize: expected 256, got %d", got)
	}

	zero := 0
	cfg.CacheSize = &zero
	if got := cfg.CacheCapacity(); got != 0 {
		t.Fatalf("explicit zero: expected 0, got %d", got)
	}

	negative := -5
	cfg.CacheSize = &negative
	if got := cfg.CacheCapacity(); got != 0 {
		t.Fatalf("negative cacheSize: expected 0, got %d", got)
	}

	custom := 64
	cfg.CacheSize = &custom
	if got := cfg.CacheCapacity(); got != 64 {
		t.Fatalf("custom cacheSize: expected 64, got %d", got)
	}
}

// TestWorkers verifies the screening pool sizing: the pool is capped by
// maxWorkers but never exceeds the number of rule sets to score.
func TestWorkers(t *testing.T) {
	tests := []struct {
		name       string
		maxWorkers int
		sets       int
		want       int
	}{
		{"default cap", 0, 10, 4},
		{"fewer sets than cap", 0, 2, 2},
		{"raised cap", 8, 10, 8},
		{"no work", 4, 0, 0},
		{"lowered cap", 2, 3, 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{MaxWorkers: tt.maxWorkers}
			if got := cfg.Workers(tt.sets); got != tt.want {
				t.Fatalf("Workers(%d) with maxWorkers=%d: got %d, want %d",
					tt.sets, tt.maxWorkers, got, tt.want)
			}
		})
	}
}
