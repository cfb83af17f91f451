// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// defaultRulesDir is the directory scanned for rule text files.
	defaultRulesDir = "rules"
	// defaultManifestName is the manifest filename looked up inside the rules directory.
	defaultManifestName = "rules_config.json"
	// defaultDocsDir is the directory the TUI offers documents from.
	defaultDocsDir = "docs"
	// defaultChunkSize is the retrieval chunk window in tokens.
	defaultChunkSize = 200
	// defaultTopK is how many ranked chunks each retrieval keeps.
	defaultTopK = 10
	// defaultContextLimit is the character budget for an assembled rule context.
	defaultContextLimit = 15000
	// defaultContextFallback is how many chunks survive an over-budget context.
	defaultContextFallback = 5
	// defaultMaxWorkers caps the screening worker pool when the config omits the value.
	defaultMaxWorkers = 4
	// defaultCacheSize is the retrieval memo capacity when the config omits the value.
	defaultCacheSize = 256
	// defaultLogPath is the debug log destination.
	defaultLogPath = "tradesift.log"
)

// Config represents the top-level application configuration. Every field
// has a working default, so a missing file or an empty object is a valid
// configuration.
type Config struct {
	RulesDir              string `json:"rulesDir,omitempty"`
	RulesManifest         string `json:"rulesManifest,omitempty"`
	DocsDir               string `json:"docsDir,omitempty"`
	ChunkSize             int    `json:"chunkSize,omitempty"`
	TopK                  int    `json:"topK,omitempty"`
	ContextCharLimit      int    `json:"contextCharLimit,omitempty"`
	ContextFallbackChunks int    `json:"contextFallbackChunks,omitempty"`
	MaxWorkers            int    `json:"maxWorkers,omitempty"`
	CacheSize             *int   `json:"cacheSize,omitempty"`
	Debug                 bool   `json:"debug"`
	JSONMode              bool   `json:"jsonMode"`
	LogPath               string `json:"logPath,omitempty"`

	// ConfigPath records where the configuration was loaded from. Empty when
	// running on built-in defaults.
	ConfigPath string `json:"-"`
}

// RulesDirPath returns the directory scanned for rule text files.
func (c *Config) RulesDirPath() string {
	if strings.TrimSpace(c.RulesDir) == "" {
		return defaultRulesDir
	}
	return c.RulesDir
}

// RulesManifestPath returns the location of the rules manifest. When unset
// it resolves to rules_config.json inside the rules directory, so pointing
// rulesDir elsewhere carries the manifest along with it.
func (c *Config) RulesManifestPath() string {
	if strings.TrimSpace(c.RulesManifest) == "" {
		return filepath.Join(c.RulesDirPath(), defaultManifestName)
	}
	return c.RulesManifest
}

// DocsDirPath returns the directory the TUI offers documents from.
func (c *Config) DocsDirPath() string {
	if strings.TrimSpace(c.DocsDir) == "" {
		return defaultDocsDir
	}
	return c.DocsDir
}

// ChunkWindow returns the retrieval chunk size in tokens.
func (c *Config) ChunkWindow() int {
	if c.ChunkSize <= 0 {
		return defaultChunkSize
	}
	return c.ChunkSize
}

// TopKChunks returns how many ranked chunks each retrieval keeps.
func (c *Config) TopKChunks() int {
	if c.TopK <= 0 {
		return defaultTopK
	}
	return c.TopK
}

// ContextLimit returns the character budget for an assembled rule context.
func (c *Config) ContextLimit() int {
	if c.ContextCharLimit <= 0 {
		return defaultContextLimit
	}
	return c.ContextCharLimit
}

// ContextFallback returns how many chunks survive when an assembled context
// overruns the character budget.
func (c *Config) ContextFallback() int {
	if c.ContextFallbackChunks <= 0 {
		return defaultContextFallback
	}
	return c.ContextFallbackChunks
}

// Workers returns the screening pool size for the given number of rule
// sets. The pool never exceeds maxWorkers and never exceeds the work
// available.
func (c *Config) Workers(sets int) int {
	w := c.MaxWorkers
	if w <= 0 {
		w = defaultMaxWorkers
	}
	if sets < w {
		return sets
	}
	return w
}

// CacheCapacity returns the retrieval memo size in entries. An explicit
// zero or negative cacheSize disables the memo.
func (c *Config) CacheCapacity() int {
	if c.CacheSize == nil {
		return defaultCacheSize
	}
	if *c.CacheSize < 0 {
		return 0
	}
	return *c.CacheSize
}

// LogFilePath returns the debug log destination.
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.LogPath) == "" {
		return defaultLogPath
	}
	return c.LogPath
}

// Load reads configuration from the given path. An empty path means "use
// the default": DefaultConfigPath is tried first, then the legacy
// root-level config.json, and built-in defaults apply when neither exists.
// An explicit path that cannot be read is always an error.
func Load(path string) (Config, error) {
	if path != "" {
		cfg, err := loadFromPath(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("no configuration file found at %q", path)
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
		}
		cfg.ConfigPath = path
		return cfg, nil
	}

	cfg, err := loadFromPath(DefaultConfigPath)
	if err == nil {
		cfg.ConfigPath = DefaultConfigPath
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read config file %q: %w", DefaultConfigPath, err)
	}

	cfg, err = loadFromPath(legacyConfigPath)
	if err == nil {
		cfg.ConfigPath = legacyConfigPath
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, err)
	}

	return Config{}, nil
}

// loadFromPath reads and decodes a single configuration file.
func loadFromPath(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	var cfg Config
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config file %q: %w", path, err)
	}
	return cfg, nil
}
