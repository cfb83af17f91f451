package rules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tradesift/tradesift/internal/doctype"
)

// ruleFileExt is the extension rule texts carry on disk. Upstream
// extraction turns the source PDFs into plain text before this package
// sees them.
const ruleFileExt = ".txt"

// RuleSet pairs one rule file's name with its text. Each set is screened
// against a document independently.
type RuleSet struct {
	Filename string `json:"filename"`
	Text     string `json:"-"`
}

// Corpus holds a manifest plus the rule texts found for it in one
// directory. Files the manifest references but the directory lacks are
// tracked rather than fatal, so a partial corpus still screens documents.
type Corpus struct {
	manifest Manifest
	texts    map[string]string
	missing  []string
}

// LoadCorpus scans dir for referenced rule text files and pairs them with
// the manifest.
func LoadCorpus(dir string, manifest Manifest) (*Corpus, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read rules directory: %w", err)
	}

	referenced := make(map[string]struct{})
	for _, name := range manifest.Referenced() {
		referenced[name] = struct{}{}
	}

	texts := make(map[string]string, len(referenced))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ruleFileExt) {
			continue
		}
		if _, ok := referenced[name]; !ok {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read rule file %s: %w", name, err)
		}
		texts[name] = string(raw)
	}

	var missing []string
	for name := range referenced {
		if _, ok := texts[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	return &Corpus{manifest: manifest, texts: texts, missing: missing}, nil
}

// Manifest returns the manifest the corpus was loaded with.
func (c *Corpus) Manifest() Manifest { return c.manifest }

// Len reports the number of loaded rule texts.
func (c *Corpus) Len() int { return len(c.texts) }

// Files lists the loaded rule filenames, sorted.
func (c *Corpus) Files() []string {
	files := make([]string, 0, len(c.texts))
	for name := range c.texts {
		files = append(files, name)
	}
	sort.Strings(files)
	return files
}

// Missing lists referenced filenames absent from the rules directory,
// sorted.
func (c *Corpus) Missing() []string { return c.missing }

// Text returns one loaded rule text by filename.
func (c *Corpus) Text(name string) (string, bool) {
	text, ok := c.texts[name]
	return text, ok
}

// SetsFor assembles the validation sets for a detected document type:
// general rules first, then the type's specific rules, in manifest order,
// skipping files that failed to load.
func (c *Corpus) SetsFor(t doctype.Type) []RuleSet {
	var sets []RuleSet
	for _, name := range c.manifest.FilesFor(t) {
		text, ok := c.texts[name]
		if !ok {
			continue
		}
		sets = append(sets, RuleSet{Filename: name, Text: text})
	}
	return sets
}
