// Package rules loads the compliance rule corpus: a JSON manifest naming
// the rule files, plus the extracted text of each file. The manifest splits
// rules into a general set applied to every document and per-type sets
// keyed by document-type label.
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tradesift/tradesift/internal/doctype"
)

// Manifest is the parsed rules manifest.
type Manifest struct {
	GeneralRules          []string            `json:"general_rules"`
	DocumentSpecificRules map[string][]string `json:"document_specific_rules"`
}

// manifestSchema is enforced before unmarshaling so malformed manifests
// fail with field-level messages instead of zero values.
var manifestSchema = map[string]any{
	"type":     "object",
	"required": []any{"general_rules", "document_specific_rules"},
	"properties": map[string]any{
		"general_rules": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string", "minLength": 1},
		},
		"document_specific_rules": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
		},
	},
	"additionalProperties": false,
}

// LoadManifest reads and schema-validates a rules manifest.
func LoadManifest(path string) (Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read rules manifest: %w", err)
	}
	if err := validateManifestBytes(raw); err != nil {
		return Manifest{}, fmt.Errorf("rules manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse rules manifest %s: %w", path, err)
	}
	return m, nil
}

func validateManifestBytes(raw []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(manifestSchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("failed validation: %s", strings.Join(details, "; "))
}

// Referenced returns every filename the manifest names, deduplicated and
// sorted.
func (m Manifest) Referenced() []string {
	seen := make(map[string]struct{})
	for _, name := range m.GeneralRules {
		seen[name] = struct{}{}
	}
	for _, names := range m.DocumentSpecificRules {
		for _, name := range names {
			seen[name] = struct{}{}
		}
	}

	referenced := make([]string, 0, len(seen))
	for name := range seen {
		referenced = append(referenced, name)
	}
	sort.Strings(referenced)
	return referenced
}

// FilesFor lists the rule files applying to one document type: the general
// rules first, then the type's specific rules, each in manifest order.
func (m Manifest) FilesFor(t doctype.Type) []string {
	files := make([]string, 0, len(m.GeneralRules))
	files = append(files, m.GeneralRules...)
	files = append(files, m.DocumentSpecificRules[t.String()]...)
	return files
}

// UnknownTypes returns the document_specific_rules keys that match no known
// document-type label, sorted. Such keys never take effect; surfacing them
// catches manifest typos.
func (m Manifest) UnknownTypes() []string {
	var unknown []string
	for label := range m.DocumentSpecificRules {
		if t, err := doctype.ParseType(label); err != nil || t == doctype.Unknown {
			unknown = append(unknown, label)
		}
	}
	sort.Strings(unknown)
	return unknown
}
