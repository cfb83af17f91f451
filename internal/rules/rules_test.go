package rules

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tradesift/tradesift/internal/doctype"
)

const sampleManifest = `{
  "general_rules": ["general_isbp.txt", "ucp600.txt"],
  "document_specific_rules": {
    "BILL OF LADING": ["bol_rules.txt"],
    "COMMERCIAL INVOICE": ["invoice_rules.txt"]
  }
}`

func writeRuleFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	dir := writeRuleFiles(t, map[string]string{"rules_config.json": sampleManifest})
	m, err := LoadManifest(filepath.Join(dir, "rules_config.json"))
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}

	if !reflect.DeepEqual(m.GeneralRules, []string{"general_isbp.txt", "ucp600.txt"}) {
		t.Fatalf("general rules = %v", m.GeneralRules)
	}
	want := []string{"bol_rules.txt", "general_isbp.txt", "invoice_rules.txt", "ucp600.txt"}
	if got := m.Referenced(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Referenced() = %v, want %v", got, want)
	}
	if unknown := m.UnknownTypes(); len(unknown) != 0 {
		t.Fatalf("UnknownTypes() = %v, want none", unknown)
	}
}

func TestLoadManifestRejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated json", content: `{"general_rules": [`},
		{name: "missing required field", content: `{"general_rules": []}`},
		{name: "wrong field type", content: `{"general_rules": "all.txt", "document_specific_rules": {}}`},
		{name: "empty filename", content: `{"general_rules": [""], "document_specific_rules": {}}`},
		{name: "unexpected field", content: `{"general_rules": [], "document_specific_rules": {}, "extras": []}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := writeRuleFiles(t, map[string]string{"rules_config.json": tt.content})
			if _, err := LoadManifest(filepath.Join(dir, "rules_config.json")); err == nil {
				t.Fatal("expected error for malformed manifest")
			}
		})
	}
}

func TestManifestUnknownTypes(t *testing.T) {
	t.Parallel()

	m := Manifest{DocumentSpecificRules: map[string][]string{
		"BILL OF LADING": {"bol.txt"},
		"TELEX RELEASE":  {"telex.txt"},
	}}
	if got := m.UnknownTypes(); !reflect.DeepEqual(got, []string{"TELEX RELEASE"}) {
		t.Fatalf("UnknownTypes() = %v, want [TELEX RELEASE]", got)
	}
}

func TestLoadCorpus(t *testing.T) {
	t.Parallel()

	dir := writeRuleFiles(t, map[string]string{
		"general_isbp.txt":  "general provisions",
		"bol_rules.txt":     "transport document rules",
		"invoice_rules.txt": "invoice rules",
		"unrelated.txt":     "not referenced",
		"notes.md":          "wrong extension",
	})

	var m Manifest
	m.GeneralRules = []string{"general_isbp.txt", "ucp600.txt"}
	m.DocumentSpecificRules = map[string][]string{
		"BILL OF LADING":     {"bol_rules.txt"},
		"COMMERCIAL INVOICE": {"invoice_rules.txt"},
	}

	corpus, err := LoadCorpus(dir, m)
	if err != nil {
		t.Fatalf("LoadCorpus returned error: %v", err)
	}

	if corpus.Len() != 3 {
		t.Fatalf("loaded %d rule texts, want 3: %v", corpus.Len(), corpus.Files())
	}
	if _, ok := corpus.Text("unrelated.txt"); ok {
		t.Fatal("unreferenced file was loaded")
	}
	if got := corpus.Missing(); !reflect.DeepEqual(got, []string{"ucp600.txt"}) {
		t.Fatalf("Missing() = %v, want [ucp600.txt]", got)
	}
	if text, ok := corpus.Text("bol_rules.txt"); !ok || text != "transport document rules" {
		t.Fatalf("Text(bol_rules.txt) = %q, %v", text, ok)
	}
}

func TestCorpusSetsFor(t *testing.T) {
	t.Parallel()

	dir := writeRuleFiles(t, map[string]string{
		"general_isbp.txt": "general provisions",
		"bol_rules.txt":    "transport document rules",
	})

	var m Manifest
	m.GeneralRules = []string{"general_isbp.txt", "ucp600.txt"}
	m.DocumentSpecificRules = map[string][]string{"BILL OF LADING": {"bol_rules.txt"}}

	corpus, err := LoadCorpus(dir, m)
	if err != nil {
		t.Fatalf("LoadCorpus returned error: %v", err)
	}

	sets := corpus.SetsFor(doctype.BillOfLading)
	gotFiles := make([]string, len(sets))
	for i, set := range sets {
		gotFiles[i] = set.Filename
	}
	// General rules lead, type-specific rules follow; the unloadable
	// ucp600.txt is skipped.
	if want := []string{"general_isbp.txt", "bol_rules.txt"}; !reflect.DeepEqual(gotFiles, want) {
		t.Fatalf("SetsFor(BILL OF LADING) files = %v, want %v", gotFiles, want)
	}

	if sets := corpus.SetsFor(doctype.Unknown); len(sets) != 1 || sets[0].Filename != "general_isbp.txt" {
		t.Fatalf("SetsFor(Unknown) = %+v, want the general rules only", sets)
	}
}
