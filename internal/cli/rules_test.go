package tradesift

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeRulesCorpus lays out a manifest plus its rule files in a temp dir.
func writeRulesCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	manifest := `{
  "general_rules": ["general.txt"],
  "document_specific_rules": {
    "BILL OF LADING": ["bol_rules.txt"]
  }
}`
	files := map[string]string{
		"rules_config.json": manifest,
		"general.txt":       "Documents must be presented within the validity period of the credit. Data must not conflict between documents.",
		"bol_rules.txt":     "The bill of lading must name the vessel and the port of discharge. It must indicate the shipper and consignee.",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestRulesListCommand(t *testing.T) {
	rulesDir := writeRulesCorpus(t)
	configPath := minimalConfig(t, fmt.Sprintf(`"rulesDir": %q`, rulesDir))

	out, err := execRoot(t, "--config", configPath, "rules", "list")
	if err != nil {
		t.Fatalf("rules list: %v", err)
	}
	if !strings.Contains(out, "general.txt") || !strings.Contains(out, "bol_rules.txt") {
		t.Fatalf("expected rule files in output, got %s", out)
	}
	if !strings.Contains(out, "BILL OF LADING") {
		t.Fatalf("expected type heading in output, got %s", out)
	}
	if !strings.Contains(out, "bytes") {
		t.Fatalf("expected file sizes in output, got %s", out)
	}
}

func TestRulesValidateCommandValidCorpus(t *testing.T) {
	rulesDir := writeRulesCorpus(t)
	configPath := minimalConfig(t, fmt.Sprintf(`"rulesDir": %q`, rulesDir))

	out, err := execRoot(t, "--config", configPath, "rules", "validate")
	if err != nil {
		t.Fatalf("rules validate: %v (%s)", err, out)
	}
	if !strings.Contains(out, "rules corpus is valid") {
		t.Fatalf("expected success message, got %s", out)
	}
}

func TestRulesValidateCommandReportsMissing(t *testing.T) {
	rulesDir := writeRulesCorpus(t)
	if err := os.Remove(filepath.Join(rulesDir, "bol_rules.txt")); err != nil {
		t.Fatalf("remove rule file: %v", err)
	}
	configPath := minimalConfig(t, fmt.Sprintf(`"rulesDir": %q`, rulesDir))

	out, err := execRoot(t, "--config", configPath, "rules", "validate")
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(out, "referenced file(s) not found") || !strings.Contains(out, "bol_rules.txt") {
		t.Fatalf("expected missing file report, got %s", out)
	}
}

func TestRulesValidateCommandUnknownTypeKey(t *testing.T) {
	dir := t.TempDir()
	manifest := `{
  "general_rules": ["general.txt"],
  "document_specific_rules": {
    "PROFORMA INVOICE": ["general.txt"]
  }
}`
	for name, content := range map[string]string{
		"rules_config.json": manifest,
		"general.txt":       "Documents must be presented within the validity period of the credit.",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	configPath := minimalConfig(t, fmt.Sprintf(`"rulesDir": %q`, dir))

	out, err := execRoot(t, "--config", configPath, "rules", "validate")
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(out, "unrecognized type key(s)") || !strings.Contains(out, "PROFORMA INVOICE") {
		t.Fatalf("expected unknown type report, got %s", out)
	}
}
