// cli/cli_update_view_test.go
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tradesift/tradesift/internal/screen"
)

const testDocText = "Bill of Lading\n" +
	"Shipper: Starlinger Plastics Machinery\n" +
	"Consignee: to the order of United Bank Ltd\n" +
	"Vessel: WAN HAI 622\n" +
	"Port of Discharge: Karachi Seaport\n"

// newTestModel builds a model over a real corpus and documents directory so
// the state machine can run a genuine screening end to end.
func newTestModel(t *testing.T) (*model, string) {
	t.Helper()
	root := t.TempDir()

	rulesDir := filepath.Join(root, "rules")
	if err := os.MkdirAll(rulesDir, 0o755); err != nil {
		t.Fatalf("mkdir rules: %v", err)
	}
	manifest := `{
  "general_rules": ["general.txt"],
  "document_specific_rules": {
    "BILL OF LADING": ["bol_rules.txt"]
  }
}`
	files := map[string]string{
		"rules_config.json": manifest,
		"general.txt":       "Documents must be presented within the validity of the credit.",
		"bol_rules.txt":     "The bill of lading must name the vessel and the port of discharge.",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(rulesDir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	docsDir := filepath.Join(root, "docs")
	if err := os.MkdirAll(docsDir, 0o755); err != nil {
		t.Fatalf("mkdir docs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(docsDir, "lading.txt"), []byte(testDocText), 0o644); err != nil {
		t.Fatalf("write doc: %v", err)
	}

	cfg := &Config{RulesDir: rulesDir, DocsDir: docsDir, TopK: 2}
	screener, err := screen.Open(cfg)
	if err != nil {
		t.Fatalf("open screener: %v", err)
	}
	docs, err := listDocuments(docsDir)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	return initialModel(context.Background(), cfg, screener, docs), docsDir
}

// TestStateTransitions_And_View covers the picker, screening, and report
// states. It runs a real screening against a temporary corpus and verifies
// the report view renders the rule sets that were consulted.
func TestStateTransitions_And_View(t *testing.T) {
	m, docsDir := newTestModel(t)

	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = m2.(*model)
	if !m.isLoading || m.state != viewScreening {
		t.Fatalf("expected screening state; got loading=%v state=%v", m.isLoading, m.state)
	}
	if m.selectedDoc != "lading.txt" {
		t.Fatalf("expected lading.txt selected; got %q", m.selectedDoc)
	}

	msg := screenDocCmd(m.ctx, m.screener, docsDir, m.selectedDoc)()
	done, ok := msg.(screenDoneMsg)
	if !ok {
		t.Fatalf("expected screenDoneMsg; got %T (%v)", msg, msg)
	}
	m2, _ = m.Update(done)
	m = m2.(*model)
	if m.state != viewReport || m.isLoading {
		t.Fatalf("expected report state; got state=%v loading=%v", m.state, m.isLoading)
	}
	if got := m.report.Detection.Type.String(); got != "BILL OF LADING" {
		t.Fatalf("expected BILL OF LADING detection; got %q", got)
	}

	out := m.View()
	if !strings.Contains(out, "Document: lading.txt") {
		t.Fatalf("expected document badge in report view; got: %s", out)
	}
	if !strings.Contains(out, "general.txt") || !strings.Contains(out, "bol_rules.txt") {
		t.Fatalf("expected both rule sets in report view; got: %s", out)
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = m2.(*model)
	if m.state != viewDocPicker {
		t.Fatalf("expected picker after esc; got %v", m.state)
	}
}

// TestScreenErrorReturnsToPicker verifies a failed screening surfaces the
// error and drops back to the document picker.
func TestScreenErrorReturnsToPicker(t *testing.T) {
	m, _ := newTestModel(t)

	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	m2, _ := m.Update(screenErr{error: fmt.Errorf("boom")})
	m = m2.(*model)
	if m.state != viewDocPicker || m.err == nil {
		t.Fatalf("expected picker with error; got state=%v err=%v", m.state, m.err)
	}

	out := m.View()
	if !strings.Contains(out, "Error: boom") {
		t.Fatalf("expected error in view; got: %s", out)
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = m2.(*model)
	if m.err != nil {
		t.Fatalf("expected error cleared after esc; got %v", m.err)
	}
}

// TestMissingDocumentProducesScreenErr verifies the screening command reports
// unreadable documents instead of panicking.
func TestMissingDocumentProducesScreenErr(t *testing.T) {
	m, docsDir := newTestModel(t)

	msg := screenDocCmd(m.ctx, m.screener, docsDir, "absent.txt")()
	if _, ok := msg.(screenErr); !ok {
		t.Fatalf("expected screenErr; got %T", msg)
	}
}
