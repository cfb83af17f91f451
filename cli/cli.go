// cli/cli.go
// Package cli provides the interactive terminal interface for tradesift.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tradesift/tradesift/internal/appconfig"
	"github.com/tradesift/tradesift/internal/logging"
	"github.com/tradesift/tradesift/internal/screen"
	"github.com/tradesift/tradesift/internal/util"
)

// Config represents the shared application configuration for the interface.
type Config = appconfig.Config

// viewState represents the current view or screen of the application.
type viewState int

const (
	// viewDocPicker is the state where the user selects a document.
	viewDocPicker viewState = iota
	// viewScreening is the state while a screening run is in flight.
	viewScreening
	// viewReport is the state where the finished report is shown.
	viewReport
)

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx              context.Context
	config           *Config
	screener         *screen.Screener
	state            viewState
	isLoading        bool
	err              error
	docList          list.Model
	viewport         viewport.Model
	spinner          spinner.Model
	report           screen.Report
	selectedDoc      string
	width, height    int
	requestStartTime time.Time
}

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, cfg *Config, screener *screen.Screener, docs []list.Item) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	docList := list.New(docs, list.NewDefaultDelegate(), 0, 0)
	docList.Title = "Select a Document"

	vp := viewport.New(100, 5)

	return &model{
		ctx:      ctx,
		config:   cfg,
		screener: screener,
		state:    viewDocPicker,
		spinner:  s,
		docList:  docList,
		viewport: vp,
	}
}

// item represents a selectable document in the picker list.
type item struct {
	title string
	desc  string
}

// Title returns the title of the list item.
func (i item) Title() string { return i.title }

// Description returns the description of the list item.
func (i item) Description() string { return i.desc }

// FilterValue returns the title of the item, used for filtering.
func (i item) FilterValue() string { return i.title }

// screenDoneMsg is a message sent when a screening run has finished.
type screenDoneMsg struct{ report screen.Report }

// screenErr is a message sent when a screening run fails.
type screenErr struct{ error }

// tickMsg is a message sent at regular intervals, used for the elapsed timer.
type tickMsg time.Time

// screenDocCmd creates a Bubble Tea command that reads a document from the
// documents directory and runs the full screening pipeline against it.
func screenDocCmd(ctx context.Context, screener *screen.Screener, dir, name string) tea.Cmd {
	return func() tea.Msg {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return screenErr{error: err}
		}
		report, err := screener.Screen(ctx, name, string(content))
		if err != nil {
			return screenErr{error: err}
		}
		return screenDoneMsg{report: report}
	}
}

// tickCmd creates a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the Bubble Tea model and returns a command to start the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.state == viewReport || m.err != nil {
				m.state = viewDocPicker
				m.err = nil
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.docList.SetSize(msg.Width-2, msg.Height-4)
		headerHeight := 2
		footerHeight := 2
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		if m.state == viewReport {
			m.viewport.SetContent(renderReport(m.report, reportWidth(m.viewport.Width)))
		}

	case screenDoneMsg:
		m.isLoading = false
		m.report = msg.report
		m.viewport.SetContent(renderReport(m.report, reportWidth(m.viewport.Width)))
		m.viewport.GotoTop()
		m.state = viewReport
		return m, nil

	case screenErr:
		m.isLoading = false
		m.err = msg.error
		m.state = viewDocPicker
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	switch m.state {
	case viewDocPicker:
		m.docList, cmd = m.docList.Update(msg)
		cmds = append(cmds, cmd)
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.docList.SelectedItem().(item); ok {
				m.selectedDoc = selected.Title()
				m.state = viewScreening
				m.isLoading = true
				m.err = nil
				m.requestStartTime = time.Now()
				cmds = append(cmds, m.spinner.Tick, screenDocCmd(m.ctx, m.screener, m.config.DocsDirPath(), m.selectedDoc), tickCmd())
			}
		}

	case viewReport:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1)
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n  (esc to go back, q to quit)"
	}

	switch m.state {
	case viewDocPicker:
		return lipgloss.NewStyle().Margin(1, 2).Render(m.docList.View())

	case viewScreening:
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		return fmt.Sprintf("\n  %s Screening %s... %ss\n", m.spinner.View(), m.selectedDoc, timer)

	case viewReport:
		return m.reportView()

	default:
		return "Unknown state"
	}
}

// reportView renders the report screen, including the header badges, the
// scrollable report body, and the key help line.
func (m *model) reportView() string {
	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1)

	docInfo := fmt.Sprintf("Document: %s", m.report.Filename)
	typeInfo := fmt.Sprintf("Type: %s (score %d)", m.report.Detection.Type, m.report.Detection.Score)
	elapsedInfo := fmt.Sprintf("%d ms", m.report.ElapsedMS)

	status := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Report:"),
		headerStyle.Render(docInfo),
		headerStyle.MarginLeft(1).Render(typeInfo),
		headerStyle.MarginLeft(1).Render(elapsedInfo),
	)
	help := lipgloss.NewStyle().Render(" (esc to pick another document, q to quit)")

	var builder strings.Builder
	builder.WriteString(status + help + "\n\n")
	builder.WriteString(m.viewport.View())
	return builder.String()
}

// renderReport formats a finished screening report as scrollable text.
func renderReport(report screen.Report, width int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	var builder strings.Builder
	for _, r := range report.Results {
		builder.WriteString(titleStyle.Render(r.Rules) + "\n")
		builder.WriteString(dimStyle.Render(fmt.Sprintf("%d passages ranked, %d in context", len(r.Passages), r.ChunksUsed)) + "\n")
		builder.WriteString(util.WrapToWidth(r.Context, width) + "\n\n")
	}
	if len(report.Results) == 0 {
		builder.WriteString("no rule sets produced results\n")
	}
	if len(report.Missing) > 0 {
		builder.WriteString(dimStyle.Render("missing rule files: "+strings.Join(report.Missing, ", ")) + "\n")
	}
	return builder.String()
}

// reportWidth keeps the wrapped report readable on narrow terminals.
func reportWidth(viewportWidth int) int {
	return util.Max(viewportWidth-2, 40)
}

// StartTUI runs the interactive document screening interface.
func StartTUI(cfg *appconfig.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}

	// Reroute log output to the log file; stdout now belongs to the UI.
	f, err := tea.LogToFile(cfg.LogFilePath(), "debug")
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer f.Close()

	screener, err := screen.Open(cfg)
	if err != nil {
		return err
	}
	screener.Status = logging.LogEvent

	docs, err := listDocuments(cfg.DocsDirPath())
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no .txt documents found in %s", cfg.DocsDirPath())
	}

	m := initialModel(context.Background(), cfg, screener, docs)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// listDocuments returns one picker item per .txt file in dir, in name order.
func listDocuments(dir string) ([]list.Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir %q: %w", dir, err)
	}
	var items []list.Item
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		items = append(items, item{title: entry.Name(), desc: fmt.Sprintf("%d bytes", info.Size())})
	}
	return items, nil
}
