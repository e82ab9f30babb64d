package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/reqtrack/pkg/application"
	"github.com/felixgeelhaar/reqtrack/pkg/domain/document"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [manifest]",
	Short: "Interactive TUI dashboard",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices(cmd)
		if err != nil {
			return err
		}
		doc, err := services.Documents.Open(cmd.Context(), manifestArg(args), openOptions(services.Config, false, ""))
		if err != nil {
			return err
		}
		if os.Getenv("REQTRACK_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}

		p := tea.NewProgram(newDashboardModel(doc, services.Documents.Issues(doc)), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var statusDone = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var statusWIP = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
var statusErr = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

type model struct {
	table   table.Model
	summary document.Summary
	issues  []application.RequirementIssues
}

func newDashboardModel(doc *document.Document, issues []application.RequirementIssues) model {
	t := table.New(
		table.WithColumns(requirementColumns),
		table.WithRows(requirementRows(doc.Requirements())),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	return model{
		table:   t,
		summary: doc.Summary(),
		issues:  issues,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) View() string {
	header := headerStyle.Render(m.summary.Project)

	progress := fmt.Sprintf("Completion: %s%%  %s  %s  %s",
		m.summary.CompletionText(),
		statusDone.Render(fmt.Sprintf("%d verified", m.summary.Verified)),
		statusWIP.Render(fmt.Sprintf("%d pending", m.summary.Pending)),
		statusErr.Render(fmt.Sprintf("%d rejected", m.summary.Rejected)),
	)

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			progress,
			m.typeBreakdown(),
			"\nRequirements:",
			m.table.View(),
			m.issuesView(),
			"\n[q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}

func (m model) typeBreakdown() string {
	if len(m.summary.ByType) == 0 {
		return "By type: none"
	}
	names := make([]string, 0, len(m.summary.ByType))
	for name := range m.summary.ByType {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%d", name, m.summary.ByType[name]))
	}
	return "By type: " + strings.Join(parts, "  ")
}

func (m model) issuesView() string {
	if len(m.issues) == 0 {
		return statusDone.Render("\nAll requirements valid")
	}
	var b strings.Builder
	b.WriteString(statusErr.Render("\nINVALID REQUIREMENTS:\n"))
	for _, is := range m.issues {
		fmt.Fprintf(&b, "- %s: %s\n", labelFor(is.ID, is.Title), strings.Join(is.Errors, "; "))
	}
	return b.String()
}
