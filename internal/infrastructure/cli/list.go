package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/reqtrack/pkg/domain/requirement"
	"github.com/spf13/cobra"
)

var (
	listType   string
	listStatus string
)

var listCmd = &cobra.Command{
	Use:   "list [manifest]",
	Short: "List requirements, optionally filtered by type or status",
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
		reqs, err := services.Documents.Filter(doc, listType)
		if err != nil {
			return NewCLIError("unknown requirement type", "Use one of "+strings.Join(typeNames(), ", "), err)
		}
		reqs, err = services.Documents.FilterStatus(reqs, listStatus)
		if err != nil {
			return NewCLIError("unknown verification status", "Use one of "+strings.Join(statusNames(), ", "), err)
		}

		out := cmd.OutOrStdout()
		if len(reqs) == 0 {
			fmt.Fprintln(out, "No requirements found.")
			return nil
		}
		fmt.Fprintln(out, requirementTable(reqs, len(reqs)+2).View())
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "Only list requirements of this type")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "Only list requirements with this verification status")
	_ = listCmd.RegisterFlagCompletionFunc("type", fixedCompletion(typeNames()))
	_ = listCmd.RegisterFlagCompletionFunc("status", fixedCompletion(statusNames()))
	RootCmd.AddCommand(listCmd)
}

func typeNames() []string {
	types := requirement.AllTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return names
}

func statusNames() []string {
	statuses := requirement.AllVerificationStatuses()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

var requirementColumns = []table.Column{
	{Title: "ID", Width: 14},
	{Title: "Type", Width: 15},
	{Title: "Pri", Width: 4},
	{Title: "Status", Width: 10},
	{Title: "SMART", Width: 6},
	{Title: "Title", Width: 40},
}

func requirementRows(reqs []*requirement.Requirement) []table.Row {
	rows := make([]table.Row, 0, len(reqs))
	for _, r := range reqs {
		met := 5 - len(r.MissingSMART())
		rows = append(rows, table.Row{
			r.ID,
			r.Type.DisplayName(),
			strconv.Itoa(r.Priority),
			statusLabel(r.VerificationStatus),
			fmt.Sprintf("%d/5", met),
			r.Title,
		})
	}
	return rows
}

// requirementTable builds a static table over reqs.
func requirementTable(reqs []*requirement.Requirement, height int) table.Model {
	t := table.New(
		table.WithColumns(requirementColumns),
		table.WithRows(requirementRows(reqs)),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)
	return t
}

// statusLabel is the display name of a status; the zero value reads as
// pending.
func statusLabel(s requirement.VerificationStatus) string {
	if s == "" {
		s = requirement.StatusPending
	}
	return s.DisplayName()
}
