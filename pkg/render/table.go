// Package render draws the terminal tables for the interactive flow.
package render

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/harrisonrobin/agenda/pkg/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func styled(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Headers(headers...)
}

// TaskTable renders the accumulated tasks sorted by due date, undated last.
// Row content matches the web renderer exactly; only the framing differs.
func TaskTable(tasks []model.Task) string {
	t := styled("Title", "Source", "Status", "Due Date", "Assignees", "Labels")
	for _, task := range model.SortByDue(tasks) {
		t.Row(
			task.Title,
			task.Source,
			task.Status,
			task.DueDisplay(),
			task.AssigneesDisplay(),
			task.LabelsDisplay(),
		)
	}
	return t.Render()
}

// SourceTable renders the numbered source picker, indices 1-based.
func SourceTable(sources []model.Source) string {
	t := styled("Index", "Source Name")
	for i, source := range sources {
		t.Row(strconv.Itoa(i+1), source.Name)
	}
	return t.Render()
}
