package render

import (
	"fmt"

	"github.com/KaramelBytes/edakit/internal/eda"
	"github.com/KaramelBytes/edakit/internal/frame"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// BoxesPerRow caps how many summary boxes share a line.
const BoxesPerRow = 4

var (
	accentColor = lipgloss.Color("#3B82F6")
	mutedColor  = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1).
			MarginRight(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)
)

// Text renders a result for the terminal. Summaries become bordered boxes
// laid out side by side; tabular results become grids. Anything else falls
// back to its String form.
func Text(v any) string {
	switch x := v.(type) {
	case *eda.SummaryTable:
		return summaryBoxes(x)
	case eda.Summary:
		return boxStyle.Render(x.String())
	case *frame.Table:
		return grid(&eda.Frame{Table: x})
	case eda.Grid:
		return grid(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(v)
	}
}

func summaryBoxes(t *eda.SummaryTable) string {
	if len(t.Items) == 0 {
		return ""
	}
	var lines []string
	var row []string
	for _, it := range t.Items {
		row = append(row, boxStyle.Render(titleStyle.Render(it.Name)+"\n"+it.Summary.String()))
		if len(row) == BoxesPerRow {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func grid(g eda.Grid) string {
	header, rows := g.Grid()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
