package components

import (
	"encoding/csv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/verdande/dbgrip/internal/models"
	"github.com/verdande/dbgrip/internal/ui/theme"
)

// cellMaxWidth caps a column so one wide value cannot eat the screen.
const cellMaxWidth = 40

// ResultGrid renders a query result as a fixed-width text table. The
// header is the column set of the result; a row missing a column renders
// NULL for that cell.
type ResultGrid struct {
	Theme  theme.Theme
	Height int
}

// View renders the grid, or a placeholder when there is nothing to show.
func (g ResultGrid) View(result *models.QueryResult) string {
	if result == nil || len(result.Columns) == 0 {
		return lipgloss.NewStyle().Foreground(g.Theme.Muted).Render("No results")
	}

	widths := columnWidths(result)

	header := lipgloss.NewStyle().Foreground(g.Theme.TableHeader).Bold(true)
	var b strings.Builder
	for i, col := range result.Columns {
		b.WriteString(header.Render(pad(col, widths[i])))
		b.WriteString(" ")
	}

	rows := result.Rows
	if g.Height > 0 && len(rows) > g.Height-1 {
		rows = rows[:g.Height-1]
	}
	for _, row := range rows {
		b.WriteString("\n")
		for i, col := range result.Columns {
			b.WriteString(pad(cellText(row, col), widths[i]))
			b.WriteString(" ")
		}
	}

	return b.String()
}

// ResultCSV serializes a result to CSV text, for the clipboard yank.
func ResultCSV(result *models.QueryResult) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(result.Columns); err != nil {
		return "", err
	}
	for _, row := range result.Rows {
		record := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			record[i] = cellText(row, col)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func cellText(row models.Row, col string) string {
	if v := row.Value(col); v.Valid {
		return v.String
	}
	return "NULL"
}

func columnWidths(result *models.QueryResult) []int {
	widths := make([]int, len(result.Columns))
	for i, col := range result.Columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range result.Rows {
		for i, col := range result.Columns {
			if n := runewidth.StringWidth(cellText(row, col)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] > cellMaxWidth {
			widths[i] = cellMaxWidth
		}
	}
	return widths
}

func pad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w > width {
		if width <= 1 {
			return runewidth.Truncate(s, width, "")
		}
		return runewidth.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-w)
}
