package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/verdande/dbgrip/internal/models"
	"github.com/verdande/dbgrip/internal/ui/theme"
)

// TableBrowser renders the table list with the selected table optionally
// expanded into its column schema, one indented line per column.
type TableBrowser struct {
	Theme  theme.Theme
	Height int
}

// View renders tables; expanded is the index of the expanded table (-1 for
// none) and schema its cached description.
func (b TableBrowser) View(tables []string, cursor, expanded int, schema *models.TableSchema) string {
	if len(tables) == 0 {
		return lipgloss.NewStyle().Foreground(b.Theme.Muted).Render("(no tables)")
	}

	selected := lipgloss.NewStyle().
		Background(b.Theme.Selection).
		Foreground(lipgloss.Color("0")).
		Bold(true)
	normal := lipgloss.NewStyle().Foreground(b.Theme.Foreground)
	column := lipgloss.NewStyle().Foreground(b.Theme.Muted)

	var lines []string
	cursorLine := 0
	for i, table := range tables {
		if i == cursor {
			cursorLine = len(lines)
			lines = append(lines, selected.Render(table))
		} else {
			lines = append(lines, normal.Render(table))
		}

		if i == expanded && schema != nil {
			for _, col := range schema.Columns {
				lines = append(lines, column.Render("  ├─ "+FormatColumn(col)))
			}
		}
	}

	// Scroll so the cursor row stays visible.
	start := 0
	if b.Height > 0 && cursorLine >= b.Height {
		start = cursorLine - b.Height + 1
	}
	end := len(lines)
	if b.Height > 0 && start+b.Height < end {
		end = start + b.Height
	}

	return strings.Join(lines[start:end], "\n")
}

// FormatColumn renders one column as
// "name: data_type (Nullable: bool, Default: value)".
func FormatColumn(col models.ColumnSchema) string {
	def := "NULL"
	if col.Default != nil {
		def = *col.Default
	}
	return fmt.Sprintf("%s: %s (Nullable: %t, Default: %s)", col.Name, col.DataType, col.IsNullable, def)
}
