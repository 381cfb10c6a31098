package tui

import (
	"strings"

	"github.com/bassamadnan/mailsort/classifier"
	"github.com/charmbracelet/lipgloss"
)

const (
	emailPreviewLen  = 50
	categoryColWidth = 16
)

// truncate shortens a string to a max length in runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// previewEmail flattens an email to one line and keeps its first 50 characters.
func previewEmail(email string) string {
	flat := strings.Join(strings.Fields(email), " ")
	r := []rune(flat)
	if len(r) <= emailPreviewLen {
		return flat
	}
	return string(r[:emailPreviewLen]) + "..."
}

// renderResultsTable draws the Email/Category table with one badge per row.
func renderResultsTable(results []classifier.Result, width int, colors map[string]string) string {
	emailColWidth := width - categoryColWidth - 1
	if emailColWidth < 10 {
		emailColWidth = 10
	}
	emailCell := lipgloss.NewStyle().Width(emailColWidth).MaxWidth(emailColWidth)
	categoryCell := lipgloss.NewStyle().Width(categoryColWidth).MaxWidth(categoryColWidth)

	rows := make([]string, 0, len(results)+1)
	rows = append(rows, TableHeaderStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		emailCell.Render("Email"), " ", categoryCell.Render("Category"))))

	for i, r := range results {
		rowStyle := OddRowStyle
		if i%2 == 0 {
			rowStyle = EvenRowStyle
		}
		email := truncate(previewEmail(r.Email), emailColWidth)
		badge := badgeStyle(colors, r.PredictedCategory).Render(truncate(r.PredictedCategory, categoryColWidth-2))
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			emailCell.Render(email), " ", categoryCell.Render(badge))
		rows = append(rows, rowStyle.Render(row))
	}
	return strings.Join(rows, "\n")
}
