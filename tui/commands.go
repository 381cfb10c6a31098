package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// classifyCmd performs the single request for one classify action.
func classifyCmd(ctx context.Context, c Classifier, emails []string) tea.Cmd {
	return func() tea.Msg {
		results, err := c.Classify(ctx, emails)
		return classifiedMsg{results: results, err: err}
	}
}

// importCmd fetches inbox bodies to prefill the input.
func importCmd(ctx context.Context, imp Importer) tea.Cmd {
	return func() tea.Msg {
		bodies, err := imp.FetchBodies(ctx)
		return importedMsg{bodies: bodies, err: err}
	}
}

// statusTickCmd creates a ticker for updating the status bar periodically.
func statusTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return StatusTickMsg{Time: t}
	})
}
