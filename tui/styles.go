package tui

import "github.com/charmbracelet/lipgloss"

// Badge color for categories missing from the configured palette.
const unknownCategoryColor = "#999999"

var (
	// General
	AppStyle   = lipgloss.NewStyle().Padding(0, 1)
	TitleStyle = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("63")).Foreground(lipgloss.Color("255")).Padding(0, 1).MarginBottom(1)

	// Input
	InputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)

	// Classify button
	ButtonStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#5B86E5")).Padding(0, 2).MarginTop(1)
	ButtonDisabledStyle = ButtonStyle.Background(lipgloss.Color("240"))

	// Results table
	ResultsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")).MarginTop(1)
	CopyHintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("#51CF66")).Padding(0, 1)
	TableHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	EvenRowStyle      = lipgloss.NewStyle().Background(lipgloss.AdaptiveColor{Light: "255", Dark: "235"})
	OddRowStyle       = lipgloss.NewStyle()
	BadgeStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)

	// Notices
	NoticeSuccessStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("28")).Padding(1, 3)
	NoticeErrorStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("196")).Padding(1, 3)
	NoticeHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"}).MarginTop(1)

	// Status Bar
	StatusBarSuccessStyle = lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("255")).Padding(0, 1)
	StatusBarNormalStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("250")).Padding(0, 1)
	StatusBarErrorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("196")).Foreground(lipgloss.Color("255")).Padding(0, 1)
)

// badgeStyle returns the badge for category, falling back to gray.
func badgeStyle(colors map[string]string, category string) lipgloss.Style {
	color, ok := colors[category]
	if !ok || color == "" {
		color = unknownCategoryColor
	}
	return BadgeStyle.Background(lipgloss.Color(color))
}
