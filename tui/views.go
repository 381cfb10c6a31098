package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const appTitle = "📧 Student Email Classifier"

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing terminal size..."
	}

	contentHeight := m.height - 1 // status bar
	if contentHeight < 0 {
		contentHeight = 0
	}

	var mainUIView string
	if m.notice != "" {
		mainUIView = lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center, m.renderNotice())
	} else {
		mainUIView = lipgloss.NewStyle().MaxHeight(contentHeight).Render(m.renderForm())
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainUIView, m.renderStatusBar())
}

func (m Model) renderForm() string {
	sections := []string{
		TitleStyle.Render(appTitle),
		InputBoxStyle.Render(m.input.View()),
		m.renderButton(),
	}
	if len(m.results) > 0 {
		header := lipgloss.JoinHorizontal(lipgloss.Bottom,
			ResultsTitleStyle.Render("Results:"), "  ", CopyHintStyle.Render("📋 Copy [Ctrl+Y]"))
		sections = append(sections, header, m.table.View())
	}
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderButton() string {
	switch {
	case m.loading:
		return ButtonDisabledStyle.Render(m.spinner.View() + " Processing...")
	case m.importing:
		return ButtonDisabledStyle.Render(m.spinner.View() + " Importing from Gmail...")
	default:
		return ButtonStyle.Render("Classify & Send Emails [Ctrl+S]")
	}
}

func (m Model) renderNotice() string {
	style := NoticeSuccessStyle
	if m.noticeIsError {
		style = NoticeErrorStyle
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.notice,
		NoticeHintStyle.Render("[Enter] OK"),
	))
}

func (m Model) renderStatusBar() string {
	styleToUse := StatusBarNormalStyle
	if m.statusIsError {
		styleToUse = StatusBarErrorStyle
	} else if m.statusIsTemp {
		styleToUse = StatusBarSuccessStyle
	}
	return styleToUse.Width(m.width).Render(truncate(m.statusBarText, m.width-styleToUse.GetHorizontalPadding()))
}
