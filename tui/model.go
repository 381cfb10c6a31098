package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/bassamadnan/mailsort/classifier"
	"github.com/bassamadnan/mailsort/config"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

const (
	inputHeight         = 8
	tempStatusDuration  = 4 * time.Second
	statusRefreshPeriod = time.Second
)

const (
	noticeClassified  = "✅ Emails classified and sent to departments!"
	noticeFailed      = "❌ Something went wrong. Check the log for details."
	noticeCopied      = "Results copied to clipboard!"
	noticeCopyFailed  = "❌ Could not copy results to the clipboard."
	noticeImportError = "❌ Could not import emails from Gmail."
)

// Classifier sends email bodies to the classification service.
type Classifier interface {
	Classify(ctx context.Context, emails []string) ([]classifier.Result, error)
}

// Importer supplies email bodies from an external mailbox.
type Importer interface {
	FetchBodies(ctx context.Context) ([]string, error)
}

// Model is the classifier form: input, classify action and results table.
type Model struct {
	ctx        context.Context
	classifier Classifier
	importer   Importer // nil when Gmail import is off
	logger     *zap.Logger
	colors     map[string]string
	endpoint   string

	input   textarea.Model
	spinner spinner.Model
	table   viewport.Model

	results   []classifier.Result
	loading   bool
	importing bool

	// A notice is modal: it must be dismissed before the form reacts again.
	notice        string
	noticeIsError bool

	width, height int
	statusBarText string
	statusIsError bool
	statusIsTemp  bool
	tempStatusSeq int // only the latest temporary status may clear itself
}

// NewInitialModel builds the form. importer may be nil.
func NewInitialModel(ctx context.Context, c Classifier, importer Importer, settings config.Settings, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	ta := textarea.New()
	ta.Placeholder = "✉️ Paste one or more emails. Separate multiple emails with a blank line."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(inputHeight)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:        ctx,
		classifier: c,
		importer:   importer,
		logger:     logger,
		colors:     settings.Colors,
		endpoint:   settings.Endpoint,
		input:      ta,
		spinner:    sp,
		table:      viewport.New(0, 0),
	}
	m.setStandardStatus()
	return m
}

func (m Model) Init() tea.Cmd {
	m.logger.Debug("TUI Model Init called")
	return tea.Batch(
		textarea.Blink,
		statusTickCmd(statusRefreshPeriod),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.notice != "" {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "esc":
				m.notice = ""
				m.noticeIsError = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			m.updateStatusBar("Quitting...")
			return m, tea.Quit
		case "ctrl+s":
			var cmd tea.Cmd
			m, cmd = m.startClassify()
			return m, cmd
		case "ctrl+y":
			m.copyResults(&cmds)
			return m, tea.Batch(cmds...)
		case "ctrl+g":
			var cmd tea.Cmd
			m, cmd = m.startImport(&cmds)
			cmds = append(cmds, cmd)
			return m, tea.Batch(cmds...)
		case "ctrl+l":
			m.input.Reset()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case classifiedMsg:
		m.loading = false
		if msg.err != nil {
			m.logger.Error("Classification failed", zap.String("endpoint", m.endpoint), zap.Error(msg.err))
			m.setResults(classifier.FailureResult())
			m.showNotice(noticeFailed, true)
		} else {
			m.setResults(msg.results)
			m.showNotice(noticeClassified, false)
		}
		m.setStandardStatus()

	case importedMsg:
		m.importing = false
		switch {
		case msg.err != nil:
			m.logger.Error("Gmail import failed", zap.Error(msg.err))
			m.showNotice(noticeImportError, true)
		case len(msg.bodies) == 0:
			m.showTemporaryStatus("No messages to import", tempStatusDuration, &cmds)
		default:
			m.input.SetValue(classifier.Join(msg.bodies))
			m.showTemporaryStatus(fmt.Sprintf("Imported %d emails from Gmail", len(msg.bodies)), tempStatusDuration, &cmds)
		}

	case spinner.TickMsg:
		if m.loading || m.importing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case StatusTickMsg:
		m.setStandardStatus()
		cmds = append(cmds, statusTickCmd(statusRefreshPeriod))

	case clearTempStatusMsg:
		if m.statusIsTemp && msg.seq == m.tempStatusSeq {
			m.statusIsTemp = false
			m.statusIsError = false
			m.setStandardStatus()
		}

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// startClassify splits the input and, unless it is empty or a request is
// already running, issues the request.
func (m Model) startClassify() (Model, tea.Cmd) {
	if m.loading {
		return m, nil
	}
	emails := classifier.Split(m.input.Value())
	if len(emails) == 0 {
		return m, nil
	}
	m.logger.Info("Classifying emails", zap.Int("emails", len(emails)))
	m.loading = true
	m.setResults(nil)
	m.setStandardStatus()
	return m, tea.Batch(classifyCmd(m.ctx, m.classifier, emails), m.spinner.Tick)
}

func (m Model) startImport(cmds *[]tea.Cmd) (Model, tea.Cmd) {
	if m.importer == nil {
		m.showTemporaryError("Gmail import is off (run with --gmail)", tempStatusDuration, cmds)
		return m, nil
	}
	if m.importing || m.loading {
		return m, nil
	}
	m.importing = true
	return m, tea.Batch(importCmd(m.ctx, m.importer), m.spinner.Tick)
}

func (m *Model) copyResults(cmds *[]tea.Cmd) {
	if len(m.results) == 0 {
		m.showTemporaryError("Nothing to copy", tempStatusDuration, cmds)
		return
	}
	if err := clipboardWriteAll(classifier.Format(m.results)); err != nil {
		m.logger.Error("Clipboard write failed", zap.Error(err))
		m.showNotice(noticeCopyFailed, true)
		return
	}
	m.showNotice(noticeCopied, false)
}

func (m *Model) setResults(results []classifier.Result) {
	m.results = results
	m.table.SetContent(renderResultsTable(m.results, m.table.Width, m.colors))
	m.table.GotoTop()
}

func (m *Model) resize() {
	contentWidth := m.width - AppStyle.GetHorizontalPadding()
	if contentWidth < 20 {
		contentWidth = 20
	}
	m.input.SetWidth(contentWidth - InputBoxStyle.GetHorizontalFrameSize())

	fixed := lipgloss.Height(TitleStyle.Render(" ")) +
		inputHeight + InputBoxStyle.GetVerticalFrameSize() +
		lipgloss.Height(ButtonStyle.Render(" ")) +
		lipgloss.Height(ResultsTitleStyle.Render(" ")) +
		1 // status bar
	tableHeight := m.height - fixed
	if tableHeight < 3 {
		tableHeight = 3
	}
	m.table.Width = contentWidth
	m.table.Height = tableHeight
	m.table.SetContent(renderResultsTable(m.results, m.table.Width, m.colors))
}

func (m *Model) showNotice(text string, isError bool) {
	m.notice = text
	m.noticeIsError = isError
}

func (m *Model) showTemporaryStatus(text string, duration time.Duration, cmds *[]tea.Cmd) {
	m.statusBarText = text
	m.statusIsError = false
	m.statusIsTemp = true
	m.tempStatusSeq++
	seq := m.tempStatusSeq
	*cmds = append(*cmds, tea.Tick(duration, func(t time.Time) tea.Msg {
		return clearTempStatusMsg{seq: seq}
	}))
}

// showTemporaryError is a temporary status drawn with the error style.
func (m *Model) showTemporaryError(text string, duration time.Duration, cmds *[]tea.Cmd) {
	m.showTemporaryStatus(text, duration, cmds)
	m.statusIsError = true
}

func (m *Model) updateStatusBar(text string) {
	m.statusBarText = text
	m.statusIsError = false
	m.statusIsTemp = false
}

func (m *Model) setStandardStatus() {
	if m.statusIsTemp {
		return
	}
	state := "Idle"
	if m.loading {
		state = "Classifying"
	}
	statusMsg := fmt.Sprintf(" %s | %s | %s | %d results ",
		state, m.endpoint, time.Now().Format("15:04:05"), len(m.results))
	keyHints := "[Ctrl+S]:Classify | [Ctrl+Y]:Copy | [Ctrl+L]:Clear | [PgUp/PgDn]:Scroll | [Esc]:Quit"
	if m.importer != nil {
		keyHints += " | [Ctrl+G]:Gmail"
	}
	m.updateStatusBar(statusMsg + "| " + keyHints)
}
