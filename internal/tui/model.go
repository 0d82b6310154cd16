package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jbonatakis/hakim/internal/court"
	"github.com/jbonatakis/hakim/internal/session"
)

type Modal int

const (
	ModalNone Modal = iota
	ModalSettings
	ModalNotebook
)

// AudioUnlocker starts playback. Terminals have no autoplay policy, but
// nothing plays until the player has pressed a key.
type AudioUnlocker interface {
	Unlock()
}

type Options struct {
	Session *session.Session
	Audio   AudioUnlocker
	Logger  *zap.Logger
	Context context.Context
}

type Model struct {
	sess  *session.Session
	audio AudioUnlocker
	log   *zap.Logger
	ctx   context.Context

	windowWidth  int
	windowHeight int
	unlocked     bool
	modal        Modal
	flash        *Flash

	spinner       spinner.Model
	question      textinput.Model
	transcript    viewport.Model
	transcriptLen int
	evidenceIndex int
	verdict       verdictForm
	notebook      textarea.Model
	settings      settingsState
}

// Flash is a one-keypress message shown above the current view.
type Flash struct {
	Message string
	IsError bool
}

type jobDoneMsg struct {
	result session.Result
}

func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	question := textinput.New()
	question.Placeholder = "Sorunuzu yazın..."
	question.CharLimit = 500
	question.Width = 60
	question.Prompt = "› "
	question.Cursor.SetMode(cursor.CursorStatic)
	question.Focus()

	notebook := textarea.New()
	notebook.Placeholder = "Notlarınız..."
	notebook.CharLimit = 5000
	notebook.SetWidth(60)
	notebook.SetHeight(12)
	notebook.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		sess:       opts.Session,
		audio:      opts.Audio,
		log:        logger.Named("tui"),
		ctx:        ctx,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		question:   question,
		transcript: viewport.New(60, 10),
		verdict:    newVerdictForm(),
		notebook:   notebook,
		settings:   newSettingsState(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = typed.Width
		m.windowHeight = typed.Height
		m.resize()
		return m, nil
	case spinner.TickMsg:
		if !m.sess.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case jobDoneMsg:
		return m.completeJob(typed.result)
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if !m.unlocked {
		m.unlocked = true
		if m.audio != nil {
			m.audio.Unlock()
		}
	}
	// Messages stay up for one key press.
	m.flash = nil
	if m.sess.Notice().Kind != session.NoticeNone {
		m.sess.ClearNotice()
	}

	switch m.modal {
	case ModalSettings:
		return HandleSettingsKey(m, msg)
	case ModalNotebook:
		return HandleNotebookKey(m, msg)
	}

	switch m.sess.Phase() {
	case court.PhaseMenu:
		return HandleMenuKey(m, msg)
	case court.PhaseTrial:
		return HandleTrialKey(m, msg)
	case court.PhaseVerdict:
		return HandleVerdictKey(m, msg)
	case court.PhaseEvaluation:
		return HandleEvaluationKey(m, msg)
	default:
		return m, nil
	}
}

// startJob hands a blocking session step to Bubble Tea. The job runs off
// the update loop and comes back as a jobDoneMsg.
func (m Model) startJob(job session.Job, err error) (Model, tea.Cmd) {
	if err != nil {
		m.flash = flashFor(err)
		return m, nil
	}
	m.syncTranscript()
	if job == nil {
		m.afterPhaseChange()
		return m, nil
	}
	ctx := m.ctx
	run := func() tea.Msg {
		return jobDoneMsg{result: job.Run(ctx)}
	}
	return m, tea.Batch(run, m.spinner.Tick)
}

func (m Model) completeJob(result session.Result) (Model, tea.Cmd) {
	err := m.sess.Complete(result)
	switch {
	case errors.Is(err, session.ErrStaleResult):
		m.log.Debug("dropped stale result")
	case err != nil:
		m.log.Warn("court step failed", zap.Error(err))
	}
	m.afterPhaseChange()
	m.syncTranscript()
	return m, nil
}

// afterPhaseChange resets per-phase input once a new case is on the bench
// or the session is back at the menu.
func (m *Model) afterPhaseChange() {
	switch m.sess.Phase() {
	case court.PhaseMenu:
		m.question.Reset()
		m.verdict = newVerdictForm()
		m.transcriptLen = 0
	case court.PhaseTrial:
		if len(m.sess.Transcript()) == 0 {
			m.question.Reset()
			m.evidenceIndex = 0
			m.verdict = newVerdictForm()
		}
	}
}

// syncTranscript refreshes the transcript viewport, following the newest
// entry whenever one arrives.
func (m *Model) syncTranscript() {
	entries := m.sess.Transcript()
	m.transcript.SetContent(renderTranscript(m.sess.Announcement(), entries, m.transcript.Width))
	if len(entries) != m.transcriptLen {
		m.transcriptLen = len(entries)
		m.transcript.GotoBottom()
	}
}

func (m *Model) resize() {
	_, right := splitPaneWidths(m.windowWidth)
	if right > 2 {
		m.transcript.Width = right - 2
	}
	if h := m.trialPaneHeight(); h > 0 {
		m.transcript.Height = h
	}
	inputWidth := m.windowWidth - 8
	if inputWidth > 120 {
		inputWidth = 120
	}
	if inputWidth < 20 {
		inputWidth = 20
	}
	m.question.Width = inputWidth
	m.verdict.setWidth(inputWidth)
	m.notebook.SetWidth(inputWidth)
	if m.windowHeight > 20 {
		m.notebook.SetHeight(m.windowHeight / 2)
	}
	m.syncTranscript()
}

// trialPaneHeight is what is left for the two trial panes after the header,
// the input lines, the bottom bar and the pane borders.
func (m Model) trialPaneHeight() int {
	h := m.windowHeight - 9
	if h < 3 {
		return 3
	}
	return h
}

func (m Model) bodyStyle() lipgloss.Style {
	return applyBrightness(lipgloss.NewStyle(), m.sess.Settings().Brightness)
}

func (m Model) View() string {
	var content string
	switch m.modal {
	case ModalSettings:
		content = RenderSettingsModal(m)
	case ModalNotebook:
		content = RenderNotebookModal(m)
	default:
		switch m.sess.Phase() {
		case court.PhaseMenu:
			content = RenderMenuView(m)
		case court.PhaseLoading:
			content = RenderLoadingView(m)
		case court.PhaseTrial:
			content = RenderTrialView(m)
		case court.PhaseVerdict:
			content = RenderVerdictView(m)
		case court.PhaseEvaluation:
			content = RenderEvaluationView(m)
		}
	}

	if banner := RenderNotice(m); banner != "" {
		content = banner + "\n" + content
	}
	if m.windowHeight > 1 {
		return content + "\n" + RenderBottomBar(m)
	}
	return content
}

func (m Model) openSettings() Model {
	m.settings = newSettingsState()
	m.modal = ModalSettings
	m.question.Blur()
	return m
}

func (m Model) closeModal() Model {
	m.modal = ModalNone
	m.notebook.Blur()
	m.question.Focus()
	return m
}
