package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jbonatakis/hakim/internal/court"
)

func HandleTrialKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	pending := m.sess.Pending()
	key := msg.String()

	if pending.SelectorOpen {
		switch key {
		case "up", "k":
			m.moveEvidence(-1)
			return m, nil
		case "down", "j":
			m.moveEvidence(1)
			return m, nil
		case "enter":
			return m.attachEvidence(), nil
		case "esc", "ctrl+e":
			m.sess.ToggleEvidenceSelector()
			return m, nil
		}
		return m, nil
	}

	switch key {
	case "esc":
		return m.openSettings(), nil
	case "ctrl+n":
		m.notebook.SetValue(m.sess.Notebook())
		m.notebook.Focus()
		m.question.Blur()
		m.modal = ModalNotebook
		return m, nil
	case "ctrl+k":
		if err := m.sess.EnterVerdict(); err != nil {
			m.flash = flashFor(err)
			return m, nil
		}
		m.question.Blur()
		return m, nil
	case "ctrl+o":
		return m.startJob(m.sess.BeginOpenStatements())
	case "tab":
		m.cycleTarget(1)
		return m, nil
	case "shift+tab":
		m.cycleTarget(-1)
		return m, nil
	case "ctrl+e":
		if c, ok := m.sess.Case(); ok && len(c.Evidence) > 0 {
			m.sess.ToggleEvidenceSelector()
		}
		return m, nil
	case "ctrl+x":
		_ = m.sess.SelectEvidence("")
		return m, nil
	case "pgup", "pgdown", "up", "down":
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	case "enter":
		m.sess.SetQuestion(m.question.Value())
		job, err := m.sess.BeginQuestion()
		if err == nil {
			m.question.Reset()
		}
		return m.startJob(job, err)
	}

	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)
	return m, cmd
}

func (m *Model) cycleTarget(dir int) {
	targets := m.sess.Targets()
	if len(targets) == 0 {
		return
	}
	current := -1
	for i, t := range targets {
		if t == m.sess.Pending().Target {
			current = i
			break
		}
	}
	next := 0
	switch {
	case current >= 0:
		next = (current + dir + len(targets)) % len(targets)
	case dir < 0:
		next = len(targets) - 1
	}
	_ = m.sess.SelectTarget(targets[next])
}

func (m *Model) moveEvidence(dir int) {
	c, ok := m.sess.Case()
	if !ok || len(c.Evidence) == 0 {
		return
	}
	m.evidenceIndex = (m.evidenceIndex + dir + len(c.Evidence)) % len(c.Evidence)
}

func (m Model) attachEvidence() Model {
	c, ok := m.sess.Case()
	if !ok || len(c.Evidence) == 0 {
		return m
	}
	if m.evidenceIndex >= len(c.Evidence) {
		m.evidenceIndex = 0
	}
	if err := m.sess.SelectEvidence(c.Evidence[m.evidenceIndex].Item); err != nil {
		m.flash = flashFor(err)
	}
	m.sess.ToggleEvidenceSelector()
	return m
}

func RenderTrialView(m Model) string {
	c, ok := m.sess.Case()
	if !ok {
		return mutedStyle().Render("Aktif dava yok.")
	}
	lighting := lightingFor(m.sess)

	header := titleStyle().Render(heading(c.Title)) + "  " +
		mutedStyle().Render(fmt.Sprintf("Dosya #%d · %s", m.sess.Progress(), m.sess.Tier().Label()))

	left, right := splitPaneWidths(m.windowWidth)
	height := m.trialPaneHeight()
	caseFile := renderCaseFile(m, c, left)
	transcript := m.transcript.View()

	var panes string
	if m.windowWidth <= 0 {
		panes = caseFile + "\n\n" + renderTranscript(m.sess.Announcement(), m.sess.Transcript(), 0)
	} else {
		panes = lipgloss.JoinHorizontal(lipgloss.Top,
			renderPane(caseFile, left, height, "Dava Dosyası", lighting),
			renderPane(transcript, right, height, "Duruşma Tutanağı", lighting),
		)
	}

	return strings.Join([]string{header, panes, renderPendingLine(m), m.question.View()}, "\n")
}

func renderCaseFile(m Model, c court.Case, width int) string {
	body := m.bodyStyle()
	if width > 0 {
		body = body.Width(width)
	}
	label := lipgloss.NewStyle().Bold(true)
	pending := m.sess.Pending()

	var b strings.Builder
	b.WriteString(label.Render("Suç: ") + c.Crime + "\n")
	b.WriteString(label.Render("Sanık: ") + c.DefendantName + "\n\n")
	b.WriteString(body.Render(c.Summary) + "\n\n")

	b.WriteString(label.Render(heading("deliller")) + "\n")
	for i, ev := range c.Evidence {
		marker := "  "
		if ev.Item == pending.Evidence {
			marker = "✓ "
		}
		line := marker + ev.Item
		if pending.SelectorOpen && i == m.evidenceIndex {
			line = selectedStyle().Render(line)
		}
		b.WriteString(line + "\n")
		if pending.SelectorOpen && i == m.evidenceIndex && ev.Description != "" {
			b.WriteString(mutedStyle().Render("    "+ev.Description) + "\n")
		}
	}

	b.WriteString("\n" + label.Render(heading("tanıklar")) + "\n")
	for _, w := range c.Witnesses {
		b.WriteString("  " + w.Name)
		if w.Role != "" {
			b.WriteString(mutedStyle().Render(" (" + w.Role + ")"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPendingLine(m Model) string {
	pending := m.sess.Pending()
	target := pending.Target
	if target == "" {
		target = "-"
	}
	evidence := pending.Evidence
	if evidence == "" {
		evidence = "-"
	}
	line := fmt.Sprintf("Muhatap: %s   Delil: %s", target, evidence)
	if m.sess.Busy() {
		line += "   " + m.spinner.View() + " " + mutedStyle().Render("yanıt bekleniyor")
	} else if len(m.sess.Transcript()) == 0 {
		line += "   " + mutedStyle().Render("[ctrl+o] açılış beyanları")
	}
	return line
}

// renderTranscript lays out the clerk's announcement followed by every
// entry, wrapped to width when width is positive.
func renderTranscript(announcement string, entries []court.Entry, width int) string {
	wrap := lipgloss.NewStyle()
	if width > 0 {
		wrap = wrap.Width(width)
	}
	var blocks []string
	if announcement != "" {
		blocks = append(blocks, wrap.Render(roleStyle(court.RoleSystem).Render(court.ClerkLabel+":")+" "+announcement))
	}
	for _, e := range entries {
		blocks = append(blocks, wrap.Render(roleStyle(e.Role).Render(e.Speaker+":")+" "+e.Text))
	}
	return strings.Join(blocks, "\n\n")
}
