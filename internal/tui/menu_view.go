package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func HandleMenuKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "s":
		return m.startJob(m.sess.BeginStart())
	case "n":
		return m.startJob(m.sess.BeginNewGame())
	case "o":
		return m.openSettings(), nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// startLabel is the wording of the primary menu action.
func startLabel(m Model) string {
	switch {
	case m.sess.HasSnapshot():
		return "Kaldığın Yerden Devam Et"
	case m.sess.Progress() > 1:
		return fmt.Sprintf("Sıradaki Dava (#%d)", m.sess.Progress())
	default:
		return "Davaya Başla"
	}
}

func RenderMenuView(m Model) string {
	body := m.bodyStyle()
	tier := m.sess.Tier()

	lines := []string{
		titleStyle().Render(heading("hakim")),
		mutedStyle().Render("Ağır Ceza Mahkemesi Başkanı Simülasyonu"),
		"",
		body.Render(fmt.Sprintf("Kariyer: Dosya #%d", m.sess.Progress())) + "  " +
			shortcutStyle().Render(tier.Label()),
		"",
		renderActionLine("[enter]", startLabel(m), true),
		renderActionLine("[n]", "Yeni Kariyer", true),
		renderActionLine("[o]", "Ayarlar", true),
		renderActionLine("[q]", "Çıkış", true),
	}
	return place(m.windowWidth, m.windowHeight-1, strings.Join(lines, "\n"))
}

func renderActionLine(shortcut string, label string, enabled bool) string {
	if !enabled {
		return mutedStyle().Render(shortcut + " " + label)
	}
	return shortcutStyle().Render(shortcut) + " " + actionStyle().Render(label)
}

func RenderLoadingView(m Model) string {
	message := m.sess.LoadingMessage()
	if message == "" {
		message = "..."
	}
	lines := []string{
		titleStyle().Render(heading("mahkeme")),
		"",
		m.spinner.View() + " " + m.bodyStyle().Render(message),
		"",
		mutedStyle().Render(fmt.Sprintf("Zorluk: %s", m.sess.Tier().Label())),
	}
	return place(m.windowWidth, m.windowHeight-1, strings.Join(lines, "\n"))
}

func HandleEvaluationKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "n":
		return m.startJob(m.sess.BeginNextCase())
	case "r":
		return m.startJob(m.sess.BeginRestart())
	case "m", "esc":
		if err := m.sess.QuitToMenu(); err != nil {
			m.flash = flashFor(err)
			return m, nil
		}
		m.afterPhaseChange()
		return m, nil
	}
	return m, nil
}

func scoreStyle(score int) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch {
	case score >= 75:
		return style.Foreground(lipgloss.Color("42"))
	case score >= 50:
		return style.Foreground(lipgloss.Color("214"))
	default:
		return style.Foreground(lipgloss.Color("196"))
	}
}

func RenderEvaluationView(m Model) string {
	ev, ok := m.sess.Evaluation()
	if !ok {
		return place(m.windowWidth, m.windowHeight-1, mutedStyle().Render("Değerlendirme bekleniyor..."))
	}
	body := m.bodyStyle()
	verdict := m.sess.VerdictInput()

	lines := []string{
		titleStyle().Render(heading("yargıtay değerlendirmesi")),
		"",
		scoreStyle(ev.Score).Render(fmt.Sprintf("%d / 100", ev.Score)) + "  " + titleStyle().Render(heading(ev.Title)),
		"",
		body.Render(fmt.Sprintf("Kararınız: %s", verdictLabel(verdict.Verdict))),
	}
	if verdict.Sentence != "" {
		lines = append(lines, body.Render(fmt.Sprintf("Hüküm: %s", verdict.Sentence)))
	}
	if c, ok := m.sess.Case(); ok {
		lines = append(lines, body.Render(fmt.Sprintf("Doğru Karar: %s", verdictLabel(c.CorrectVerdict))))
	}

	width := m.windowWidth - 10
	if width < 30 {
		width = 30
	}
	lines = append(lines, "", body.Width(width).Render(ev.Feedback))
	if c, ok := m.sess.Case(); ok && c.Reasoning != "" {
		lines = append(lines, "", mutedStyle().Width(width).Render(c.Reasoning))
	}
	lines = append(lines,
		"",
		renderActionLine("[enter]", "Sıradaki Dava", true),
		renderActionLine("[r]", "Davayı Yeniden Başlat", true),
		renderActionLine("[m]", "Ana Menü", true),
	)
	return place(m.windowWidth, m.windowHeight-1, strings.Join(lines, "\n"))
}
