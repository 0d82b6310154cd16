package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HandleNotebookKey edits the judge's notes. Esc keeps the text and closes.
func HandleNotebookKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "esc" {
		if err := m.sess.EditNotebook(m.notebook.Value()); err != nil {
			m.flash = flashFor(err)
		}
		return m.closeModal(), nil
	}
	var cmd tea.Cmd
	m.notebook, cmd = m.notebook.Update(msg)
	return m, cmd
}

func RenderNotebookModal(m Model) string {
	lines := []string{
		titleStyle().Render(heading("not defteri")),
		mutedStyle().Render("Notlar kayıtla birlikte saklanır."),
		"",
		m.notebook.View(),
		"",
		renderActionLine("[esc]", "Kapat", true),
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("94")).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
	return place(m.windowWidth, m.windowHeight-1, box)
}
