package tui

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jbonatakis/hakim/internal/config"
)

type settingsState struct {
	Options   []config.OptionMetadata
	Selected  int
	Editing   bool
	EditValue string
	Err       error
}

func newSettingsState() settingsState {
	return settingsState{Options: config.OptionRegistry()}
}

func (s settingsState) selectedOption() (config.OptionMetadata, bool) {
	if len(s.Options) == 0 {
		return config.OptionMetadata{}, false
	}
	idx := s.Selected
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.Options) {
		idx = len(s.Options) - 1
	}
	return s.Options[idx], true
}

// HandleSettingsKey handles the settings modal. It doubles as the pause
// menu during a trial.
func HandleSettingsKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.settings.Editing {
		return handleSettingsEditKey(m, msg)
	}
	state := &m.settings
	inGame := m.sess.Phase().InGame()

	switch msg.String() {
	case "esc", "c":
		return m.closeModal(), nil
	case "up", "k":
		if state.Selected > 0 {
			state.Selected--
		}
		return m, nil
	case "down", "j":
		if state.Selected < len(state.Options)-1 {
			state.Selected++
		}
		return m, nil
	case "left", "h":
		return nudgeSetting(m, -1), nil
	case "right", "l":
		return nudgeSetting(m, 1), nil
	case "enter":
		if opt, ok := state.selectedOption(); ok {
			state.Editing = true
			state.EditValue = strings.TrimSuffix(m.sess.Settings().FormatValue(opt.KeyPath), "%")
			state.Err = nil
		}
		return m, nil
	case "s":
		if !inGame {
			return m, nil
		}
		if err := m.sess.Save(); err != nil {
			m.flash = flashFor(err)
		}
		return m, nil
	case "r":
		if !inGame {
			return m, nil
		}
		m = m.closeModal()
		return m.startJob(m.sess.BeginRestart())
	case "m":
		if !inGame {
			return m, nil
		}
		if err := m.sess.QuitToMenu(); err != nil {
			m.flash = flashFor(err)
			return m, nil
		}
		m = m.closeModal()
		m.afterPhaseChange()
		return m, nil
	}
	return m, nil
}

func handleSettingsEditKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	state := &m.settings
	switch msg.Type {
	case tea.KeyEsc:
		state.Editing = false
		state.EditValue = ""
		state.Err = nil
		return m, nil
	case tea.KeyEnter:
		opt, ok := state.selectedOption()
		if !ok {
			state.Editing = false
			return m, nil
		}
		value, err := config.ParseOptionValue(opt.KeyPath, state.EditValue)
		if err != nil {
			state.Err = err
			return m, nil
		}
		next, err := m.sess.Settings().With(opt.KeyPath, value)
		if err == nil {
			err = m.sess.UpdateSettings(next)
		}
		state.Err = err
		if err == nil {
			state.Editing = false
			state.EditValue = ""
		}
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(state.EditValue); len(r) > 0 {
			state.EditValue = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if unicode.IsDigit(r) || r == '.' || r == ',' || r == '%' {
				if r == ',' {
					r = '.'
				}
				state.EditValue += string(r)
			}
		}
		return m, nil
	}
	return m, nil
}

func nudgeSetting(m Model, dir int) Model {
	opt, ok := m.settings.selectedOption()
	if !ok {
		return m
	}
	next, err := m.sess.Settings().Nudge(opt.KeyPath, dir)
	if err == nil {
		err = m.sess.UpdateSettings(next)
	}
	m.settings.Err = err
	return m
}

func RenderSettingsModal(m Model) string {
	state := m.settings
	settings := m.sess.Settings()

	nameWidth := 0
	for _, opt := range state.Options {
		if w := lipgloss.Width(opt.DisplayName); w > nameWidth {
			nameWidth = w
		}
	}

	lines := []string{titleStyle().Render(heading("ayarlar")), ""}
	for i, opt := range state.Options {
		name := opt.DisplayName + strings.Repeat(" ", nameWidth-lipgloss.Width(opt.DisplayName))
		value := settings.FormatValue(opt.KeyPath)
		if state.Editing && i == state.Selected {
			value = lipgloss.NewStyle().Bold(true).Underline(true).Render(state.EditValue + "_")
		} else {
			value = renderLevelBar(settings, opt) + " " + value
		}
		line := name + "  " + value
		if i == state.Selected {
			line = shortcutStyle().Render("▸ ") + lipgloss.NewStyle().Bold(true).Render(line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	if opt, ok := state.selectedOption(); ok {
		lines = append(lines, "", mutedStyle().Render(opt.Description))
	}
	if state.Err != nil {
		lines = append(lines, errorStyle().Render(fmt.Sprintf("Ayar hatası: %v", state.Err)))
	}

	lines = append(lines, "", renderActionLine("[esc]", "Devam Et", true))
	inGame := m.sess.Phase().InGame()
	lines = append(lines,
		renderActionLine("[s]", "Kaydet", inGame && m.sess.Phase().Saveable()),
		renderActionLine("[r]", "Davayı Yeniden Başlat", inGame),
		renderActionLine("[m]", "Ana Menü", inGame),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("178")).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return place(m.windowWidth, m.windowHeight-1, box)
}

// renderLevelBar draws a ten-cell gauge for the option's current value.
func renderLevelBar(settings config.Settings, opt config.OptionMetadata) string {
	value, _ := settings.Value(opt.KeyPath)
	span := opt.Bounds.Max - opt.Bounds.Min
	if span <= 0 {
		return ""
	}
	filled := int((value-opt.Bounds.Min)/span*10 + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return actionStyle().Render(strings.Repeat("█", filled)) + mutedStyle().Render(strings.Repeat("░", 10-filled))
}
