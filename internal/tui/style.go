package tui

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jbonatakis/hakim/internal/config"
	"github.com/jbonatakis/hakim/internal/court"
	"github.com/jbonatakis/hakim/internal/session"
)

var turkishUpper = cases.Upper(language.Turkish)

// heading upper-cases s with Turkish rules, so "i" becomes "İ".
func heading(s string) string {
	return turkishUpper.String(s)
}

// Lighting is the courtroom mood for the current moment of the trial.
type Lighting int

const (
	LightingNormal Lighting = iota
	LightingDim
	LightingBright
)

// lightingFor dims the room while evidence is on the table and brightens it
// when a witness or the defendant has just spoken.
func lightingFor(s *session.Session) Lighting {
	p := s.Pending()
	if p.Evidence != "" || p.SelectorOpen {
		return LightingDim
	}
	entries := s.Transcript()
	if len(entries) == 0 {
		return LightingNormal
	}
	switch entries[len(entries)-1].Role {
	case court.RoleWitness, court.RoleDefendant:
		return LightingBright
	default:
		return LightingNormal
	}
}

// applyBrightness maps the brightness setting onto what a terminal can do.
func applyBrightness(style lipgloss.Style, brightness int) lipgloss.Style {
	switch {
	case brightness < config.DefaultBrightness-15:
		return style.Faint(true)
	case brightness > config.DefaultBrightness+15:
		return style.Bold(true)
	default:
		return style
	}
}

func lightingBorderColor(l Lighting) lipgloss.Color {
	switch l {
	case LightingDim:
		return lipgloss.Color("238")
	case LightingBright:
		return lipgloss.Color("220")
	default:
		return lipgloss.Color("94")
	}
}

func roleStyle(role court.SpeakerRole) lipgloss.Style {
	style := lipgloss.NewStyle().Bold(true)
	switch role {
	case court.RoleJudge:
		return style.Foreground(lipgloss.Color("220"))
	case court.RoleProsecutor:
		return style.Foreground(lipgloss.Color("196"))
	case court.RoleDefense:
		return style.Foreground(lipgloss.Color("39"))
	case court.RoleDefendant:
		return style.Foreground(lipgloss.Color("208"))
	case court.RoleWitness:
		return style.Foreground(lipgloss.Color("42"))
	default:
		return style.Foreground(lipgloss.Color("245"))
	}
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("178"))
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
}

func errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
}

func shortcutStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
}

func actionStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
}

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Reverse(true)
}
