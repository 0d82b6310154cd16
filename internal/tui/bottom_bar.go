package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jbonatakis/hakim/internal/court"
	"github.com/jbonatakis/hakim/internal/session"
)

func RenderBottomBar(m Model) string {
	left := strings.Join(actionHints(m), " ")
	if m.sess.Busy() {
		left = fmt.Sprintf("%s | %s", left, m.spinner.View())
	}
	right := fmt.Sprintf("dosya #%d %s", m.sess.Progress(), strings.ToLower(m.sess.Tier().Label()))
	if !m.unlocked {
		right = "ses kapalı · " + right
	}

	padding := 1
	width := m.windowWidth
	if width > 0 {
		width -= padding * 2
		if width < 0 {
			width = 0
		}
	}
	style := lipgloss.NewStyle().Reverse(true).Padding(0, padding)
	return style.Render(layoutBar(left, right, width))
}

func actionHints(m Model) []string {
	switch m.modal {
	case ModalSettings:
		if m.settings.Editing {
			return []string{"[enter]kaydet", "[esc]vazgeç", "[ctrl+c]çık"}
		}
		return []string{"[↑↓]seç", "[←→]ayarla", "[enter]değer", "[esc]kapat", "[ctrl+c]çık"}
	case ModalNotebook:
		return []string{"[esc]kapat", "[ctrl+c]çık"}
	}
	if m.sess.Busy() {
		return []string{"[ctrl+c]çık"}
	}
	switch m.sess.Phase() {
	case court.PhaseMenu:
		return []string{"[enter]başla", "[n]yeni kariyer", "[o]ayarlar", "[q]çık"}
	case court.PhaseTrial:
		if m.sess.Pending().SelectorOpen {
			return []string{"[↑↓]delil", "[enter]sun", "[esc]kapat"}
		}
		hints := []string{"[tab]muhatap", "[ctrl+e]delil", "[enter]sor", "[ctrl+n]not", "[ctrl+k]karar", "[esc]menü"}
		if len(m.sess.Transcript()) == 0 {
			hints = append([]string{"[ctrl+o]açılış"}, hints...)
		}
		return hints
	case court.PhaseVerdict:
		return []string{"[tab]alan", "[ctrl+s]hükmü açıkla", "[esc]duruşmaya dön"}
	case court.PhaseEvaluation:
		return []string{"[enter]sıradaki dava", "[r]yeniden", "[m]menü"}
	}
	return []string{"[ctrl+c]çık"}
}

// RenderNotice shows the session's notice or the last command error.
func RenderNotice(m Model) string {
	var message string
	var isError bool
	switch {
	case m.flash != nil:
		message, isError = m.flash.Message, m.flash.IsError
	case m.sess.Notice().Kind != session.NoticeNone:
		n := m.sess.Notice()
		message, isError = n.Text, n.Kind == session.NoticeError
	default:
		return ""
	}

	style := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	if isError {
		style = style.BorderForeground(lipgloss.Color("196"))
	} else {
		style = style.BorderForeground(lipgloss.Color("42"))
	}
	if m.windowWidth > 4 {
		style = style.Width(m.windowWidth - 4)
	}
	return style.Render(message)
}

func flashFor(err error) *Flash {
	var message string
	switch {
	case errors.Is(err, session.ErrEmptyQuestion):
		message = "Soru boş olamaz."
	case errors.Is(err, session.ErrNoTarget):
		message = "Önce soru sorulacak kişiyi seçin [tab]."
	case errors.Is(err, session.ErrBusy):
		message = "Mahkeme henüz yanıt vermedi."
	case errors.Is(err, session.ErrOpeningDone):
		message = "Açılış beyanları zaten dinlendi."
	case errors.Is(err, session.ErrNotSaveable):
		message = "Bu aşamada kayıt yapılamaz."
	case errors.Is(err, session.ErrUnknownEvidence):
		message = "Bu delil dava dosyasında yok."
	case errors.Is(err, session.ErrInvalidVerdict):
		message = "Karar Mahkumiyet ya da Beraat olmalı."
	case errors.Is(err, session.ErrNoOracle):
		message = "Dava üreticisi yapılandırılmamış."
	default:
		message = err.Error()
	}
	return &Flash{Message: message, IsError: true}
}
