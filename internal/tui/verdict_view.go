package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jbonatakis/hakim/internal/court"
)

type verdictField int

const (
	fieldVerdict verdictField = iota
	fieldSentence
	fieldReasoning
)

type verdictForm struct {
	focus     verdictField
	verdict   court.Verdict
	sentence  textinput.Model
	reasoning textarea.Model
	errs      []court.ValidationError
}

func newVerdictForm() verdictForm {
	sentence := textinput.New()
	sentence.Placeholder = "Örn. 10 yıl hapis"
	sentence.CharLimit = 200
	sentence.Width = 60
	sentence.Cursor.SetMode(cursor.CursorStatic)

	reasoning := textarea.New()
	reasoning.Placeholder = "Gerekçeli karar..."
	reasoning.CharLimit = 4000
	reasoning.SetWidth(60)
	reasoning.SetHeight(5)
	reasoning.Cursor.SetMode(cursor.CursorStatic)

	return verdictForm{
		focus:     fieldVerdict,
		verdict:   court.NewVerdictInput().Verdict,
		sentence:  sentence,
		reasoning: reasoning,
	}
}

func (f *verdictForm) setWidth(width int) {
	f.sentence.Width = width
	f.reasoning.SetWidth(width)
}

func (f *verdictForm) setFocus(field verdictField) {
	f.focus = field
	f.sentence.Blur()
	f.reasoning.Blur()
	switch field {
	case fieldSentence:
		f.sentence.Focus()
	case fieldReasoning:
		f.reasoning.Focus()
	}
}

func (f *verdictForm) toggleVerdict() {
	if f.verdict == court.Guilty {
		f.verdict = court.NotGuilty
	} else {
		f.verdict = court.Guilty
	}
}

// input is what the form would submit. A sentence only goes with a guilty
// verdict.
func (f verdictForm) input() court.VerdictInput {
	v := court.VerdictInput{
		Verdict:   f.verdict,
		Reasoning: strings.TrimSpace(f.reasoning.Value()),
	}
	if f.verdict == court.Guilty {
		v.Sentence = strings.TrimSpace(f.sentence.Value())
	}
	return v
}

func HandleVerdictKey(m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	form := &m.verdict
	switch msg.String() {
	case "esc":
		if err := m.sess.ReturnToTrial(); err != nil {
			m.flash = flashFor(err)
			return m, nil
		}
		form.setFocus(fieldVerdict)
		m.question.Focus()
		return m, nil
	case "tab":
		form.setFocus((form.focus + 1) % 3)
		return m, nil
	case "shift+tab":
		form.setFocus((form.focus + 2) % 3)
		return m, nil
	case "ctrl+s":
		return submitVerdict(m)
	}

	var cmd tea.Cmd
	switch form.focus {
	case fieldVerdict:
		switch msg.String() {
		case "left", "right", " ", "h", "l", "enter":
			form.toggleVerdict()
			form.errs = nil
		}
	case fieldSentence:
		form.sentence, cmd = form.sentence.Update(msg)
	case fieldReasoning:
		form.reasoning, cmd = form.reasoning.Update(msg)
	}
	return m, cmd
}

func submitVerdict(m Model) (Model, tea.Cmd) {
	input := m.verdict.input()
	if errs := input.Validate(); len(errs) > 0 {
		m.verdict.errs = errs
		if input.Verdict == court.Guilty {
			m.verdict.setFocus(fieldSentence)
		}
		return m, nil
	}
	m.verdict.errs = nil
	if err := m.sess.SetVerdictInput(input); err != nil {
		m.flash = flashFor(err)
		return m, nil
	}
	return m.startJob(m.sess.BeginVerdict())
}

func verdictLabel(v court.Verdict) string {
	switch v {
	case court.Guilty:
		return "Mahkûmiyet (Suçlu)"
	case court.NotGuilty:
		return "Beraat (Suçsuz)"
	default:
		return string(v)
	}
}

func RenderVerdictView(m Model) string {
	c, ok := m.sess.Case()
	if !ok {
		return mutedStyle().Render("Aktif dava yok.")
	}
	body := m.bodyStyle()
	form := m.verdict

	lines := []string{
		titleStyle().Render(heading("hüküm")) + "  " + mutedStyle().Render(c.Title),
		"",
		body.Render(heading("kritik bulgular ve çelişkiler")),
	}
	for _, point := range c.KeyPoints {
		lines = append(lines, body.Render("• "+point))
	}

	choice := func(v court.Verdict) string {
		mark := "( )"
		if form.verdict == v {
			mark = "(•)"
		}
		return mark + " " + verdictLabel(v)
	}
	verdictLine := choice(court.Guilty) + "   " + choice(court.NotGuilty)
	if form.focus == fieldVerdict {
		verdictLine = selectedStyle().Render(verdictLine)
	}

	lines = append(lines,
		"",
		fieldLabel("Karar", form.focus == fieldVerdict),
		verdictLine,
		"",
		fieldLabel("Hüküm (mahkûmiyette zorunlu)", form.focus == fieldSentence),
		form.sentence.View(),
		"",
		fieldLabel("Gerekçe", form.focus == fieldReasoning),
		form.reasoning.View(),
	)
	for _, e := range form.errs {
		lines = append(lines, errorStyle().Render(fmt.Sprintf("⚠ %s", verdictErrorText(e))))
	}
	return strings.Join(lines, "\n")
}

func fieldLabel(label string, focused bool) string {
	if focused {
		return shortcutStyle().Bold(true).Render("▸ " + label)
	}
	return mutedStyle().Render("  " + label)
}

func verdictErrorText(e court.ValidationError) string {
	if e.Path == "$.sentence" {
		return "Mahkûmiyet kararında hüküm (ceza) belirtilmelidir."
	}
	return e.Error()
}
