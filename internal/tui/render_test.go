package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jbonatakis/hakim/internal/court"
)

func TestHeadingUsesTurkishCasing(t *testing.T) {
	cases := []struct{ in, want string }{
		{in: "istanbul", want: "İSTANBUL"},
		{in: "ılık", want: "ILIK"},
		{in: "hırsızlık davası", want: "HIRSIZLIK DAVASI"},
	}
	for _, tc := range cases {
		if got := heading(tc.in); got != tc.want {
			t.Fatalf("heading(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestApplyBrightness(t *testing.T) {
	base := lipgloss.NewStyle()
	if !applyBrightness(base, 50).GetFaint() {
		t.Fatalf("expected low brightness to render faint")
	}
	if !applyBrightness(base, 150).GetBold() {
		t.Fatalf("expected high brightness to render bold")
	}
	normal := applyBrightness(base, 100)
	if normal.GetFaint() || normal.GetBold() {
		t.Fatalf("expected default brightness to leave the style alone")
	}
}

func TestLightingFollowsTranscript(t *testing.T) {
	m := startTrial(t)
	if got := lightingFor(m.sess); got != LightingNormal {
		t.Fatalf("expected normal lighting on an empty transcript, got %d", got)
	}

	targets := m.sess.Targets()
	var witness string
	for _, name := range targets {
		if role, _ := court.ResolveTarget(mustCase(t, m), name); role == court.RoleWitness {
			witness = name
			break
		}
	}
	if witness == "" {
		t.Fatalf("expected a witness among targets %v", targets)
	}
	for m.sess.Pending().Target != witness {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	m = typeText(t, m, "Olay gecesi neredeydiniz?")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, cmd)

	if got := lightingFor(m.sess); got != LightingBright {
		t.Fatalf("expected bright lighting after a witness reply, got %d", got)
	}
}

func mustCase(t *testing.T, m Model) court.Case {
	t.Helper()
	c, ok := m.sess.Case()
	if !ok {
		t.Fatalf("expected an active case")
	}
	return c
}

func TestLayoutBarFitsWidth(t *testing.T) {
	bar := layoutBar("[enter]başla", "dosya #1 kolay", 40)
	if w := lipgloss.Width(bar); w != 40 {
		t.Fatalf("expected width 40, got %d (%q)", w, bar)
	}
	if !strings.HasSuffix(bar, "dosya #1 kolay") {
		t.Fatalf("expected right side flush right, got %q", bar)
	}

	narrow := layoutBar("[enter]başla [n]yeni kariyer", "dosya #1", 20)
	if w := lipgloss.Width(narrow); w != 20 {
		t.Fatalf("expected truncated bar width 20, got %d", w)
	}
	if !strings.HasSuffix(narrow, "dosya #1") {
		t.Fatalf("expected right side kept when truncating, got %q", narrow)
	}
}

func TestTruncateMarksCut(t *testing.T) {
	if got := truncate("çğıöşü", 4); got != "çğı…" {
		t.Fatalf("expected rune truncation with ellipsis, got %q", got)
	}
	if got := truncate("çğı", 3); got != "çğı" {
		t.Fatalf("expected short string untouched, got %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("expected empty string for zero width, got %q", got)
	}
}

func TestSplitPaneWidths(t *testing.T) {
	left, right := splitPaneWidths(120)
	if left+right != 116 {
		t.Fatalf("expected widths to use the available space, got %d+%d", left, right)
	}
	if left < 26 || right < 34 {
		t.Fatalf("expected minimum pane widths, got %d and %d", left, right)
	}
	if l, r := splitPaneWidths(0); l != 0 || r != 0 {
		t.Fatalf("expected zero widths for unknown terminal size")
	}
}

func TestRenderPaneFollowsLighting(t *testing.T) {
	cases := []struct {
		light  Lighting
		corner string
	}{
		{LightingNormal, "╭"},
		{LightingDim, "┌"},
		{LightingBright, "┏"},
	}
	for _, tc := range cases {
		pane := renderPane("içerik", 30, 3, "Dava Dosyası", tc.light)
		lines := strings.Split(pane, "\n")
		if len(lines) < 3 {
			t.Fatalf("expected a bordered pane, got %q", pane)
		}
		if !strings.Contains(lines[0], tc.corner) || !strings.Contains(lines[0], "Dava Dosyası") {
			t.Fatalf("lighting %d: expected titled %s border, got %q", tc.light, tc.corner, lines[0])
		}
		for i, line := range lines {
			if lipgloss.Width(line) != lipgloss.Width(lines[1]) {
				t.Fatalf("lighting %d: line %d is %d wide, want %d", tc.light, i, lipgloss.Width(line), lipgloss.Width(lines[1]))
			}
		}
	}
}

func TestRenderPaneShortensLongTitle(t *testing.T) {
	pane := renderPane("x", 10, 1, "Duruşma Tutanağı", LightingNormal)
	lines := strings.Split(pane, "\n")
	if lipgloss.Width(lines[0]) != lipgloss.Width(lines[1]) {
		t.Fatalf("expected title cut to the pane width, got %q", lines[0])
	}
	if !strings.Contains(lines[0], "…") {
		t.Fatalf("expected a shortened title, got %q", lines[0])
	}
}

func TestActionHintsPerPhase(t *testing.T) {
	m, _ := newTestModel(t)
	if hints := strings.Join(actionHints(m), " "); !strings.Contains(hints, "[n]yeni kariyer") {
		t.Fatalf("expected menu hints, got %q", hints)
	}

	m = startTrial(t)
	hints := strings.Join(actionHints(m), " ")
	if !strings.Contains(hints, "[ctrl+o]açılış") || !strings.Contains(hints, "[ctrl+k]karar") {
		t.Fatalf("expected trial hints with openings, got %q", hints)
	}

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	m = settle(t, m, cmd)
	if strings.Contains(strings.Join(actionHints(m), " "), "açılış") {
		t.Fatalf("expected opening hint gone once statements were heard")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if hints := strings.Join(actionHints(m), " "); !strings.Contains(hints, "[ctrl+s]hükmü açıkla") {
		t.Fatalf("expected verdict hints, got %q", hints)
	}
}

func TestStartLabelReflectsSaveState(t *testing.T) {
	m, _ := newTestModel(t)
	if got := startLabel(m); got != "Davaya Başla" {
		t.Fatalf("expected fresh start label, got %q", got)
	}
}
