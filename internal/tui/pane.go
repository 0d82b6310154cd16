package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// paneBorder picks the frame for the courtroom lighting, so the mood still
// reads on terminals without color.
func paneBorder(l Lighting) lipgloss.Border {
	switch l {
	case LightingDim:
		return lipgloss.NormalBorder()
	case LightingBright:
		return lipgloss.ThickBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// renderPane frames content for the trial screen. The box is drawn without
// its top edge and a titled edge is built from the same border runes.
func renderPane(content string, width int, height int, title string, light Lighting) string {
	border := paneBorder(light)
	color := lightingBorderColor(light)
	body := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(color).
		Width(width).
		Height(height).
		Padding(0, 1).
		Render(content)

	inner := lipgloss.Width(body) - lipgloss.Width(border.TopLeft) - lipgloss.Width(border.TopRight)
	edge := lipgloss.NewStyle().Foreground(color)
	label := lipgloss.NewStyle().Bold(light != LightingDim).Faint(light == LightingDim).Foreground(color)

	caption := ""
	if title != "" && inner > 4 {
		caption = " " + truncate(title, inner-4) + " "
	}
	fill := inner - lipgloss.Width(caption)
	lead := 0
	if caption != "" {
		lead = 1
		fill--
	}
	top := edge.Render(border.TopLeft+strings.Repeat(border.Top, lead)) +
		label.Render(caption) +
		edge.Render(strings.Repeat(border.Top, max(fill, 0))+border.TopRight)
	return top + "\n" + body
}

// splitPaneWidths divides total between the case file and the transcript.
// Each pane adds two border columns.
func splitPaneWidths(total int) (int, int) {
	if total <= 0 {
		return 0, 0
	}
	minLeft := 26
	minRight := 34
	available := total - 4
	if available < 0 {
		available = 0
	}
	left := available / 3
	if left < minLeft {
		left = minLeft
	}
	if available-left < minRight {
		left = available - minRight
		if left < minLeft {
			left = available / 2
		}
	}
	right := available - left
	if right < 0 {
		right = 0
	}
	return left, right
}

// layoutBar puts left and right on one line of the given width. The right
// side is kept whole; left is cut first when they do not fit.
func layoutBar(left string, right string, width int) string {
	if width <= 0 {
		return left + " " + right
	}
	rw := lipgloss.Width(right)
	if rw >= width {
		return truncate(right, width)
	}
	left = truncate(left, width-rw-1)
	return left + strings.Repeat(" ", width-rw-lipgloss.Width(left)) + right
}

// truncate cuts s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	switch {
	case width <= 0:
		return ""
	case len(runes) <= width:
		return s
	case width == 1:
		return "…"
	default:
		return string(runes[:width-1]) + "…"
	}
}

func place(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
