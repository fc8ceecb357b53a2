package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title     lipgloss.Style
	tagline   lipgloss.Style
	prompt    lipgloss.Style
	hero      lipgloss.Style
	cursor    lipgloss.Style
	heading   lipgloss.Style
	body      lipgloss.Style
	image     lipgloss.Style
	fading    lipgloss.Style
	pending   lipgloss.Style
	key       lipgloss.Style
	hint      lipgloss.Style
	separator lipgloss.Style
	barOn     lipgloss.Style
	barOff    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		tagline:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		prompt:    lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		hero:      lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		cursor:    lipgloss.NewStyle().Foreground(t.Accent),
		heading:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		body:      lipgloss.NewStyle().Foreground(t.Text),
		image:     lipgloss.NewStyle().Foreground(t.Accent).Italic(true),
		fading:    lipgloss.NewStyle().Foreground(t.Muted),
		pending:   lipgloss.NewStyle().Foreground(t.Faint),
		key:       lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		hint:      lipgloss.NewStyle().Foreground(t.Muted),
		separator: lipgloss.NewStyle().Foreground(t.Faint),
		barOn:     lipgloss.NewStyle().Foreground(t.Primary),
		barOff:    lipgloss.NewStyle().Foreground(t.Faint),
	}
}

// GradientText colors each rune along a line from startColor to endColor.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	for i, c := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))
		result.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hexColor(r, g, b))).Render(string(c)))
	}
	return result.String()
}

// ProgressBar renders a fixed width bar for a fraction in [0,1].
func (s styles) progressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = min(max(filled, 0), width)
	return s.barOn.Render(strings.Repeat("█", filled)) + s.barOff.Render(strings.Repeat("░", width-filled))
}

func (s styles) rule(width int) string {
	if width < 8 {
		return s.separator.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.separator.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-1))
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = min(max(v, 0), 255)
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
