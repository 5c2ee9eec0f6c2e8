package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordpool/internal/render"
)

// layoutResults renders words one per line, or column-major when columns is
// set, underlining the part of each word matched by re.
func layoutResults(words []string, re *regexp.Regexp, width int, columns bool) string {
	if len(words) == 0 {
		return ""
	}
	styled := func(word string) string { return highlight(word, re) }
	if !columns || width <= 0 {
		lines := make([]string, len(words))
		for i, word := range words {
			lines[i] = styled(word)
		}
		return strings.Join(lines, "\n")
	}
	return strings.Join(render.LayoutColumns(words, width, styled), "\n")
}

func highlight(word string, re *regexp.Regexp) string {
	if re == nil {
		return wordStyle.Render(word)
	}
	loc := re.FindStringIndex(word)
	if loc == nil || loc[0] == loc[1] {
		return wordStyle.Render(word)
	}
	var b strings.Builder
	if loc[0] > 0 {
		b.WriteString(wordStyle.Render(word[:loc[0]]))
	}
	b.WriteString(matchStyle.Render(word[loc[0]:loc[1]]))
	if loc[1] < len(word) {
		b.WriteString(wordStyle.Render(word[loc[1]:]))
	}
	return b.String()
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
