// Package render writes search results and history as plain text.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/wordpool/internal/model"
	"github.com/verte-zerg/wordpool/internal/search"
)

const (
	terminalWidthBackup = 80
	columnGap           = 2
)

// Options controls result output.
type Options struct {
	Limit   int
	Columns bool
	Width   int
}

// TerminalWidth returns the width of stdout, or fallback when it is not a terminal.
func TerminalWidth(fallback int) int {
	if fallback <= 0 {
		fallback = terminalWidthBackup
	}
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// Columns lays words out column-major in as many columns as fit in width.
func Columns(words []string, width int) []string {
	return LayoutColumns(words, width, func(word string) string { return word })
}

// LayoutColumns arranges words column-major in as many columns as fit in
// width. cell renders one word; padding is computed from the word's display
// width, so cell may add escape sequences. Only cells followed by another
// column are padded.
func LayoutColumns(words []string, width int, cell func(word string) string) []string {
	if len(words) == 0 {
		return nil
	}
	widest := 0
	for _, word := range words {
		if w := runewidth.StringWidth(word); w > widest {
			widest = w
		}
	}
	cols := 1
	if width > 0 {
		cols = (width + columnGap) / (widest + columnGap)
	}
	if cols < 1 {
		cols = 1
	}
	rows := (len(words) + cols - 1) / cols
	lines := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		var b strings.Builder
		for c := 0; c < cols; c++ {
			idx := c*rows + r
			if idx >= len(words) {
				break
			}
			if c > 0 {
				b.WriteString(strings.Repeat(" ", columnGap))
			}
			word := words[idx]
			b.WriteString(cell(word))
			if next := (c+1)*rows + r; c+1 < cols && next < len(words) {
				b.WriteString(strings.Repeat(" ", widest-runewidth.StringWidth(word)))
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// Limit truncates words to n entries when n is positive.
func Limit(words []string, n int) []string {
	if n > 0 && len(words) > n {
		return words[:n]
	}
	return words
}

// RenderResults prints the result set one word per line or in columns.
func RenderResults(w io.Writer, words []string, opts Options) error {
	words = Limit(words, opts.Limit)
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "No words found.")
		return err
	}
	lines := words
	if opts.Columns {
		lines = Columns(words, opts.Width)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints how many matches there are per word length.
func RenderSummary(w io.Writer, s search.Summary) error {
	if _, err := fmt.Fprintf(w, "Matches: %d\n", s.Total); err != nil {
		return err
	}
	if s.Total == 0 {
		return nil
	}
	rows := make([][]string, 0, len(s.ByLength))
	for _, n := range s.Lengths() {
		rows = append(rows, []string{strconv.Itoa(n), strconv.Itoa(s.ByLength[n])})
	}
	lines := formatTable([]string{"Length", "Words"}, rows, map[int]bool{0: true, 1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints saved searches as a table.
func RenderHistory(w io.Writer, records []model.SearchRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No searches found.")
		return err
	}
	headers := []string{"When", "Letters", "Pattern", "Matches", "Top", "Source"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		pattern := rec.Pattern
		if pattern == "" {
			pattern = "-"
		}
		top := rec.Top
		if top == "" {
			top = "-"
		}
		rows = append(rows, []string{
			rec.SearchedAt.Local().Format("2006-01-02 15:04"),
			rec.Letters,
			pattern,
			strconv.Itoa(rec.Matches),
			top,
			rec.Source,
		})
	}
	lines := formatTable(headers, rows, map[int]bool{3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
