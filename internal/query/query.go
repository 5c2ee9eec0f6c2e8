// Package query holds the caller-side policy around a search: case folding
// and the regular expression post-filter.
package query

import (
	"fmt"
	"regexp"
	"strings"
)

// Query is the raw user input for one search.
type Query struct {
	Letters string
	Pattern string
}

// Normalize trims the letters and, when foldCase is set, lowercases them.
// The pattern is left as typed; CompilePattern folds it.
func Normalize(q Query, foldCase bool) Query {
	q.Letters = strings.Join(strings.Fields(q.Letters), "")
	if foldCase {
		q.Letters = strings.ToLower(q.Letters)
	}
	return q
}

// CompilePattern compiles a post-filter, case-insensitive when foldCase is
// set. An empty pattern yields nil, which Apply treats as match-all.
func CompilePattern(pattern string, foldCase bool) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	expr := pattern
	if foldCase {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	return re, nil
}

// Apply keeps the words matched anywhere by re, preserving order.
func Apply(words []string, re *regexp.Regexp) []string {
	if re == nil {
		out := make([]string, len(words))
		copy(out, words)
		return out
	}
	out := make([]string, 0, len(words))
	for _, word := range words {
		if re.MatchString(word) {
			out = append(out, word)
		}
	}
	return out
}
