// Package search runs the matcher across a word list and orders the matches.
package search

import (
	"sort"
	"unicode/utf8"

	"github.com/verte-zerg/wordpool/internal/matcher"
)

// FindWords returns the words that pool can spell, longest first and in
// descending lexicographic order within equal length. The input is not modified.
func FindWords(words []string, pool matcher.Pool) []string {
	matches := make([]string, 0)
	for _, word := range words {
		if pool.Spells(word) {
			matches = append(matches, word)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return Less(matches[i], matches[j])
	})
	reverse(matches)
	return matches
}

// FindWordsFunc runs FindWords and hands the final result to onComplete exactly once.
func FindWordsFunc(words []string, pool matcher.Pool, onComplete func([]string)) {
	matches := FindWords(words, pool)
	if onComplete != nil {
		onComplete(matches)
	}
}

// Less orders by rune length, then lexicographically.
func Less(a, b string) bool {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// Summary counts matches per word length.
type Summary struct {
	Total    int
	ByLength map[int]int
}

// Lengths returns the lengths present in the summary, longest first.
func (s Summary) Lengths() []int {
	lengths := make([]int, 0, len(s.ByLength))
	for n := range s.ByLength {
		lengths = append(lengths, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	return lengths
}

// Summarize builds a Summary for a result set.
func Summarize(matches []string) Summary {
	s := Summary{Total: len(matches), ByLength: map[int]int{}}
	for _, word := range matches {
		s.ByLength[utf8.RuneCountInString(word)]++
	}
	return s
}

func reverse(words []string) {
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
}
