// Package session keeps a loaded word list and the last search result for
// one caller. A Session is not safe for concurrent use.
package session

import (
	"regexp"

	"github.com/verte-zerg/wordpool/internal/matcher"
	"github.com/verte-zerg/wordpool/internal/query"
	"github.com/verte-zerg/wordpool/internal/search"
)

// Session owns the dictionary for one front-end.
type Session struct {
	words    []string
	wildcard rune

	letters string
	last    []string
	pool    matcher.Pool
}

// New returns a session over words. The slice is not copied and must not be
// modified afterwards.
func New(words []string, wildcard rune) *Session {
	return &Session{words: words, wildcard: wildcard}
}

// Search runs the pipeline for letters and remembers the result.
func (s *Session) Search(letters string) []string {
	s.letters = letters
	s.pool = matcher.NewPool(letters, s.wildcard)
	s.last = search.FindWords(s.words, s.pool)
	return s.last
}

// Filter applies re to the last result without searching again.
func (s *Session) Filter(re *regexp.Regexp) []string {
	return query.Apply(s.last, re)
}

// Last returns the most recent result set.
func (s *Session) Last() []string {
	return s.last
}

// Letters returns the letters of the most recent search.
func (s *Session) Letters() string {
	return s.letters
}

// Pool returns the pool of the most recent search.
func (s *Session) Pool() matcher.Pool {
	return s.pool
}

// Size returns the dictionary size.
func (s *Session) Size() int {
	return len(s.words)
}

// Wildcard returns the joker rune used for searches.
func (s *Session) Wildcard() rune {
	return s.wildcard
}
