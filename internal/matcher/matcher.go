// Package matcher decides whether a word can be spelled from a letter pool.
package matcher

import (
	"sort"
	"strings"
)

// DefaultWildcard is the pool rune that stands in for any word rune.
const DefaultWildcard = '.'

// Pool is a multiset of letters plus a number of wildcard slots.
// A Pool is immutable after construction and safe for concurrent use.
type Pool struct {
	letters   map[rune]int
	wildcard  rune
	wildcards int
	size      int
}

// NewPool builds a pool from letters, counting every occurrence of wildcard
// as a joker slot.
func NewPool(letters string, wildcard rune) Pool {
	p := Pool{letters: map[rune]int{}, wildcard: wildcard}
	for _, r := range letters {
		p.size++
		if r == wildcard {
			p.wildcards++
			continue
		}
		p.letters[r]++
	}
	return p
}

// WordInSet reports whether word can be spelled from pool using the default
// wildcard. Each pool letter is used at most once.
func WordInSet(word, pool string) bool {
	return NewPool(pool, DefaultWildcard).Spells(word)
}

// Spells reports whether every rune of word can be assigned its own pool slot.
// Exact letters are consumed before wildcards. A wildcard rune inside word is
// a literal and can only take a wildcard slot.
func (p Pool) Spells(word string) bool {
	if word == "" {
		return true
	}
	used := make(map[rune]int, len(word))
	jokers := 0
	n := 0
	for _, r := range word {
		n++
		if n > p.size {
			return false
		}
		if used[r] < p.letters[r] {
			used[r]++
			continue
		}
		if jokers < p.wildcards {
			jokers++
			continue
		}
		return false
	}
	return true
}

// Len returns the number of slots in the pool, wildcards included.
func (p Pool) Len() int {
	return p.size
}

// Wildcards returns the number of wildcard slots.
func (p Pool) Wildcards() int {
	return p.wildcards
}

// Wildcard returns the rune treated as a joker.
func (p Pool) Wildcard() rune {
	return p.wildcard
}

// String returns the pool letters sorted, followed by the wildcard slots.
func (p Pool) String() string {
	runes := make([]rune, 0, p.size)
	for r, count := range p.letters {
		for i := 0; i < count; i++ {
			runes = append(runes, r)
		}
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	var b strings.Builder
	b.WriteString(string(runes))
	for i := 0; i < p.wildcards; i++ {
		b.WriteRune(p.wildcard)
	}
	return b.String()
}
