package matcher

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordInSet(t *testing.T) {
	cases := []struct {
		word string
		pool string
		want bool
	}{
		{"a", "aa", true},
		{"aa", "a", false},
		{"hi", "herti", true},
		{"there", "herti", false},
		{"dude", "herti", false},
		{"dude", "dde.", true},
		{"dude", "d.e.", true},
		{"dude", "de.", false},
		{"", "", true},
		{"", "abc", true},
		{"a", "", false},
		{"abc", "...", true},
		{"abcd", "...", false},
		{"café", "éfac", true},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, WordInSet(tc.word, tc.pool), "WordInSet(%q, %q)", tc.word, tc.pool)
	}
}

func TestWordInSetPigeonhole(t *testing.T) {
	pools := []string{"", "a", "ab", "abc", "zzzz"}
	words := []string{"aa", "abc", "abcd", "zzzzz", "banana"}
	for _, pool := range pools {
		for _, word := range words {
			if len([]rune(word)) <= len([]rune(pool)) {
				continue
			}
			assert.Falsef(t, WordInSet(word, pool), "%q should not fit in %q", word, pool)
		}
	}
}

func TestWordInSetDoesNotMutatePool(t *testing.T) {
	pool := "dde."
	original := strings.Clone(pool)
	first := WordInSet("dude", pool)
	second := WordInSet("dude", pool)
	assert.True(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, original, pool)
}

func TestPoolReuseAcrossWords(t *testing.T) {
	p := NewPool("tea.", DefaultWildcard)
	require.True(t, p.Spells("eat"))
	require.True(t, p.Spells("teas"))
	require.True(t, p.Spells("eat"))
	require.False(t, p.Spells("teats"))
}

func TestWildcardInWordIsLiteral(t *testing.T) {
	assert.True(t, WordInSet("a.", "a."))
	assert.False(t, WordInSet("a.", "ab"))
	assert.False(t, WordInSet(".", "x"))
}

func TestExactLettersBeforeWildcards(t *testing.T) {
	// "ab" must take the real 'a' and leave the joker for 'b'.
	assert.True(t, WordInSet("ab", ".a"))
	assert.True(t, WordInSet("ba", ".a"))
}

func TestCustomWildcard(t *testing.T) {
	p := NewPool("ca?", '?')
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 1, p.Wildcards())
	assert.Equal(t, '?', p.Wildcard())
	assert.True(t, p.Spells("cat"))
	assert.False(t, p.Spells("cart"))
	assert.False(t, NewPool("ca.", '?').Spells("cat"))
}

func TestPoolString(t *testing.T) {
	assert.Equal(t, "aeht..", NewPool("h.eat.", DefaultWildcard).String())
	assert.Equal(t, "", NewPool("", DefaultWildcard).String())
}

func TestZeroPool(t *testing.T) {
	var p Pool
	assert.True(t, p.Spells(""))
	assert.False(t, p.Spells("a"))
}

func TestPoolConcurrentSpells(t *testing.T) {
	pool := NewPool("dde.", DefaultWildcard)
	words := []string{"dude", "dee", "dd", "dudes", "ed"}
	want := []bool{true, true, true, false, true}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(words))
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				for j, word := range words {
					if pool.Spells(word) != want[j] {
						errs <- word
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for word := range errs {
		t.Fatalf("concurrent Spells(%q) disagreed with serial result", word)
	}
}
