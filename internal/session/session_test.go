package session

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wordpool/internal/matcher"
)

func TestSessionSearchAndFilter(t *testing.T) {
	s := New([]string{"hi", "there", "dude", "her", "tie"}, matcher.DefaultWildcard)
	require.Equal(t, 5, s.Size())
	require.Empty(t, s.Last())

	got := s.Search("herti")
	assert.Equal(t, []string{"tie", "her", "hi"}, got)
	assert.Equal(t, "herti", s.Letters())
	assert.Equal(t, 5, s.Pool().Len())

	filtered := s.Filter(regexp.MustCompile("^h"))
	assert.Equal(t, []string{"her", "hi"}, filtered)
	assert.Equal(t, []string{"tie", "her", "hi"}, s.Last())
}

func TestSessionSearchReplacesLast(t *testing.T) {
	s := New([]string{"a", "b"}, '?')
	assert.Equal(t, '?', s.Wildcard())
	assert.Equal(t, []string{"a"}, s.Search("a"))
	assert.Equal(t, []string{"b", "a"}, s.Search("?"))
	assert.Equal(t, []string{"b", "a"}, s.Last())
	assert.Empty(t, s.Search(""))
}
