// Package model defines shared data structures.
package model

import "time"

// Config defines search settings.
type Config struct {
	Dict     string
	Wildcard rune
	FoldCase bool
	Clean    bool
	Limit    int
	Columns  bool
	History  bool
}

// HistoryConfig defines filters for listing past searches.
type HistoryConfig struct {
	Source string
	Since  *time.Time
	Last   int
}

// SearchRecord captures one saved search.
type SearchRecord struct {
	ID         int64
	SearchedAt time.Time
	Letters    string
	Pattern    string
	Wildcard   string
	Source     string
	Matches    int
	Top        string
}
