package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/wordpool/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "wordpool.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListSearches(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Unix(0, 0).UTC()
	for i, letters := range []string{"herti", "dde.", "scat"} {
		source := "words.txt"
		if i == 1 {
			source = "https://example.com/scrabble.txt"
		}
		rec := model.SearchRecord{
			SearchedAt: base.Add(time.Duration(i) * time.Minute),
			Letters:    letters,
			Pattern:    "",
			Wildcard:   ".",
			Source:     source,
			Matches:    i + 1,
			Top:        "word",
		}
		if _, err := st.InsertSearch(ctx, rec); err != nil {
			t.Fatalf("insert search: %v", err)
		}
	}

	all, err := st.ListSearches(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list searches: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 searches, got %d", len(all))
	}
	if all[0].Letters != "scat" || all[2].Letters != "herti" {
		t.Fatalf("expected newest first, got %q..%q", all[0].Letters, all[2].Letters)
	}
	if !all[0].SearchedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("unexpected timestamp: %v", all[0].SearchedAt)
	}

	last, err := st.ListSearches(ctx, model.HistoryConfig{Last: 1})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 1 || last[0].Letters != "scat" {
		t.Fatalf("unexpected last searches: %+v", last)
	}

	bySource, err := st.ListSearches(ctx, model.HistoryConfig{Source: "words.txt"})
	if err != nil {
		t.Fatalf("list by source: %v", err)
	}
	if len(bySource) != 2 {
		t.Fatalf("expected 2 searches for source, got %d", len(bySource))
	}

	since := base.Add(90 * time.Second)
	recent, err := st.ListSearches(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].Matches != 3 {
		t.Fatalf("unexpected recent searches: %+v", recent)
	}
}

func TestClearSearches(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := st.InsertSearch(ctx, model.SearchRecord{SearchedAt: time.Now(), Letters: "ab", Wildcard: "."}); err != nil {
			t.Fatalf("insert search: %v", err)
		}
	}
	n, err := st.ClearSearches(ctx)
	if err != nil {
		t.Fatalf("clear searches: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	left, err := st.ListSearches(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list searches: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected empty history, got %d", len(left))
	}
}
