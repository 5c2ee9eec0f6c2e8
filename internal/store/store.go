// Package store handles SQLite persistence of search history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wordpool/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps SQLite access for search history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY,
			searched_at TEXT NOT NULL,
			letters TEXT NOT NULL,
			pattern TEXT NOT NULL,
			wildcard TEXT NOT NULL,
			source TEXT NOT NULL,
			matches INTEGER NOT NULL,
			top TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_searches_searched_at ON searches(searched_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSearch stores a search and returns its id.
func (s *Store) InsertSearch(ctx context.Context, rec model.SearchRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (searched_at, letters, pattern, wildcard, source, matches, top)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SearchedAt.UTC().Format(timeLayout),
		rec.Letters,
		rec.Pattern,
		rec.Wildcard,
		rec.Source,
		rec.Matches,
		rec.Top,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListSearches returns saved searches, newest first.
func (s *Store) ListSearches(ctx context.Context, cfg model.HistoryConfig) ([]model.SearchRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, cfg.Source)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "searched_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	query := fmt.Sprintf(`SELECT id, searched_at, letters, pattern, wildcard, source, matches, top
		FROM searches
		WHERE %s
		ORDER BY searched_at DESC, id DESC`, strings.Join(clauses, " AND "))
	if cfg.Last > 0 {
		query += " LIMIT ?"
		args = append(args, cfg.Last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.SearchRecord
	for rows.Next() {
		var rec model.SearchRecord
		var searchedAt string
		if err := rows.Scan(&rec.ID, &searchedAt, &rec.Letters, &rec.Pattern, &rec.Wildcard, &rec.Source, &rec.Matches, &rec.Top); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, searchedAt)
		if err != nil {
			return nil, err
		}
		rec.SearchedAt = parsed
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ClearSearches deletes all saved searches and reports how many were removed.
func (s *Store) ClearSearches(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM searches`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
