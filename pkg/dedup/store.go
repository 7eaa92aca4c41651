package dedup

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/howeih/url-normalize/internal/utils"
)

// Store is a persistent canonical-form registry backed by SQLite.
type Store struct {
	sql *sql.DB
}

// Open opens the registry at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS seen_urls (
  id            INTEGER PRIMARY KEY,
  url           TEXT NOT NULL UNIQUE,
  hits          INTEGER NOT NULL DEFAULT 1,
  first_seen_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  last_seen_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_seen_urls_last_seen ON seen_urls(last_seen_at);
	`); err != nil {
		return nil, err
	}
	return &Store{sql: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sql == nil {
		return nil
	}
	return s.sql.Close()
}

// Add records canonical and reports whether this was its first sighting.
// Repeat sightings bump the hit counter and last_seen_at.
func (s *Store) Add(ctx context.Context, canonical string) (bool, error) {
	res, err := s.sql.ExecContext(ctx, `INSERT INTO seen_urls(url) VALUES(?) ON CONFLICT(url) DO NOTHING`, canonical)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		utils.Log.WithField("url", canonical).Debug("recorded new canonical url")
		return true, nil
	}
	_, err = s.sql.ExecContext(ctx, `UPDATE seen_urls SET hits = hits + 1, last_seen_at = CURRENT_TIMESTAMP WHERE url = ?`, canonical)
	return false, err
}

// Hits returns how many times canonical has been recorded, zero when never.
func (s *Store) Hits(ctx context.Context, canonical string) (int64, error) {
	var hits int64
	err := s.sql.QueryRowContext(ctx, `SELECT hits FROM seen_urls WHERE url = ?`, canonical).Scan(&hits)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return hits, nil
}

// Count returns the number of distinct canonical forms recorded.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen_urls`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// All returns every recorded canonical form in sorted order.
func (s *Store) All(ctx context.Context) ([]string, error) {
	rows, err := s.sql.QueryContext(ctx, `SELECT url FROM seen_urls ORDER BY url`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}
