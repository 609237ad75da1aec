// Package sqlite provides the durable layer of the result cache: a
// single-table SQLite store keyed by normalized query.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/heartmarshall/quickdef/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS lookup_cache (
	query        TEXT PRIMARY KEY,
	content_type TEXT NOT NULL,
	payload      TEXT NOT NULL,
	created_at   INTEGER NOT NULL
);
`

// CacheStore persists successful lookup results. Only successes are
// stored; failures and stale-served results never reach the database.
type CacheStore struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// NewCacheStore opens (or creates) the cache database at path, creating
// parent directories as needed. WAL mode keeps concurrent lookups from
// blocking on writes.
func NewCacheStore(path string, logger *slog.Logger) (*CacheStore, error) {
	if path == "" {
		return nil, errors.New("sqlite cache: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("sqlite cache: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite cache: open %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite cache: init schema: %w", err)
	}

	return &CacheStore{
		db:   db,
		path: path,
		log:  logger.With("adapter", "sqlite_cache"),
	}, nil
}

// Close closes the database connection.
func (s *CacheStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *CacheStore) Path() string {
	return s.path
}

// Get returns the stored result for query and its storage time, or
// (nil, zero, nil) when no row exists.
func (s *CacheStore) Get(ctx context.Context, query string) (*domain.LookupResult, time.Time, error) {
	var (
		payload   string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, created_at FROM lookup_cache WHERE query = ?`, query,
	).Scan(&payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("sqlite cache: get %q: %w", query, err)
	}

	var res domain.LookupResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		// A corrupt row is useless; drop it rather than failing lookups.
		s.log.WarnContext(ctx, "dropping corrupt cache row", slog.String("query", query))
		_, _ = s.db.ExecContext(ctx, `DELETE FROM lookup_cache WHERE query = ?`, query)
		return nil, time.Time{}, nil
	}

	return &res, time.Unix(createdAt, 0), nil
}

// Put upserts the result for its normalized query.
func (s *CacheStore) Put(ctx context.Context, query string, res domain.LookupResult) error {
	res.Stale = false
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("sqlite cache: marshal %q: %w", query, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lookup_cache (query, content_type, payload, created_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(query) DO UPDATE SET
			content_type = excluded.content_type,
			payload      = excluded.payload,
			created_at   = excluded.created_at`,
		query, res.ContentType.String(), string(payload), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("sqlite cache: put %q: %w", query, err)
	}
	return nil
}

// Prune deletes rows older than maxAge and returns how many were removed.
func (s *CacheStore) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).Unix()
	result, err := s.db.ExecContext(ctx, `DELETE FROM lookup_cache WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sqlite cache: prune: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite cache: prune count: %w", err)
	}
	return n, nil
}
