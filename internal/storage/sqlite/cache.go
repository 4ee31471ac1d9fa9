package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/sanibot/internal/core"
	"github.com/sandevgo/sanibot/pkg/log"
)

// CacheRepo stores response cache entries. The cache owns the working set
// in memory; the repo only persists full snapshots between runs.
type CacheRepo struct {
	db *sql.DB
}

func NewCacheRepo(db *sql.DB) *CacheRepo {
	return &CacheRepo{db: db}
}

var _ core.CacheStore = (*CacheRepo)(nil)

// SaveEntries replaces the persisted snapshot with the given entries.
func (r *CacheRepo) SaveEntries(ctx context.Context, entries []core.CachedEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM response_cache`); err != nil {
		return fmt.Errorf("failed to clear response cache: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO response_cache
		(key, question, intent, answer, facility, created_at, last_access, access_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cache insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		_, err := stmt.ExecContext(ctx, e.Key, e.Question, e.Intent,
			e.Payload.Text, e.Payload.Facility, e.CreatedAt, e.LastAccess, e.AccessCount)
		if err != nil {
			return fmt.Errorf("failed to insert cache entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.FromCtx(ctx).Debug().Int("entries", len(entries)).Msg("response cache persisted")
	return nil
}

// LoadEntries returns every persisted entry. Expiry is the cache's call,
// not the repo's.
func (r *CacheRepo) LoadEntries(ctx context.Context) ([]core.CachedEntry, error) {
	query := `SELECT key, question, intent, answer, facility, created_at, last_access, access_count FROM response_cache`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache entries: %w", err)
	}
	defer rows.Close()

	var entries []core.CachedEntry
	for rows.Next() {
		var e core.CachedEntry
		err := rows.Scan(&e.Key, &e.Question, &e.Intent,
			&e.Payload.Text, &e.Payload.Facility, &e.CreatedAt, &e.LastAccess, &e.AccessCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("entries", len(entries)).Msg("response cache loaded")
	return entries, nil
}
