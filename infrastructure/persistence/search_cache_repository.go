package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"yt-duration-match/infrastructure/logger"
)

// EnsureSearchCacheSchema creates the table for caching search results if not exists
func EnsureSearchCacheSchema(db *sql.DB) error {
	ddl := `CREATE TABLE IF NOT EXISTS youtube_search_cache (
        query TEXT PRIMARY KEY,
        video_ids JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create youtube_search_cache table: %w", err)
	}
	return nil
}

// SearchCacheRepository persists the query -> video ids mapping in PostgreSQL.
// Ids are stored as a JSONB array to keep their order.
type SearchCacheRepository struct{ db *sql.DB }

func NewSearchCacheRepository(db *sql.DB) *SearchCacheRepository {
	return &SearchCacheRepository{db: db}
}

// Load returns every cached query
func (r *SearchCacheRepository) Load(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT query, video_ids FROM youtube_search_cache`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string][]string)
	for rows.Next() {
		var query string
		var raw []byte
		if err := rows.Scan(&query, &raw); err != nil {
			return nil, err
		}
		var ids []string
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, fmt.Errorf("decode cached ids for %q: %w", query, err)
		}
		entries[query] = ids
	}
	return entries, rows.Err()
}

// Save upserts every entry in one transaction
func (r *SearchCacheRepository) Save(ctx context.Context, entries map[string][]string) (err error) {
	queries := make([]string, 0, len(entries))
	for query := range entries {
		queries = append(queries, query)
	}
	sort.Strings(queries)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.GetLogger().WithField("error", rbErr).Warn("search cache rollback failed")
			}
		}
	}()

	now := time.Now().UTC()
	q := `INSERT INTO youtube_search_cache(query, video_ids, updated_at)
          VALUES ($1,$2,$3)
          ON CONFLICT (query) DO UPDATE SET video_ids=EXCLUDED.video_ids, updated_at=EXCLUDED.updated_at`
	for _, query := range queries {
		raw, mErr := json.Marshal(entries[query])
		if mErr != nil {
			return mErr
		}
		if _, err = tx.ExecContext(ctx, q, query, string(raw), now); err != nil {
			return fmt.Errorf("upsert search cache %q: %w", query, err)
		}
	}
	return tx.Commit()
}
