package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/recordscout"
)

// DefaultModelCacheTTL is how long a fetched model list is reused.
const DefaultModelCacheTTL = time.Hour

var _ recordscout.ModelLister = (*ModelCache)(nil)

// ModelCache implements recordscout.ModelLister by caching the results of
// another lister in the models table.
type ModelCache struct {
	db   *DB
	next recordscout.ModelLister
	ttl  time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewModelCache returns a cache in front of next.
func NewModelCache(db *DB, next recordscout.ModelLister) *ModelCache {
	return &ModelCache{
		db:   db,
		next: next,
		ttl:  DefaultModelCacheTTL,
		Now:  time.Now,
	}
}

// ListModels returns the cached list while it is fresh and not empty,
// otherwise it refreshes the cache.
func (c *ModelCache) ListModels(ctx context.Context, apiKey string) ([]*recordscout.Model, error) {
	models, fetchedAt, err := c.cached(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) > 0 && c.Now().Sub(fetchedAt) < c.ttl {
		return models, nil
	}
	return c.Refresh(ctx, apiKey)
}

// Refresh fetches the list from the wrapped lister and replaces the cache.
// An empty list is returned but not cached.
func (c *ModelCache) Refresh(ctx context.Context, apiKey string) ([]*recordscout.Model, error) {
	models, err := c.next.ListModels(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return models, nil
	}

	tx, err := c.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM models`); err != nil {
		return nil, err
	}
	now := c.Now().UTC().Format(time.RFC3339)
	for i, m := range models {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO models (name, display_name, description, position, fetched_at)
			VALUES (?, ?, ?, ?, ?)
		`, m.Name, m.DisplayName, m.Description, i, now); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return models, nil
}

// cached returns the stored models and the oldest fetch time among them.
func (c *ModelCache) cached(ctx context.Context) ([]*recordscout.Model, time.Time, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, display_name, description, fetched_at
		FROM models
		ORDER BY position
	`)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	var models []*recordscout.Model
	var oldest time.Time
	for rows.Next() {
		var m recordscout.Model
		var fetchedAt string
		if err := rows.Scan(&m.Name, &m.DisplayName, &m.Description, &fetchedAt); err != nil {
			return nil, time.Time{}, err
		}
		t, err := parseRFC3339(fetchedAt, "fetched_at")
		if err != nil {
			return nil, time.Time{}, err
		}
		if oldest.IsZero() || t.Before(oldest) {
			oldest = t
		}
		models = append(models, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, err
	}

	return models, oldest, nil
}
