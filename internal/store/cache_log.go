// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache_log.go records menu cache invalidations in the database. Each entry
// captures which table row changed and how, so a stale menu can be traced
// back to the notification that should have refreshed it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"bukhara/internal/models"
)

// CacheLogStore handles cache invalidation log operations.
type CacheLogStore struct {
	db *sql.DB
}

// NewCacheLogStore creates a new CacheLogStore.
func NewCacheLogStore(db *sql.DB) *CacheLogStore {
	return &CacheLogStore{db: db}
}

// Log records the invalidation caused by a change notification. Failures
// are logged and otherwise ignored.
func (s *CacheLogStore) Log(ctx context.Context, c models.Change) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_invalidation_log (entity_type, entity_id, action)
		VALUES ($1, $2, $3)
	`, c.Table, c.ID, c.Op)
	if err != nil {
		slog.Warn("failed to log cache invalidation",
			"table", c.Table,
			"id", c.ID,
			"op", c.Op,
			"error", err,
		)
		return
	}
	slog.Debug("cache invalidation logged", "table", c.Table, "id", c.ID, "op", c.Op)
}

// RecentEntries returns the most recent invalidations, newest first.
func (s *CacheLogStore) RecentEntries(ctx context.Context, limit int) ([]models.CacheLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entity_type, entity_id, action, invalidated_at
		FROM cache_invalidation_log
		ORDER BY invalidated_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent cache log: %w", err)
	}
	defer rows.Close()

	var entries []models.CacheLogEntry
	for rows.Next() {
		var e models.CacheLogEntry
		if err := rows.Scan(&e.ID, &e.EntityType, &e.EntityID, &e.Action, &e.InvalidatedAt); err != nil {
			return nil, fmt.Errorf("scan cache log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes all but the newest keep entries.
func (s *CacheLogStore) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM cache_invalidation_log
		WHERE id NOT IN (
			SELECT id FROM cache_invalidation_log
			ORDER BY invalidated_at DESC, id DESC
			LIMIT $1
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune cache log: %w", err)
	}
	return res.RowsAffected()
}
