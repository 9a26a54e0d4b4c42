// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// menu.go keeps the projected menu of each language in Valkey. A change
// notification from the data source drops every entry; the next request
// rebuilds it from a fresh fetch.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"bukhara/internal/menu"
)

const (
	// menuKeyPrefix is the Valkey key prefix for cached menus.
	menuKeyPrefix = "menu:"

	// DefaultMenuTTL bounds staleness when a notification is missed.
	DefaultMenuTTL = 10 * time.Minute
)

// MenuCache stores projected menus in Valkey, one key per language.
type MenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMenuCache creates a menu cache backed by the given Valkey client.
func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	if ttl == 0 {
		ttl = DefaultMenuTTL
	}
	return &MenuCache{client: client, ttl: ttl}
}

// MenuKey returns the cache key for a language.
func MenuKey(lang menu.Lang) string {
	return menuKeyPrefix + string(lang.Normalize())
}

// Get returns the cached menu for lang. Any error counts as a miss.
func (mc *MenuCache) Get(ctx context.Context, lang menu.Lang) (*menu.Menu, bool) {
	key := MenuKey(lang)
	val, err := mc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("menu cache get error", "key", key, "error", err)
		return nil, false
	}

	var m menu.Menu
	if err := json.Unmarshal(val, &m); err != nil {
		slog.Warn("menu cache decode error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("menu cache hit", "key", key)
	return &m, true
}

// Set stores the menu for lang with the configured TTL.
func (mc *MenuCache) Set(ctx context.Context, lang menu.Lang, m *menu.Menu) {
	key := MenuKey(lang)
	data, err := json.Marshal(m)
	if err != nil {
		slog.Warn("menu cache encode error", "key", key, "error", err)
		return
	}
	if err := mc.client.Set(ctx, key, data, mc.ttl).Err(); err != nil {
		slog.Warn("menu cache set error", "key", key, "error", err)
	}
}

// InvalidateLang removes the cached menu of one language.
func (mc *MenuCache) InvalidateLang(ctx context.Context, lang menu.Lang) {
	key := MenuKey(lang)
	if err := mc.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("menu cache invalidate error", "key", key, "error", err)
		return
	}
	slog.Debug("menu cache invalidated", "key", key)
}

// InvalidateAll removes every cached menu by scanning for the prefix.
// Returns the number of deleted keys.
func (mc *MenuCache) InvalidateAll(ctx context.Context) int {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := mc.client.Scan(ctx, cursor, menuKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("menu cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := mc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("menu cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("menu cache cleared", "deleted", deleted)
	}
	return deleted
}
