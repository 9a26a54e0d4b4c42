// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package realtime delivers menu change notifications: a Listener that
// follows the database notification channel, a Poller for sources without
// one, a Hub that fans changes out to in-process subscribers, and a
// WebSocket endpoint that forwards them to browsers.
package realtime

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"bukhara/internal/models"
)

// Hub fans change notifications out to subscribers. The zero value is not
// usable; create one with NewHub.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]func(models.Change)
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]func(models.Change))}
}

// Subscribe registers fn for every change. The returned function removes
// the subscription; calling it more than once is harmless.
func (h *Hub) Subscribe(fn func(models.Change)) (unsubscribe func()) {
	id := uuid.NewString()

	h.mu.Lock()
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

// SubscribeCategory registers fn for changes that touch dishes of one
// category, before or after the change.
func (h *Hub) SubscribeCategory(category string, fn func(models.Change)) (unsubscribe func()) {
	return h.Subscribe(func(c models.Change) {
		if c.Touches(category) {
			fn(c)
		}
	})
}

// Publish delivers c to every subscriber. Subscribers run synchronously
// and outside the lock, so they may subscribe or unsubscribe.
func (h *Hub) Publish(c models.Change) {
	h.mu.RLock()
	fns := make([]func(models.Change), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.RUnlock()

	slog.Debug("menu change published",
		"table", c.Table,
		"op", c.Op,
		"id", c.ID,
		"subscribers", len(fns),
	)
	for _, fn := range fns {
		fn(c)
	}
}

// Len returns the number of active subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
