// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"bukhara/internal/models"
)

// Channel is the notification channel written by the menu table triggers.
const Channel = "menu_changes"

const (
	minBackoff = 500 * time.Millisecond
	maxBackoff = 30 * time.Second
)

// Listener holds a dedicated connection that LISTENs on Channel and hands
// every decoded change to a callback. It reconnects with exponential
// backoff until its context is cancelled.
type Listener struct {
	dsn     string
	channel string
	handle  func(context.Context, models.Change)

	minBackoff time.Duration
	maxBackoff time.Duration

	backoff    time.Duration
	subscribed bool
}

// NewListener creates a Listener for the given DSN. handle runs on the
// listener goroutine, one change at a time.
func NewListener(dsn string, handle func(context.Context, models.Change)) *Listener {
	return &Listener{
		dsn:        dsn,
		channel:    Channel,
		handle:     handle,
		minBackoff: minBackoff,
		maxBackoff: maxBackoff,
	}
}

// Run listens until ctx is cancelled. It returns nil on cancellation.
func (l *Listener) Run(ctx context.Context) error {
	l.backoff = l.minBackoff
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			slog.Info("menu listener stopped")
			return nil
		}

		slog.Warn("menu listener disconnected", "error", err, "retry_in", l.backoff)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.backoff):
		}
		l.backoff = min(l.backoff*2, l.maxBackoff)
	}
}

// onSubscribed runs after every successful LISTEN. Notifications sent
// while the listener was disconnected are lost, so a resubscription is
// reported as a change of the whole menu.
func (l *Listener) onSubscribed(ctx context.Context) {
	l.backoff = l.minBackoff
	if l.subscribed {
		slog.Info("menu listener resubscribed, refreshing menu", "channel", l.channel)
		l.handle(ctx, models.NewRefresh())
		return
	}
	l.subscribed = true
	slog.Info("menu listener started", "channel", l.channel)
}

// listen runs one connection until it fails.
func (l *Listener) listen(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, l.dsn)
	if err != nil {
		return fmt.Errorf("listener connect: %w", err)
	}
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", l.channel, err)
	}
	l.onSubscribed(ctx)

	for {
		n, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		c, err := ParseChange(n.Payload)
		if err != nil {
			slog.Warn("menu listener: bad payload", "payload", n.Payload, "error", err)
			continue
		}
		l.handle(ctx, c)
	}
}

// ParseChange decodes a trigger payload.
func ParseChange(payload string) (models.Change, error) {
	var c models.Change
	if err := json.Unmarshal([]byte(payload), &c); err != nil {
		return c, fmt.Errorf("decode change: %w", err)
	}
	if c.Table == "" || c.Op == "" {
		return c, errors.New("decode change: missing table or op")
	}
	c.ReceivedAt = time.Now().UTC()
	return c, nil
}
