// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package realtime

import (
	"context"
	"log/slog"
	"time"

	"bukhara/internal/models"
)

// DefaultPollInterval is how often a Poller fingerprints the menu.
const DefaultPollInterval = 30 * time.Second

// Fingerprinter summarizes the current menu data so that any change to
// it produces a different value.
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// Poller detects menu changes on sources that cannot push notifications.
// A fingerprint that differs from the previous one is reported as a
// change of the whole menu.
type Poller struct {
	source   Fingerprinter
	interval time.Duration
	handle   func(context.Context, models.Change)
	last     string
}

// NewPoller creates a Poller. A zero interval selects DefaultPollInterval.
func NewPoller(source Fingerprinter, interval time.Duration, handle func(context.Context, models.Change)) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{source: source, interval: interval, handle: handle}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			slog.Info("menu poller stopped")
			return nil
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}

// Check takes one fingerprint and reports whether it changed. The first
// successful fingerprint only sets the baseline.
func (p *Poller) Check(ctx context.Context) bool {
	fp, err := p.source.Fingerprint(ctx)
	if err != nil {
		slog.Warn("menu poll failed", "error", err)
		return false
	}
	prev := p.last
	p.last = fp
	if prev == "" || prev == fp {
		return false
	}

	p.handle(ctx, models.NewRefresh())
	return true
}
