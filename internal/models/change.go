package models

import "time"

// Change is a row-level change notification from the menu tables.
type Change struct {
	Table       string    `json:"table"`
	Op          string    `json:"op"`
	ID          string    `json:"id,omitempty"`
	Category    string    `json:"category,omitempty"`
	OldCategory string    `json:"old_category,omitempty"`
	ReceivedAt  time.Time `json:"received_at"`
}

// Touches reports whether the change affects dishes of the given category.
// Category table changes affect every category.
func (c Change) Touches(category string) bool {
	if c.Table != "products" {
		return true
	}
	return c.Category == category || c.OldCategory == category
}

// NewRefresh returns a change covering the whole menu, for sources that
// cannot say which rows changed.
func NewRefresh() Change {
	return Change{Table: "menu", Op: "REFRESH", ReceivedAt: time.Now().UTC()}
}

// CacheLogEntry is one recorded menu cache invalidation.
type CacheLogEntry struct {
	ID            int64     `json:"id"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Action        string    `json:"action"`
	InvalidatedAt time.Time `json:"invalidated_at"`
}
