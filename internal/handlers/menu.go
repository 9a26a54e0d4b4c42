// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"bukhara/internal/menu"
	"bukhara/internal/middleware"
	"bukhara/internal/models"
	"bukhara/internal/service"
)

// MenuService is the part of the menu service the API serves.
type MenuService interface {
	GroupedMenu(ctx context.Context, lang menu.Lang) (*menu.Menu, error)
	Categories(ctx context.Context, lang menu.Lang) ([]menu.CategoryView, error)
	CategoryDishes(ctx context.Context, category string, lang menu.Lang) ([]menu.DisplayDish, error)
	Dishes(ctx context.Context, lang menu.Lang) ([]menu.DisplayDish, error)
	Dish(ctx context.Context, id string, lang menu.Lang) (*menu.DisplayDish, error)
}

// ChangeLog lists recent menu invalidations.
type ChangeLog interface {
	RecentEntries(ctx context.Context, limit int) ([]models.CacheLogEntry, error)
}

// Menu groups the read-only menu API handlers. Every handler answers in
// the language resolved by middleware.Language.
type Menu struct {
	svc     MenuService
	labels  menu.Labels
	changes ChangeLog
}

// NewMenu creates the menu handlers. changes may be nil when the data
// source keeps no invalidation log.
func NewMenu(svc MenuService, labels menu.Labels, changes ChangeLog) *Menu {
	return &Menu{svc: svc, labels: labels, changes: changes}
}

// GroupedMenu serves GET /api/menu: the whole menu grouped into sections.
func (h *Menu) GroupedMenu(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromContext(r.Context())
	m, err := h.svc.GroupedMenu(r.Context(), lang)
	if err != nil {
		h.fetchFailed(w, r, err)
		return
	}
	writeData(w, m)
}

// Categories serves GET /api/categories.
func (h *Menu) Categories(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromContext(r.Context())
	views, err := h.svc.Categories(r.Context(), lang)
	if err != nil {
		h.fetchFailed(w, r, err)
		return
	}
	writeData(w, views)
}

// CategoryDishes serves GET /api/categories/{category}/dishes.
func (h *Menu) CategoryDishes(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(chi.URLParam(r, "category"))
	if msg := validateID(category); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	lang := middleware.LangFromContext(r.Context())
	dishes, err := h.svc.CategoryDishes(r.Context(), category, lang)
	if err != nil {
		h.fetchFailed(w, r, err)
		return
	}
	writeData(w, dishes)
}

// Dishes serves GET /api/dishes: every dish as a flat list.
func (h *Menu) Dishes(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromContext(r.Context())
	dishes, err := h.svc.Dishes(r.Context(), lang)
	if err != nil {
		h.fetchFailed(w, r, err)
		return
	}
	writeData(w, dishes)
}

// Dish serves GET /api/dishes/{id} with the detail view of one dish.
func (h *Menu) Dish(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if msg := validateID(id); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	lang := middleware.LangFromContext(r.Context())
	d, err := h.svc.Dish(r.Context(), id, lang)
	if errors.Is(err, service.ErrNotFound) {
		writeError(w, http.StatusNotFound, h.labels.NotFound.Get(lang))
		return
	}
	if err != nil {
		h.fetchFailed(w, r, err)
		return
	}
	writeData(w, d)
}

// Labels serves GET /api/labels: the static interface strings.
func (h *Menu) Labels(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LangFromContext(r.Context())
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeData(w, h.labels.Localize(lang))
}

// Changes serves GET /api/changes: the most recent menu invalidations.
func (h *Menu) Changes(w http.ResponseWriter, r *http.Request) {
	if h.changes == nil {
		writeError(w, http.StatusNotFound, "change log is not available for this data source")
		return
	}

	limit, msg := parseLimit(r.URL.Query().Get("limit"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	entries, err := h.changes.RecentEntries(r.Context(), limit)
	if err != nil {
		h.fetchFailed(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.CacheLogEntry{}
	}
	writeData(w, entries)
}

// fetchFailed answers a data source failure with the localized load error.
// The underlying error is logged, not shown.
func (h *Menu) fetchFailed(w http.ResponseWriter, r *http.Request, err error) {
	lang := middleware.LangFromContext(r.Context())
	slog.Error("menu request failed",
		"path", r.URL.Path,
		"lang", lang,
		"error", err,
	)
	writeError(w, http.StatusBadGateway, h.labels.LoadError.Get(lang))
}
