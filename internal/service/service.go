// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service fetches menu rows from a data source and turns them
// into the display model. It is the only layer that talks to both the
// source and the cache.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"bukhara/internal/menu"
	"bukhara/internal/models"
)

// ErrNotFound is returned when a requested dish does not exist.
var ErrNotFound = errors.New("not found")

// Source reads menu rows. Both the PostgreSQL store and the REST client
// implement it. Dish returns nil, nil when the id is unknown.
type Source interface {
	Dishes(ctx context.Context) ([]models.Product, error)
	DishesByCategory(ctx context.Context, category string) ([]models.Product, error)
	Dish(ctx context.Context, id string) (*models.Product, error)
	AllCategories(ctx context.Context) ([]models.Category, error)
}

// MenuCache stores projected menus per language.
type MenuCache interface {
	Get(ctx context.Context, lang menu.Lang) (*menu.Menu, bool)
	Set(ctx context.Context, lang menu.Lang, m *menu.Menu)
	InvalidateLang(ctx context.Context, lang menu.Lang)
	InvalidateAll(ctx context.Context) int
}

// Result is the outcome of one fetch as handed to clients: either data or
// an error message, never both.
type Result[T any] struct {
	Data  *T     `json:"data"`
	Error string `json:"error,omitempty"`
}

// NewResult builds a Result from a value and an error.
func NewResult[T any](data T, err error) Result[T] {
	if err != nil {
		return Result[T]{Error: err.Error()}
	}
	return Result[T]{Data: &data}
}

// Menu serves the display model.
type Menu struct {
	source    Source
	projector *menu.Projector
	cache     MenuCache

	// generation is bumped by every Invalidate. A menu built from rows
	// fetched under an older generation is never left in the cache.
	generation atomic.Uint64
}

// New creates a Menu service. cache may be nil.
func New(source Source, projector *menu.Projector, cache MenuCache) *Menu {
	if projector == nil {
		projector = menu.NewProjector(nil, menu.DefaultLabels(), menu.DefaultPriceLocale)
	}
	return &Menu{source: source, projector: projector, cache: cache}
}

// AllDishes returns every raw dish, newest first.
func (s *Menu) AllDishes(ctx context.Context) ([]models.Product, error) {
	dishes, err := s.source.Dishes(ctx)
	if err != nil {
		slog.Error("fetch dishes failed", "error", err)
		return nil, fmt.Errorf("fetch dishes: %w", err)
	}
	return dishes, nil
}

// DishesByCategory returns the raw dishes of one category id.
func (s *Menu) DishesByCategory(ctx context.Context, category string) ([]models.Product, error) {
	dishes, err := s.source.DishesByCategory(ctx, category)
	if err != nil {
		slog.Error("fetch dishes by category failed", "category", category, "error", err)
		return nil, fmt.Errorf("fetch dishes for category %s: %w", category, err)
	}
	return dishes, nil
}

// DishByID returns one raw dish or ErrNotFound.
func (s *Menu) DishByID(ctx context.Context, id string) (*models.Product, error) {
	d, err := s.source.Dish(ctx, id)
	if err != nil {
		slog.Error("fetch dish failed", "id", id, "error", err)
		return nil, fmt.Errorf("fetch dish %s: %w", id, err)
	}
	if d == nil {
		return nil, fmt.Errorf("dish %s: %w", id, ErrNotFound)
	}
	return d, nil
}

// AllCategories returns every category row, newest first.
func (s *Menu) AllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.source.AllCategories(ctx)
	if err != nil {
		slog.Error("fetch categories failed", "error", err)
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

// GroupedDishes fetches dishes and categories concurrently and groups the
// dishes. A category fetch failure is tolerated: dishes then group under
// their raw category ids. A dish fetch failure is an error.
func (s *Menu) GroupedDishes(ctx context.Context) ([]menu.Group, error) {
	var (
		dishes     []models.Product
		categories []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dishes, err = s.AllDishes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.AllCategories(gctx)
		if err != nil {
			slog.Warn("grouping without category names", "error", err)
			categories = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return menu.GroupDishes(dishes, categories), nil
}

// GroupedMenu returns the grouped, projected menu for lang, from the cache
// when possible.
func (s *Menu) GroupedMenu(ctx context.Context, lang menu.Lang) (*menu.Menu, error) {
	lang = lang.Normalize()
	if s.cache != nil {
		if m, ok := s.cache.Get(ctx, lang); ok {
			return m, nil
		}
	}

	gen := s.generation.Load()
	groups, err := s.GroupedDishes(ctx)
	if err != nil {
		return nil, err
	}

	m := s.projector.Build(groups, lang, menu.ViewCard)
	if s.cache != nil && s.generation.Load() == gen {
		s.cache.Set(ctx, lang, &m)
		// An invalidation that ran between the check and Set would
		// otherwise leave this snapshot behind.
		if s.generation.Load() != gen {
			s.cache.InvalidateLang(ctx, lang)
		}
	}
	return &m, nil
}

// Dishes returns every dish projected for lang in card view.
func (s *Menu) Dishes(ctx context.Context, lang menu.Lang) ([]menu.DisplayDish, error) {
	dishes, err := s.AllDishes(ctx)
	if err != nil {
		return nil, err
	}
	return s.projectAll(dishes, lang), nil
}

// CategoryDishes returns the dishes of one category id projected for lang.
func (s *Menu) CategoryDishes(ctx context.Context, category string, lang menu.Lang) ([]menu.DisplayDish, error) {
	dishes, err := s.DishesByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.projectAll(dishes, lang), nil
}

// Dish returns one dish projected for lang in detail view.
func (s *Menu) Dish(ctx context.Context, id string, lang menu.Lang) (*menu.DisplayDish, error) {
	d, err := s.DishByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := s.projector.Project(d, lang, menu.ViewDetail)
	return &out, nil
}

// Categories returns the category listing for lang, in display order.
func (s *Menu) Categories(ctx context.Context, lang menu.Lang) ([]menu.CategoryView, error) {
	categories, err := s.AllCategories(ctx)
	if err != nil {
		return nil, err
	}
	return menu.Categories(categories, lang), nil
}

func (s *Menu) projectAll(dishes []models.Product, lang menu.Lang) []menu.DisplayDish {
	out := make([]menu.DisplayDish, 0, len(dishes))
	for i := range dishes {
		out = append(out, s.projector.Project(&dishes[i], lang, menu.ViewCard))
	}
	return out
}

// Invalidate drops cached menus after a change notification.
func (s *Menu) Invalidate(ctx context.Context, c models.Change) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	n := s.cache.InvalidateAll(ctx)
	slog.Info("menu cache invalidated",
		"table", c.Table,
		"op", c.Op,
		"id", c.ID,
		"deleted", n,
	)
}

// Fingerprint hashes the current rows of both tables. Any edit to the
// menu changes the value.
func (s *Menu) Fingerprint(ctx context.Context) (string, error) {
	var (
		dishes     []models.Product
		categories []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dishes, err = s.source.Dishes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.source.AllCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("fingerprint menu: %w", err)
	}

	h := sha256.New()
	enc := json.NewEncoder(h)
	if err := enc.Encode(dishes); err != nil {
		return "", fmt.Errorf("fingerprint dishes: %w", err)
	}
	if err := enc.Encode(categories); err != nil {
		return "", fmt.Errorf("fingerprint categories: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
