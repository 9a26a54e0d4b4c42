// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"bukhara/internal/menu"
	"bukhara/internal/middleware"
	"bukhara/internal/models"
	"bukhara/internal/service"
)

// fakeService returns canned values and records the language it saw.
type fakeService struct {
	err      error
	lastLang menu.Lang
	lastID   string
}

func (f *fakeService) GroupedMenu(_ context.Context, lang menu.Lang) (*menu.Menu, error) {
	f.lastLang = lang
	if f.err != nil {
		return nil, f.err
	}
	return &menu.Menu{
		Lang: lang,
		Sections: []menu.Section{{
			Key: menu.KeySalads, Label: "Salatlar", Title: "Салаты", Anchor: "salads", Priority: 1,
			Dishes: []menu.DisplayDish{{ID: "1", Name: "Салат Цезарь"}},
		}},
		DishCount: 1,
	}, nil
}

func (f *fakeService) Categories(_ context.Context, lang menu.Lang) ([]menu.CategoryView, error) {
	f.lastLang = lang
	if f.err != nil {
		return nil, f.err
	}
	return []menu.CategoryView{{ID: "2", Label: "Salatlar", Title: "Salads", Key: menu.KeySalads, Priority: 1}}, nil
}

func (f *fakeService) CategoryDishes(_ context.Context, category string, lang menu.Lang) ([]menu.DisplayDish, error) {
	f.lastLang, f.lastID = lang, category
	if f.err != nil {
		return nil, f.err
	}
	return []menu.DisplayDish{}, nil
}

func (f *fakeService) Dishes(_ context.Context, lang menu.Lang) ([]menu.DisplayDish, error) {
	f.lastLang = lang
	if f.err != nil {
		return nil, f.err
	}
	return []menu.DisplayDish{{ID: "1", Name: "Sezar saloti"}, {ID: "3", Name: "Ko'k choy"}}, nil
}

func (f *fakeService) Dish(_ context.Context, id string, lang menu.Lang) (*menu.DisplayDish, error) {
	f.lastLang, f.lastID = lang, id
	if f.err != nil {
		return nil, f.err
	}
	if id != "1" {
		return nil, fmt.Errorf("dish %s: %w", id, service.ErrNotFound)
	}
	return &menu.DisplayDish{ID: "1", Name: "Caesar salad", IsSet: true, SetItems: []string{"a", "b", "c", "d"}}, nil
}

type fakeChangeLog struct {
	entries []models.CacheLogEntry
	limit   int
}

func (f *fakeChangeLog) RecentEntries(_ context.Context, limit int) ([]models.CacheLogEntry, error) {
	f.limit = limit
	return f.entries, nil
}

// newTestRouter mounts the menu handlers the way the router does.
func newTestRouter(h *Menu) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Language(menu.UZ))
	r.Get("/api/menu", h.GroupedMenu)
	r.Get("/api/categories", h.Categories)
	r.Get("/api/categories/{category}/dishes", h.CategoryDishes)
	r.Get("/api/dishes", h.Dishes)
	r.Get("/api/dishes/{id}", h.Dish)
	r.Get("/api/labels", h.Labels)
	r.Get("/api/changes", h.Changes)
	return r
}

type testEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func doRequest(t *testing.T, h http.Handler, path, acceptLang string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if acceptLang != "" {
		req.Header.Set("Accept-Language", acceptLang)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env testEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s: decode body %q: %v", path, rr.Body.String(), err)
	}
	return rr, env
}

func TestGroupedMenuHandler(t *testing.T) {
	svc := &fakeService{}
	h := newTestRouter(NewMenu(svc, menu.DefaultLabels(), nil))

	rr, env := doRequest(t, h, "/api/menu?lang=ru", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %q", ct)
	}
	if svc.lastLang != menu.RU {
		t.Errorf("service saw lang %q, want ru", svc.lastLang)
	}

	var m menu.Menu
	if err := json.Unmarshal(env.Data, &m); err != nil {
		t.Fatalf("decode menu: %v", err)
	}
	if len(m.Sections) != 1 || m.Sections[0].Title != "Салаты" {
		t.Errorf("unexpected sections %+v", m.Sections)
	}
	if env.Error != "" {
		t.Errorf("unexpected error %q", env.Error)
	}
}

func TestGroupedMenuHandlerFetchError(t *testing.T) {
	svc := &fakeService{err: errors.New("connection refused")}
	h := newTestRouter(NewMenu(svc, menu.DefaultLabels(), nil))

	tests := []struct {
		accept string
		want   string
	}{
		{"ru", "Не удалось загрузить меню"},
		{"en-US", "Failed to load the menu"},
		{"", "Menyuni yuklab bo'lmadi"},
	}
	for _, tt := range tests {
		rr, env := doRequest(t, h, "/api/menu", tt.accept)
		if rr.Code != http.StatusBadGateway {
			t.Errorf("%q: status got %d, want 502", tt.accept, rr.Code)
		}
		if string(env.Data) != "null" {
			t.Errorf("%q: data should be null, got %s", tt.accept, env.Data)
		}
		if env.Error != tt.want {
			t.Errorf("%q: error got %q, want %q", tt.accept, env.Error, tt.want)
		}
	}
}

func TestDishHandler(t *testing.T) {
	svc := &fakeService{}
	h := newTestRouter(NewMenu(svc, menu.DefaultLabels(), nil))

	t.Run("found", func(t *testing.T) {
		rr, env := doRequest(t, h, "/api/dishes/1?lang=en", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d", rr.Code)
		}
		var d menu.DisplayDish
		if err := json.Unmarshal(env.Data, &d); err != nil {
			t.Fatalf("decode dish: %v", err)
		}
		if d.Name != "Caesar salad" || len(d.SetItems) != 4 {
			t.Errorf("unexpected dish %+v", d)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rr, env := doRequest(t, h, "/api/dishes/99?lang=ru", "")
		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
		if env.Error != "Блюдо не найдено" {
			t.Errorf("error: got %q", env.Error)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		rr, _ := doRequest(t, h, "/api/dishes/1;drop", "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rr.Code)
		}
	})
}

func TestCategoryHandlers(t *testing.T) {
	svc := &fakeService{}
	h := newTestRouter(NewMenu(svc, menu.DefaultLabels(), nil))

	rr, env := doRequest(t, h, "/api/categories/2/dishes", "ru-RU")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if svc.lastID != "2" || svc.lastLang != menu.RU {
		t.Errorf("service saw category %q lang %q", svc.lastID, svc.lastLang)
	}
	if string(env.Data) != "[]" {
		t.Errorf("empty category should serve [], got %s", env.Data)
	}

	rr, env = doRequest(t, h, "/api/categories?lang=en", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var views []menu.CategoryView
	if err := json.Unmarshal(env.Data, &views); err != nil {
		t.Fatalf("decode categories: %v", err)
	}
	if len(views) != 1 || views[0].Title != "Salads" {
		t.Errorf("unexpected categories %+v", views)
	}
}

func TestDishesHandler(t *testing.T) {
	h := newTestRouter(NewMenu(&fakeService{}, menu.DefaultLabels(), nil))

	_, env := doRequest(t, h, "/api/dishes", "")
	var dishes []menu.DisplayDish
	if err := json.Unmarshal(env.Data, &dishes); err != nil {
		t.Fatalf("decode dishes: %v", err)
	}
	if len(dishes) != 2 {
		t.Errorf("got %d dishes, want 2", len(dishes))
	}
}

func TestLabelsHandler(t *testing.T) {
	h := newTestRouter(NewMenu(&fakeService{}, menu.DefaultLabels(), nil))

	rr, env := doRequest(t, h, "/api/labels?lang=ru", "")
	var labels map[string]string
	if err := json.Unmarshal(env.Data, &labels); err != nil {
		t.Fatalf("decode labels: %v", err)
	}
	if labels["persons"] != "чел." || labels["currency"] != "сум" {
		t.Errorf("unexpected labels %v", labels)
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Error("labels should be cacheable")
	}
	if c := rr.Result().Cookies(); len(c) != 1 || c[0].Value != "ru" {
		t.Errorf("lang query should be remembered, cookies %v", c)
	}
}

func TestChangesHandler(t *testing.T) {
	t.Run("no change log", func(t *testing.T) {
		h := newTestRouter(NewMenu(&fakeService{}, menu.DefaultLabels(), nil))
		rr, _ := doRequest(t, h, "/api/changes", "")
		if rr.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rr.Code)
		}
	})

	t.Run("lists entries", func(t *testing.T) {
		log := &fakeChangeLog{entries: []models.CacheLogEntry{
			{ID: 2, EntityType: "products", EntityID: "7", Action: "UPDATE", InvalidatedAt: time.Now()},
		}}
		h := newTestRouter(NewMenu(&fakeService{}, menu.DefaultLabels(), log))

		rr, env := doRequest(t, h, "/api/changes?limit=5", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("status: got %d", rr.Code)
		}
		if log.limit != 5 {
			t.Errorf("limit: got %d, want 5", log.limit)
		}
		var entries []models.CacheLogEntry
		if err := json.Unmarshal(env.Data, &entries); err != nil {
			t.Fatalf("decode entries: %v", err)
		}
		if len(entries) != 1 || entries[0].EntityID != "7" {
			t.Errorf("unexpected entries %+v", entries)
		}
	})

	t.Run("empty log serves empty list", func(t *testing.T) {
		h := newTestRouter(NewMenu(&fakeService{}, menu.DefaultLabels(), &fakeChangeLog{}))
		_, env := doRequest(t, h, "/api/changes", "")
		if string(env.Data) != "[]" {
			t.Errorf("data: got %s, want []", env.Data)
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		h := newTestRouter(NewMenu(&fakeService{}, menu.DefaultLabels(), &fakeChangeLog{}))
		rr, _ := doRequest(t, h, "/api/changes?limit=all", "")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rr.Code)
		}
	})
}
