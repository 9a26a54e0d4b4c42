// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given
// status and body and hands every request to inspect.
func newTestServer(t *testing.T, statusCode int, body string, inspect func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDishes_Success(t *testing.T) {
	var got *http.Request
	srv := newTestServer(t, http.StatusOK,
		`[{"id": 2, "category": 1, "name_ru": "Цезарь", "price": "45000", "new": true},
		  {"id": 1, "category": "1", "name": "Osh", "items": ["a", "b"]}]`,
		func(r *http.Request) { got = r })

	items, err := NewClient(srv.URL+"/", "anon-key").Dishes(context.Background())
	if err != nil {
		t.Fatalf("Dishes: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Field("name_ru") != "Цезарь" || !items[0].Has("new") {
		t.Errorf("first item decoded wrong: %+v", items[0])
	}
	if len(items[1].List("items")) != 2 {
		t.Errorf("items list lost: %v", items[1].List("items"))
	}

	if got.URL.Path != "/rest/v1/products" {
		t.Errorf("path = %q", got.URL.Path)
	}
	if got.URL.Query().Get("select") != "*" || got.URL.Query().Get("order") != "created_at.desc" {
		t.Errorf("query = %q", got.URL.RawQuery)
	}
	if got.Header.Get("apikey") != "anon-key" {
		t.Errorf("apikey header = %q", got.Header.Get("apikey"))
	}
	if got.Header.Get("Authorization") != "Bearer anon-key" {
		t.Errorf("authorization header = %q", got.Header.Get("Authorization"))
	}
}

func TestDishesByCategory_Filter(t *testing.T) {
	var query string
	srv := newTestServer(t, http.StatusOK, `[]`, func(r *http.Request) { query = r.URL.Query().Get("category") })

	items, err := NewClient(srv.URL, "k").DishesByCategory(context.Background(), "7")
	if err != nil {
		t.Fatalf("DishesByCategory: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
	if query != "eq.7" {
		t.Errorf("category filter = %q, want %q", query, "eq.7")
	}
}

func TestDish_SingleObject(t *testing.T) {
	var accept, id string
	srv := newTestServer(t, http.StatusOK, `{"id": 7, "name": "Mastava"}`, func(r *http.Request) {
		accept = r.Header.Get("Accept")
		id = r.URL.Query().Get("id")
	})

	p, err := NewClient(srv.URL, "k").Dish(context.Background(), "7")
	if err != nil {
		t.Fatalf("Dish: %v", err)
	}
	if p == nil || p.Field("name") != "Mastava" {
		t.Fatalf("unexpected dish %+v", p)
	}
	if accept != singleObject {
		t.Errorf("Accept = %q, want %q", accept, singleObject)
	}
	if id != "eq.7" {
		t.Errorf("id filter = %q", id)
	}
}

func TestDish_NotFound(t *testing.T) {
	for _, status := range []int{http.StatusNotAcceptable, http.StatusNotFound} {
		srv := newTestServer(t, status, `{"code":"PGRST116","message":"0 rows"}`, nil)

		p, err := NewClient(srv.URL, "k").Dish(context.Background(), "404")
		if err != nil {
			t.Errorf("status %d: unexpected error %v", status, err)
		}
		if p != nil {
			t.Errorf("status %d: expected nil dish", status)
		}
	}
}

func TestAllCategories_Success(t *testing.T) {
	srv := newTestServer(t, http.StatusOK,
		`[{"id": 2, "name": "Salatlar", "name_ru": "Салаты", "name_en": null, "created_at": "2026-02-01T09:00:00+00:00"}]`,
		nil)

	items, err := NewClient(srv.URL, "k").AllCategories(context.Background())
	if err != nil {
		t.Fatalf("AllCategories: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d categories", len(items))
	}
	c := items[0]
	if c.ID.String() != "2" || c.Label() != "Salatlar" || c.NameEn.Valid {
		t.Errorf("decoded wrong: %+v", c)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := newTestServer(t, http.StatusUnauthorized, `{"message":"Invalid API key"}`, nil)

	_, err := NewClient(srv.URL, "bad").Dishes(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusUnauthorized {
		t.Errorf("expected StatusError 401, got %v", err)
	}
	if !strings.Contains(err.Error(), "list products") {
		t.Errorf("error should name the operation: %v", err)
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{not json`, nil)

	_, err := NewClient(srv.URL, "k").AllCategories(context.Background())
	if err == nil || !strings.Contains(err.Error(), "rest unmarshal") {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `[]`, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewClient(srv.URL, "k").Dishes(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}
