// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package rest reads the menu from a hosted PostgREST endpoint (the
// Supabase REST API). It serves the same operations as the PostgreSQL
// store so the service can run against either.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bukhara/internal/models"
)

const (
	productsTable   = "products"
	categoriesTable = "category"

	// singleObject asks PostgREST for exactly one row instead of an array.
	singleObject = "application/vnd.pgrst.object+json"
)

// Client is a read-only PostgREST client for the menu tables.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a client for the project at baseURL
// (e.g. "https://xyz.supabase.co"). apiKey is sent both as the apikey
// header and as a bearer token.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rest API error (status %d): %s", e.Status, e.Body)
}

// Dishes returns every product, newest first.
func (c *Client) Dishes(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := c.get(ctx, productsTable, nil, false, &items); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// DishesByCategory returns the products of one category, newest first.
func (c *Client) DishesByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var items []models.Product
	filter := url.Values{"category": {"eq." + category}}
	if err := c.get(ctx, productsTable, filter, false, &items); err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return items, nil
}

// Dish returns one product. Returns nil if not found.
func (c *Client) Dish(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := c.get(ctx, productsTable, url.Values{"id": {"eq." + id}}, true, &p)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return &p, nil
}

// AllCategories returns every category, newest first.
func (c *Client) AllCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := c.get(ctx, categoriesTable, nil, false, &items); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// get performs GET /rest/v1/<table>?select=*&order=created_at.desc plus
// filters and decodes the body into out.
func (c *Client) get(ctx context.Context, table string, filter url.Values, single bool, out any) error {
	q := url.Values{
		"select": {"*"},
		"order":  {"created_at.desc"},
	}
	for k, v := range filter {
		q[k] = v
	}
	endpoint := c.baseURL + "/rest/v1/" + table + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("rest request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if single {
		req.Header.Set("Accept", singleObject)
	} else {
		req.Header.Set("Accept", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("rest http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("rest read body: %w", err)
	}

	slog.Debug("rest query",
		"table", table,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("rest unmarshal: %w", err)
	}
	return nil
}

// isNotFound reports a single-row request that matched nothing. PostgREST
// answers those with 406, newer versions with 404.
func isNotFound(err error) bool {
	se, ok := err.(*StatusError)
	if !ok {
		return false
	}
	return se.Status == http.StatusNotAcceptable || se.Status == http.StatusNotFound
}
