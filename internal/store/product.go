// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"bukhara/internal/models"
)

// ProductStore reads dishes from the products table. Rows are selected as
// JSON documents so that optional columns added through the table editor
// reach the projector without a schema change here.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productSelect = `SELECT to_jsonb(p) FROM products p`

// decodeProduct scans a JSON row into a Product.
func decodeProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var raw []byte
	if err := scanner.Scan(&raw); err != nil {
		return nil, err
	}
	var p models.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &p, nil
}

// List returns every dish, newest first.
func (s *ProductStore) List(ctx context.Context) ([]models.Product, error) {
	return s.query(ctx, "list products", productSelect+` ORDER BY p.created_at DESC`)
}

// ListByCategory returns the dishes of one category id, newest first.
func (s *ProductStore) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.query(ctx, "list products by category",
		productSelect+` WHERE p.category::text = $1 ORDER BY p.created_at DESC`, category)
}

// FindByID retrieves a dish by id. Returns nil if not found.
func (s *ProductStore) FindByID(ctx context.Context, id string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, productSelect+` WHERE p.id::text = $1`, id)
	p, err := decodeProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

func (s *ProductStore) query(ctx context.Context, op, q string, args ...any) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []models.Product
	for rows.Next() {
		p, err := decodeProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}
