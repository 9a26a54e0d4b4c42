package store

import (
	"context"
	"database/sql"

	"bukhara/internal/models"
)

// Source serves the menu straight from PostgreSQL.
type Source struct {
	Products   *ProductStore
	Categories *CategoryStore
}

// NewSource wires product and category stores over one pool.
func NewSource(db *sql.DB) *Source {
	return &Source{
		Products:   NewProductStore(db),
		Categories: NewCategoryStore(db),
	}
}

func (s *Source) Dishes(ctx context.Context) ([]models.Product, error) {
	return s.Products.List(ctx)
}

func (s *Source) DishesByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.Products.ListByCategory(ctx, category)
}

func (s *Source) Dish(ctx context.Context, id string) (*models.Product, error) {
	return s.Products.FindByID(ctx, id)
}

func (s *Source) AllCategories(ctx context.Context) ([]models.Category, error) {
	return s.Categories.List(ctx)
}
