package domain

import (
	"context"
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	SalePrice   *float64  `json:"salePrice"`
	Image       string    `json:"image"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// --- Interfaces ---

// CatalogRepository provides the full product catalog in catalog order.
type CatalogRepository interface {
	GetCatalog(ctx context.Context) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
}

type SearchUsecase interface {
	Search(ctx context.Context, query string) ([]Product, error)
}
