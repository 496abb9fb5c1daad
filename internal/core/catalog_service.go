package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CatalogService is the read/seed surface of the product catalog. It never
// touches stock_quantity or last_cost_per_unit after creation; those move
// only through the StockReconciler.
type CatalogService interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	GetProductByName(ctx context.Context, name string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	// CreateProduct registers a catalog entry with its opening stock and
	// cost basis. Intended for seeding; initialStock may be zero.
	CreateProduct(ctx context.Context, name string, price, initialCost decimal.Decimal, initialStock int64) (*Product, error)
}

type catalogService struct {
	repo Repository
}

func NewCatalogService(repo Repository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *catalogService) GetProductByName(ctx context.Context, name string) (*Product, error) {
	return s.repo.GetProductByName(ctx, name)
}

func (s *catalogService) ListProducts(ctx context.Context) ([]Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *catalogService) CreateProduct(ctx context.Context, name string, price, initialCost decimal.Decimal, initialStock int64) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("product name must not be empty: %w", ErrInvalidArgument)
	}
	if price.Sign() <= 0 {
		return nil, fmt.Errorf("price must be positive, got %s: %w", price, ErrInvalidArgument)
	}
	if initialCost.Sign() <= 0 {
		return nil, fmt.Errorf("initial cost must be positive, got %s: %w", initialCost, ErrInvalidArgument)
	}
	if initialStock < 0 {
		return nil, fmt.Errorf("initial stock must not be negative, got %d: %w", initialStock, ErrInvalidArgument)
	}
	return s.repo.CreateProduct(ctx, name, price, initialCost, initialStock)
}
