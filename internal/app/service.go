package app

import "context"

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic; implementations contain no
// display concerns.
type ApplicationService interface {
	// ListProducts returns the full catalog for selection lists.
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// GetDashboard returns the headline totals, revenue series, per-product
	// ranking, and recent activity for the given filter.
	GetDashboard(ctx context.Context, req FilterRequest) (*DashboardResult, error)

	// ListSales returns the raw filtered sale rows.
	ListSales(ctx context.Context, req FilterRequest) (*SalesListResult, error)

	// RecordSale appends a sale and decrements stock atomically.
	RecordSale(ctx context.Context, req RecordSaleRequest) (*RecordSaleResult, error)

	// RecordInventoryAddition appends an inventory entry, increments stock,
	// and overwrites the product's cost basis.
	RecordInventoryAddition(ctx context.Context, req RecordAdditionRequest) (*RecordAdditionResult, error)
}
