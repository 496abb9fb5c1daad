package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog record and the single source of truth for what a
// product currently looks like: identity, selling price, cost basis, and
// on-hand stock. StockQuantity and CostBasis are mutated only through the
// StockReconciler.
type Product struct {
	ID            int64           `json:"product_id"`
	Name          string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	CostBasis     decimal.Decimal `json:"last_cost_per_unit"`
	StockQuantity int64           `json:"stock_quantity"`
}

// SaleEntry is an immutable ledger record of one sale.
type SaleEntry struct {
	ID        int64     `json:"sale_id"`
	ProductID int64     `json:"product_id"`
	SaleDate  time.Time `json:"sale_date"`
	Quantity  int64     `json:"quantity"`
}

// InventoryEntry is an immutable ledger record of one stock replenishment.
// CostPerUnit becomes the product's cost basis when the entry is recorded.
type InventoryEntry struct {
	ID            int64           `json:"inventory_id"`
	ProductID     int64           `json:"product_id"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	QuantityAdded int64           `json:"quantity_added"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
}

// SaleRecord is a sale entry joined with its product's current catalog
// fields. All aggregations are computed over a slice of these rows, fetched
// in one query so every figure in a report reflects the same snapshot.
// UnitPrice and CostBasis are the product's current values, not the values
// in effect when the sale happened — there is no price or cost history.
type SaleRecord struct {
	SaleID      int64           `json:"sale_id"`
	SaleDate    time.Time       `json:"sale_date"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	CostBasis   decimal.Decimal `json:"cost_price"`
}

// Revenue is quantity × current unit price.
func (r SaleRecord) Revenue() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(r.Quantity))
}

// Profit is quantity × (current unit price − current cost basis).
func (r SaleRecord) Profit() decimal.Decimal {
	return r.UnitPrice.Sub(r.CostBasis).Mul(decimal.NewFromInt(r.Quantity))
}

// AllProducts is the sentinel product-name filter value meaning "no filter".
const AllProducts = "All Products"

// SalesFilter narrows sales queries by an inclusive date range and/or a
// single product name. Empty fields impose no bound; ProductName equal to
// AllProducts is treated the same as empty.
type SalesFilter struct {
	StartDate   string // YYYY-MM-DD, inclusive
	EndDate     string // YYYY-MM-DD, inclusive
	ProductName string
}

// FiltersProduct reports whether the filter restricts to a single product.
func (f SalesFilter) FiltersProduct() bool {
	return f.ProductName != "" && f.ProductName != AllProducts
}

// ProductSummary is one row of the per-product sales ranking.
type ProductSummary struct {
	ProductName       string          `json:"product_name"`
	TotalQuantitySold int64           `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
}

// DailyRevenue is one point of the revenue-over-time series.
type DailyRevenue struct {
	Date         time.Time       `json:"sale_date"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// SaleWithProfit is a recent sale annotated with its profit figure and
// three-way classification.
type SaleWithProfit struct {
	SaleID       int64           `json:"sale_id"`
	SaleDate     time.Time       `json:"sale_date"`
	ProductName  string          `json:"product_name"`
	Quantity     int64           `json:"quantity"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Profit       decimal.Decimal `json:"profit"`
	Status       ProfitStatus    `json:"profit_status"`
}

// InventoryAdditionView is a recent inventory addition with its total cost.
type InventoryAdditionView struct {
	InventoryID   int64           `json:"inventory_id"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	ProductName   string          `json:"product_name"`
	QuantityAdded int64           `json:"quantity_added"`
	CostPerUnit   decimal.Decimal `json:"cost_per_unit"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// SalesTotals is the headline metric block over a filtered set of sales.
type SalesTotals struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	TotalUnits   int64           `json:"total_units"`
	ProductCount int             `json:"product_count"`
}
