package app

import "sales-ledger/internal/core"

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product `json:"products"`
}

// DashboardResult is returned by GetDashboard.
type DashboardResult struct {
	Totals            core.SalesTotals             `json:"totals"`
	RevenueByDate     []core.DailyRevenue          `json:"revenue_by_date"`
	ProductSummary    []core.ProductSummary        `json:"product_summary"`
	RecentSales       []core.SaleWithProfit        `json:"recent_sales"`
	RecentInventory   []core.InventoryAdditionView `json:"recent_inventory"`
}

// SalesListResult is returned by ListSales.
type SalesListResult struct {
	Sales []core.SaleRecord `json:"sales"`
}

// RecordSaleResult is returned by RecordSale.
type RecordSaleResult struct {
	Sale     core.SaleEntry `json:"sale"`
	NewStock int64          `json:"new_stock"`
}

// RecordAdditionResult is returned by RecordInventoryAddition.
type RecordAdditionResult struct {
	Addition core.InventoryEntry `json:"addition"`
	NewStock int64               `json:"new_stock"`
}
