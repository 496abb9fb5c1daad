package app

import "github.com/shopspring/decimal"

// FilterRequest narrows read queries. Dates are YYYY-MM-DD and inclusive;
// empty strings impose no bound. ProductName empty or "All Products" means
// no product filter.
type FilterRequest struct {
	StartDate   string
	EndDate     string
	ProductName string
}

// RecordSaleRequest is the input for recording a sale.
type RecordSaleRequest struct {
	ProductID int64
	Quantity  int64
	SaleDate  string // YYYY-MM-DD; empty means today
}

// RecordAdditionRequest is the input for recording an inventory addition.
type RecordAdditionRequest struct {
	ProductID     int64
	QuantityAdded int64
	CostPerUnit   decimal.Decimal
	PurchaseDate  string // YYYY-MM-DD; empty means today
}
