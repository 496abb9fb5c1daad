package app

import (
	"context"
	"fmt"
	"time"

	"sales-ledger/internal/core"
)

type appService struct {
	catalog    core.CatalogService
	reconciler core.StockReconciler
	analytics  core.AnalyticsService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	catalog core.CatalogService,
	reconciler core.StockReconciler,
	analytics core.AnalyticsService,
) ApplicationService {
	return &appService{
		catalog:    catalog,
		reconciler: reconciler,
		analytics:  analytics,
	}
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) GetDashboard(ctx context.Context, req FilterRequest) (*DashboardResult, error) {
	filter, err := toFilter(req)
	if err != nil {
		return nil, err
	}

	// One snapshot feeds the totals, the series, the ranking, and the
	// recent-sales view so all figures agree with each other.
	records, err := s.analytics.Sales(ctx, filter)
	if err != nil {
		return nil, err
	}
	recentInventory, err := s.analytics.RecentInventoryAdditions(ctx, core.DefaultRecentLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardResult{
		Totals:          core.ComputeTotals(records),
		RevenueByDate:   core.GroupRevenueByDate(records),
		ProductSummary:  core.SummarizeByProduct(records),
		RecentSales:     core.RankRecentSales(records, core.DefaultRecentLimit),
		RecentInventory: recentInventory,
	}, nil
}

func (s *appService) ListSales(ctx context.Context, req FilterRequest) (*SalesListResult, error) {
	filter, err := toFilter(req)
	if err != nil {
		return nil, err
	}
	sales, err := s.analytics.Sales(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &SalesListResult{Sales: sales}, nil
}

func (s *appService) RecordSale(ctx context.Context, req RecordSaleRequest) (*RecordSaleResult, error) {
	saleDate, err := parseDate(req.SaleDate)
	if err != nil {
		return nil, err
	}
	receipt, err := s.reconciler.RecordSale(ctx, req.ProductID, req.Quantity, saleDate)
	if err != nil {
		return nil, err
	}
	return &RecordSaleResult{Sale: receipt.Entry, NewStock: receipt.NewStock}, nil
}

func (s *appService) RecordInventoryAddition(ctx context.Context, req RecordAdditionRequest) (*RecordAdditionResult, error) {
	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		return nil, err
	}
	receipt, err := s.reconciler.RecordInventoryAddition(ctx, req.ProductID, req.QuantityAdded, req.CostPerUnit, purchaseDate)
	if err != nil {
		return nil, err
	}
	return &RecordAdditionResult{Addition: receipt.Entry, NewStock: receipt.NewStock}, nil
}

// toFilter validates the request's date strings and maps it to a core filter.
func toFilter(req FilterRequest) (core.SalesFilter, error) {
	if _, err := parseDate(req.StartDate); err != nil {
		return core.SalesFilter{}, err
	}
	if _, err := parseDate(req.EndDate); err != nil {
		return core.SalesFilter{}, err
	}
	return core.SalesFilter{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ProductName: req.ProductName,
	}, nil
}

// parseDate parses a YYYY-MM-DD string; empty input yields the zero time,
// which downstream code treats as "today" for writes and "unbounded" for
// filters.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in YYYY-MM-DD form: %w", s, core.ErrInvalidArgument)
	}
	return t, nil
}
