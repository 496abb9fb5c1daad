package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// DefaultRecentLimit caps the recent-activity views when callers pass no limit.
const DefaultRecentLimit = 10

// AnalyticsService derives read-only views over the catalog and the ledger.
// Every method fetches one consistent snapshot and computes from it; nothing
// here mutates state.
type AnalyticsService interface {
	// Sales returns the raw filtered sale rows, date ascending.
	Sales(ctx context.Context, f SalesFilter) ([]SaleRecord, error)
	// Totals returns revenue, profit, units sold, and distinct product count.
	Totals(ctx context.Context, f SalesFilter) (*SalesTotals, error)
	TotalRevenue(ctx context.Context, f SalesFilter) (decimal.Decimal, error)
	TotalProfit(ctx context.Context, f SalesFilter) (decimal.Decimal, error)
	// PerProductSummary ranks products by total revenue, highest first.
	PerProductSummary(ctx context.Context, f SalesFilter) ([]ProductSummary, error)
	// RevenueByDate returns the daily revenue series, date ascending.
	RevenueByDate(ctx context.Context, f SalesFilter) ([]DailyRevenue, error)
	// RecentSalesWithProfit returns the newest limit sales with profit and
	// classification. limit <= 0 means DefaultRecentLimit.
	RecentSalesWithProfit(ctx context.Context, f SalesFilter, limit int) ([]SaleWithProfit, error)
	// RecentInventoryAdditions returns the newest limit additions with total
	// cost. limit <= 0 means DefaultRecentLimit.
	RecentInventoryAdditions(ctx context.Context, limit int) ([]InventoryAdditionView, error)
}

type analyticsService struct {
	repo Repository
}

func NewAnalyticsService(repo Repository) AnalyticsService {
	return &analyticsService{repo: repo}
}

func (s *analyticsService) Sales(ctx context.Context, f SalesFilter) ([]SaleRecord, error) {
	return s.repo.SalesWithProduct(ctx, f)
}

func (s *analyticsService) Totals(ctx context.Context, f SalesFilter) (*SalesTotals, error) {
	records, err := s.repo.SalesWithProduct(ctx, f)
	if err != nil {
		return nil, err
	}
	totals := ComputeTotals(records)
	return &totals, nil
}

func (s *analyticsService) TotalRevenue(ctx context.Context, f SalesFilter) (decimal.Decimal, error) {
	records, err := s.repo.SalesWithProduct(ctx, f)
	if err != nil {
		return decimal.Zero, err
	}
	return SumRevenue(records), nil
}

func (s *analyticsService) TotalProfit(ctx context.Context, f SalesFilter) (decimal.Decimal, error) {
	records, err := s.repo.SalesWithProduct(ctx, f)
	if err != nil {
		return decimal.Zero, err
	}
	return SumProfit(records), nil
}

func (s *analyticsService) PerProductSummary(ctx context.Context, f SalesFilter) ([]ProductSummary, error) {
	records, err := s.repo.SalesWithProduct(ctx, f)
	if err != nil {
		return nil, err
	}
	return SummarizeByProduct(records), nil
}

func (s *analyticsService) RevenueByDate(ctx context.Context, f SalesFilter) ([]DailyRevenue, error) {
	records, err := s.repo.SalesWithProduct(ctx, f)
	if err != nil {
		return nil, err
	}
	return GroupRevenueByDate(records), nil
}

func (s *analyticsService) RecentSalesWithProfit(ctx context.Context, f SalesFilter, limit int) ([]SaleWithProfit, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	records, err := s.repo.SalesWithProduct(ctx, f)
	if err != nil {
		return nil, err
	}
	return RankRecentSales(records, limit), nil
}

func (s *analyticsService) RecentInventoryAdditions(ctx context.Context, limit int) ([]InventoryAdditionView, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.repo.RecentInventoryAdditions(ctx, limit)
}
