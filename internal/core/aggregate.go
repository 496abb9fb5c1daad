package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Pure aggregation functions over a sales snapshot. Each is deterministic:
// the same records yield the same output, with tie-breaks fixed by the
// snapshot's own order (SalesWithProduct returns rows ordered by sale date
// then sale id).

// SumRevenue totals quantity × unit price over the records.
func SumRevenue(records []SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Revenue())
	}
	return total
}

// SumProfit totals quantity × (unit price − cost basis) over the records.
func SumProfit(records []SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Profit())
	}
	return total
}

// ComputeTotals builds the headline metric block: revenue, profit, units
// sold, and the number of distinct products appearing in the records.
func ComputeTotals(records []SaleRecord) SalesTotals {
	totals := SalesTotals{
		TotalRevenue: decimal.Zero,
		TotalProfit:  decimal.Zero,
	}
	seen := make(map[int64]struct{})
	for _, r := range records {
		totals.TotalRevenue = totals.TotalRevenue.Add(r.Revenue())
		totals.TotalProfit = totals.TotalProfit.Add(r.Profit())
		totals.TotalUnits += r.Quantity
		seen[r.ProductID] = struct{}{}
	}
	totals.ProductCount = len(seen)
	return totals
}

// SummarizeByProduct groups the records by product and ranks the groups by
// total revenue, highest first. Ties keep the order in which the products
// first appear in the snapshot.
func SummarizeByProduct(records []SaleRecord) []ProductSummary {
	index := make(map[string]int)
	var summaries []ProductSummary
	for _, r := range records {
		i, ok := index[r.ProductName]
		if !ok {
			i = len(summaries)
			index[r.ProductName] = i
			summaries = append(summaries, ProductSummary{
				ProductName:  r.ProductName,
				TotalRevenue: decimal.Zero,
			})
		}
		summaries[i].TotalQuantitySold += r.Quantity
		summaries[i].TotalRevenue = summaries[i].TotalRevenue.Add(r.Revenue())
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalRevenue.GreaterThan(summaries[j].TotalRevenue)
	})
	return summaries
}

// GroupRevenueByDate sums revenue per calendar day, ascending by date.
func GroupRevenueByDate(records []SaleRecord) []DailyRevenue {
	index := make(map[string]int)
	var days []DailyRevenue
	for _, r := range records {
		key := r.SaleDate.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, DailyRevenue{
				Date:         truncateToDay(r.SaleDate),
				TotalRevenue: decimal.Zero,
			})
		}
		days[i].TotalRevenue = days[i].TotalRevenue.Add(r.Revenue())
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}

// RankRecentSales returns the most recent limit sales by date descending,
// each annotated with its profit and classification. Sales sharing a date
// keep their snapshot order relative to each other.
func RankRecentSales(records []SaleRecord, limit int) []SaleWithProfit {
	sorted := make([]SaleRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SaleDate.After(sorted[j].SaleDate)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]SaleWithProfit, 0, len(sorted))
	for _, r := range sorted {
		profit := r.Profit()
		out = append(out, SaleWithProfit{
			SaleID:       r.SaleID,
			SaleDate:     r.SaleDate,
			ProductName:  r.ProductName,
			Quantity:     r.Quantity,
			TotalRevenue: r.Revenue(),
			Profit:       profit,
			Status:       ClassifyProfit(profit),
		})
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
