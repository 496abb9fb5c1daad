package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testProduct() *Product {
	return &Product{
		ID:            1,
		Name:          "Pen",
		Price:         dec("10"),
		CostBasis:     dec("5"),
		StockQuantity: 10,
	}
}

func TestRecordSaleDecrementsStock(t *testing.T) {
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	receipt, err := rec.RecordSale(context.Background(), 1, 4, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(6), receipt.NewStock)
	assert.Equal(t, int64(4), receipt.Entry.Quantity)

	p, err := repo.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6), p.StockQuantity)
	assert.Len(t, repo.sales, 1)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	_, err := rec.RecordSale(context.Background(), 1, 12, time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(12), insufficient.Requested)
	assert.Equal(t, int64(10), insufficient.Available)

	// Rejection leaves the ledger and the stock untouched.
	p, _ := repo.GetProduct(context.Background(), 1)
	assert.Equal(t, int64(10), p.StockQuantity)
	assert.Empty(t, repo.sales)
}

func TestRecordSaleExactStockDrainsToZero(t *testing.T) {
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	receipt, err := rec.RecordSale(context.Background(), 1, 10, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), receipt.NewStock)
}

func TestRecordSaleValidation(t *testing.T) {
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	for _, qty := range []int64{0, -3} {
		_, err := rec.RecordSale(context.Background(), 1, qty, time.Time{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
	assert.Empty(t, repo.sales)
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	_, err := rec.RecordSale(context.Background(), 99, 1, time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordSaleDefaultsDateToNow(t *testing.T) {
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	before := time.Now()
	receipt, err := rec.RecordSale(context.Background(), 1, 1, time.Time{})
	require.NoError(t, err)
	assert.False(t, receipt.Entry.SaleDate.Before(before))
}

func TestRecordSaleRollsBackOnStockUpdateFailure(t *testing.T) {
	repo := newMemRepo(testProduct())
	repo.errSetStock = errors.New("connection reset")
	rec := NewStockReconciler(repo)

	_, err := rec.RecordSale(context.Background(), 1, 4, time.Time{})
	require.Error(t, err)

	// The failed transaction must not leave a sale entry without the
	// matching stock decrement.
	assert.Empty(t, repo.sales)
	p, _ := repo.GetProduct(context.Background(), 1)
	assert.Equal(t, int64(10), p.StockQuantity)
}

func TestRecordInventoryAddition(t *testing.T) {
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	receipt, err := rec.RecordInventoryAddition(context.Background(), 1, 20, dec("6"), time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(30), receipt.NewStock)
	assert.True(t, receipt.NewCostBasis.Equal(dec("6")))

	p, _ := repo.GetProduct(context.Background(), 1)
	assert.Equal(t, int64(30), p.StockQuantity)
	assert.True(t, p.CostBasis.Equal(dec("6")), "cost basis should be overwritten by the newest addition")
	assert.Len(t, repo.inventory, 1)
}

func TestRecordInventoryAdditionOverwritesNotAverages(t *testing.T) {
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	_, err := rec.RecordInventoryAddition(context.Background(), 1, 5, dec("8"), time.Time{})
	require.NoError(t, err)
	_, err = rec.RecordInventoryAddition(context.Background(), 1, 5, dec("3"), time.Time{})
	require.NoError(t, err)

	p, _ := repo.GetProduct(context.Background(), 1)
	assert.True(t, p.CostBasis.Equal(dec("3")))
	assert.Equal(t, int64(20), p.StockQuantity)
}

func TestRecordInventoryAdditionValidation(t *testing.T) {
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	_, err := rec.RecordInventoryAddition(context.Background(), 1, 0, dec("6"), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = rec.RecordInventoryAddition(context.Background(), 1, 5, dec("0"), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = rec.RecordInventoryAddition(context.Background(), 1, 5, dec("-2"), time.Time{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Empty(t, repo.inventory)
}

func TestRecordInventoryAdditionRollsBackOnFailure(t *testing.T) {
	repo := newMemRepo(testProduct())
	repo.errSetStock = errors.New("connection reset")
	rec := NewStockReconciler(repo)

	_, err := rec.RecordInventoryAddition(context.Background(), 1, 20, dec("6"), time.Time{})
	require.Error(t, err)

	assert.Empty(t, repo.inventory)
	p, _ := repo.GetProduct(context.Background(), 1)
	assert.Equal(t, int64(10), p.StockQuantity)
	assert.True(t, p.CostBasis.Equal(dec("5")))
}

// Walks the full scenario: a rejected oversell, a successful sale, a
// replenishment that moves the cost basis, and the profit that results.
func TestSaleAdditionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(testProduct())
	rec := NewStockReconciler(repo)

	_, err := rec.RecordSale(ctx, 1, 12, time.Time{})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	saleReceipt, err := rec.RecordSale(ctx, 1, 4, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(6), saleReceipt.NewStock)

	addReceipt, err := rec.RecordInventoryAddition(ctx, 1, 20, dec("6"), time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(26), addReceipt.NewStock)

	// The recorded sale is now valued at the current cost basis of 6,
	// so profit is 4 × (10 − 6) = 16.
	records, err := repo.SalesWithProduct(ctx, SalesFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Profit().Equal(dec("16")))
	assert.Equal(t, StatusProfit, ClassifyProfit(records[0].Profit()))
}
