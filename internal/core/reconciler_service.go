package core

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StockReconciler is the only write path into the ledger. Every append is
// paired atomically with the matching stock mutation on the catalog row:
// the product row is locked for the duration of the transaction, so the
// read-check-write sequence cannot interleave with another writer on the
// same product.
type StockReconciler interface {
	// RecordSale appends a sale entry and decrements the product's stock.
	// Fails with ErrNotFound for an unknown product, ErrInvalidArgument for
	// a non-positive quantity, and InsufficientStockError when quantity
	// exceeds current stock — in every failure case nothing is written.
	RecordSale(ctx context.Context, productID, quantity int64, saleDate time.Time) (*SaleReceipt, error)

	// RecordInventoryAddition appends an inventory entry, increments the
	// product's stock, and overwrites its cost basis with costPerUnit.
	RecordInventoryAddition(ctx context.Context, productID, quantityAdded int64, costPerUnit decimal.Decimal, purchaseDate time.Time) (*AdditionReceipt, error)
}

// SaleReceipt reports a recorded sale and the stock level it left behind.
type SaleReceipt struct {
	Entry    SaleEntry `json:"entry"`
	NewStock int64     `json:"new_stock"`
}

// AdditionReceipt reports a recorded inventory addition and the resulting
// stock level and cost basis.
type AdditionReceipt struct {
	Entry        InventoryEntry  `json:"entry"`
	NewStock     int64           `json:"new_stock"`
	NewCostBasis decimal.Decimal `json:"new_cost_basis"`
}

type stockReconciler struct {
	repo Repository
}

func NewStockReconciler(repo Repository) StockReconciler {
	return &stockReconciler{repo: repo}
}

func (s *stockReconciler) RecordSale(ctx context.Context, productID, quantity int64, saleDate time.Time) (*SaleReceipt, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("sale quantity must be positive, got %d: %w", quantity, ErrInvalidArgument)
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	var receipt *SaleReceipt
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if quantity > product.StockQuantity {
			return &InsufficientStockError{
				ProductID: productID,
				Requested: quantity,
				Available: product.StockQuantity,
			}
		}

		saleID, err := tx.InsertSale(ctx, productID, saleDate, quantity)
		if err != nil {
			return err
		}
		newStock := product.StockQuantity - quantity
		if err := tx.SetStock(ctx, productID, newStock); err != nil {
			return err
		}

		receipt = &SaleReceipt{
			Entry: SaleEntry{
				ID:        saleID,
				ProductID: productID,
				SaleDate:  saleDate,
				Quantity:  quantity,
			},
			NewStock: newStock,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *stockReconciler) RecordInventoryAddition(ctx context.Context, productID, quantityAdded int64, costPerUnit decimal.Decimal, purchaseDate time.Time) (*AdditionReceipt, error) {
	if quantityAdded <= 0 {
		return nil, fmt.Errorf("quantity added must be positive, got %d: %w", quantityAdded, ErrInvalidArgument)
	}
	if costPerUnit.Sign() <= 0 {
		return nil, fmt.Errorf("cost per unit must be positive, got %s: %w", costPerUnit, ErrInvalidArgument)
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	var receipt *AdditionReceipt
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		product, err := tx.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}

		entryID, err := tx.InsertInventoryAddition(ctx, productID, purchaseDate, quantityAdded, costPerUnit)
		if err != nil {
			return err
		}
		newStock := product.StockQuantity + quantityAdded
		// The newest addition's unit cost becomes the product's cost basis
		// outright; prior additions do not weigh in.
		if err := tx.SetStockAndCost(ctx, productID, newStock, costPerUnit); err != nil {
			return err
		}

		receipt = &AdditionReceipt{
			Entry: InventoryEntry{
				ID:            entryID,
				ProductID:     productID,
				PurchaseDate:  purchaseDate,
				QuantityAdded: quantityAdded,
				CostPerUnit:   costPerUnit,
			},
			NewStock:     newStock,
			NewCostBasis: costPerUnit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
