package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced product does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument indicates a non-positive quantity, price, or cost.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInsufficientStock indicates a sale quantity exceeding current stock.
	// Returned wrapped inside an InsufficientStockError carrying the figures.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError rejects a sale whose quantity exceeds the product's
// current stock. No state is mutated when it is returned.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
