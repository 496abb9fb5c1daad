package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// memRepo is an in-memory Repository used by the unit tests. Writes made
// inside WithTx are buffered in a memTxRepo and applied only when fn returns
// nil, mirroring commit/rollback behavior. Any of the err* fields can be set
// to inject a failure mid-transaction.
type memRepo struct {
	products  map[int64]*Product
	sales     []SaleEntry
	inventory []InventoryEntry
	nextSale  int64
	nextInv   int64

	errInsertSale      error
	errInsertInventory error
	errSetStock        error
}

func newMemRepo(products ...*Product) *memRepo {
	m := &memRepo{
		products: make(map[int64]*Product),
		nextSale: 1,
		nextInv:  1,
	}
	for _, p := range products {
		cp := *p
		m.products[p.ID] = &cp
	}
	return m
}

func (m *memRepo) GetProduct(ctx context.Context, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) GetProductByName(ctx context.Context, name string) (*Product, error) {
	for _, p := range m.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("product %q: %w", name, ErrNotFound)
}

func (m *memRepo) ListProducts(ctx context.Context) ([]Product, error) {
	out := make([]Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) CreateProduct(ctx context.Context, name string, price, costBasis decimal.Decimal, stock int64) (*Product, error) {
	id := int64(len(m.products) + 1)
	p := &Product{ID: id, Name: name, Price: price, CostBasis: costBasis, StockQuantity: stock}
	m.products[id] = p
	cp := *p
	return &cp, nil
}

func (m *memRepo) SalesWithProduct(ctx context.Context, f SalesFilter) ([]SaleRecord, error) {
	var records []SaleRecord
	for _, s := range m.sales {
		p := m.products[s.ProductID]
		if f.FiltersProduct() && p.Name != f.ProductName {
			continue
		}
		day := s.SaleDate.Format("2006-01-02")
		if f.StartDate != "" && day < f.StartDate {
			continue
		}
		if f.EndDate != "" && day > f.EndDate {
			continue
		}
		records = append(records, SaleRecord{
			SaleID:      s.ID,
			SaleDate:    s.SaleDate,
			ProductID:   s.ProductID,
			ProductName: p.Name,
			Quantity:    s.Quantity,
			UnitPrice:   p.Price,
			CostBasis:   p.CostBasis,
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].SaleDate.Equal(records[j].SaleDate) {
			return records[i].SaleDate.Before(records[j].SaleDate)
		}
		return records[i].SaleID < records[j].SaleID
	})
	return records, nil
}

func (m *memRepo) RecentInventoryAdditions(ctx context.Context, limit int) ([]InventoryAdditionView, error) {
	entries := make([]InventoryEntry, len(m.inventory))
	copy(entries, m.inventory)
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].PurchaseDate.Equal(entries[j].PurchaseDate) {
			return entries[i].PurchaseDate.After(entries[j].PurchaseDate)
		}
		return entries[i].ID > entries[j].ID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	views := make([]InventoryAdditionView, 0, len(entries))
	for _, e := range entries {
		views = append(views, InventoryAdditionView{
			InventoryID:   e.ID,
			PurchaseDate:  e.PurchaseDate,
			ProductName:   m.products[e.ProductID].Name,
			QuantityAdded: e.QuantityAdded,
			CostPerUnit:   e.CostPerUnit,
			TotalCost:     e.CostPerUnit.Mul(decimal.NewFromInt(e.QuantityAdded)),
		})
	}
	return views, nil
}

func (m *memRepo) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	tx := &memTxRepo{repo: m}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.apply()
	return nil
}

// memTxRepo buffers writes until apply. Reads see the committed state plus
// nothing: a transaction's own buffered writes are not re-read by the
// reconciler, so this is sufficient for the tests.
type memTxRepo struct {
	repo *memRepo

	sales     []SaleEntry
	inventory []InventoryEntry
	stocks    map[int64]int64
	costs     map[int64]decimal.Decimal
}

func (t *memTxRepo) GetProductForUpdate(ctx context.Context, id int64) (*Product, error) {
	return t.repo.GetProduct(ctx, id)
}

func (t *memTxRepo) InsertSale(ctx context.Context, productID int64, saleDate time.Time, quantity int64) (int64, error) {
	if t.repo.errInsertSale != nil {
		return 0, t.repo.errInsertSale
	}
	id := t.repo.nextSale + int64(len(t.sales))
	t.sales = append(t.sales, SaleEntry{ID: id, ProductID: productID, SaleDate: saleDate, Quantity: quantity})
	return id, nil
}

func (t *memTxRepo) InsertInventoryAddition(ctx context.Context, productID int64, purchaseDate time.Time, quantityAdded int64, costPerUnit decimal.Decimal) (int64, error) {
	if t.repo.errInsertInventory != nil {
		return 0, t.repo.errInsertInventory
	}
	id := t.repo.nextInv + int64(len(t.inventory))
	t.inventory = append(t.inventory, InventoryEntry{
		ID: id, ProductID: productID, PurchaseDate: purchaseDate,
		QuantityAdded: quantityAdded, CostPerUnit: costPerUnit,
	})
	return id, nil
}

func (t *memTxRepo) SetStock(ctx context.Context, productID, stock int64) error {
	if t.repo.errSetStock != nil {
		return t.repo.errSetStock
	}
	if t.stocks == nil {
		t.stocks = make(map[int64]int64)
	}
	t.stocks[productID] = stock
	return nil
}

func (t *memTxRepo) SetStockAndCost(ctx context.Context, productID, stock int64, costBasis decimal.Decimal) error {
	if t.repo.errSetStock != nil {
		return t.repo.errSetStock
	}
	if t.stocks == nil {
		t.stocks = make(map[int64]int64)
	}
	if t.costs == nil {
		t.costs = make(map[int64]decimal.Decimal)
	}
	t.stocks[productID] = stock
	t.costs[productID] = costBasis
	return nil
}

func (t *memTxRepo) apply() {
	t.repo.sales = append(t.repo.sales, t.sales...)
	t.repo.nextSale += int64(len(t.sales))
	t.repo.inventory = append(t.repo.inventory, t.inventory...)
	t.repo.nextInv += int64(len(t.inventory))
	for id, stock := range t.stocks {
		t.repo.products[id].StockQuantity = stock
	}
	for id, cost := range t.costs {
		t.repo.products[id].CostBasis = cost
	}
}
