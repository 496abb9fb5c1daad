package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository is the storage boundary for the catalog and the ledger.
// Reads run against the pool; every write path goes through WithTx so a
// ledger append and its stock mutation land in the same transaction.
type Repository interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	GetProductByName(ctx context.Context, name string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	// CreateProduct inserts a catalog row. Used only at seed time; callers
	// validate arguments first (see CatalogService).
	CreateProduct(ctx context.Context, name string, price, costBasis decimal.Decimal, stock int64) (*Product, error)

	// SalesWithProduct returns matching sale entries joined with their
	// product's current price and cost basis, ordered by sale date then id.
	SalesWithProduct(ctx context.Context, f SalesFilter) ([]SaleRecord, error)
	// RecentInventoryAdditions returns the newest additions first, each with
	// its total cost, ties on date broken by descending id.
	RecentInventoryAdditions(ctx context.Context, limit int) ([]InventoryAdditionView, error)

	// WithTx runs fn inside one transaction: commit on nil, rollback on error.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error
}

// TxRepository exposes the transactional operations the reconciler composes.
// GetProductForUpdate locks the product row, so a concurrent reconciler call
// against the same product blocks until this transaction finishes.
type TxRepository interface {
	GetProductForUpdate(ctx context.Context, id int64) (*Product, error)
	InsertSale(ctx context.Context, productID int64, saleDate time.Time, quantity int64) (int64, error)
	InsertInventoryAddition(ctx context.Context, productID int64, purchaseDate time.Time, quantityAdded int64, costPerUnit decimal.Decimal) (int64, error)
	SetStock(ctx context.Context, productID, stock int64) error
	SetStockAndCost(ctx context.Context, productID, stock int64, costBasis decimal.Decimal) error
}

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed Repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const productColumns = "product_id, product_name, price, last_cost_per_unit, stock_quantity"

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.CostBasis, &p.StockQuantity); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE product_id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresRepo) GetProductByName(ctx context.Context, name string) (*Product, error) {
	p, err := scanProduct(r.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE product_name = $1", name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product %q: %w", name, err)
	}
	return p, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY product_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CostBasis, &p.StockQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func (r *postgresRepo) CreateProduct(ctx context.Context, name string, price, costBasis decimal.Decimal, stock int64) (*Product, error) {
	p := &Product{Name: name, Price: price, CostBasis: costBasis, StockQuantity: stock}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (product_name, price, last_cost_per_unit, stock_quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING product_id
	`, name, price, costBasis, stock).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product %q: %w", name, err)
	}
	return p, nil
}

func (r *postgresRepo) SalesWithProduct(ctx context.Context, f SalesFilter) ([]SaleRecord, error) {
	q := `
		SELECT s.sale_id, s.sale_date, s.product_id, p.product_name,
		       s.quantity, p.price, p.last_cost_per_unit
		FROM sales s
		JOIN products p ON p.product_id = s.product_id`

	var args []any
	var where []string
	if f.StartDate != "" {
		args = append(args, f.StartDate)
		where = append(where, fmt.Sprintf("s.sale_date >= $%d::date", len(args)))
	}
	if f.EndDate != "" {
		args = append(args, f.EndDate)
		where = append(where, fmt.Sprintf("s.sale_date <= $%d::date", len(args)))
	}
	if f.FiltersProduct() {
		args = append(args, f.ProductName)
		where = append(where, fmt.Sprintf("p.product_name = $%d", len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			q += " WHERE " + cond
		} else {
			q += " AND " + cond
		}
	}
	q += " ORDER BY s.sale_date ASC, s.sale_id ASC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var records []SaleRecord
	for rows.Next() {
		var rec SaleRecord
		if err := rows.Scan(
			&rec.SaleID, &rec.SaleDate, &rec.ProductID, &rec.ProductName,
			&rec.Quantity, &rec.UnitPrice, &rec.CostBasis,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}
	return records, nil
}

func (r *postgresRepo) RecentInventoryAdditions(ctx context.Context, limit int) ([]InventoryAdditionView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.inventory_id, i.purchase_date, p.product_name,
		       i.quantity_added, i.cost_per_unit,
		       i.quantity_added * i.cost_per_unit AS total_cost
		FROM inventory i
		JOIN products p ON p.product_id = i.product_id
		ORDER BY i.purchase_date DESC, i.inventory_id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory additions: %w", err)
	}
	defer rows.Close()

	var views []InventoryAdditionView
	for rows.Next() {
		var v InventoryAdditionView
		if err := rows.Scan(
			&v.InventoryID, &v.PurchaseDate, &v.ProductName,
			&v.QuantityAdded, &v.CostPerUnit, &v.TotalCost,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory addition: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory additions: %w", err)
	}
	return views, nil
}

func (r *postgresRepo) WithTx(ctx context.Context, fn func(ctx context.Context, tx TxRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(ctx, &postgresTxRepo{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type postgresTxRepo struct {
	tx pgx.Tx
}

func (t *postgresTxRepo) GetProductForUpdate(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(t.tx.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE product_id = $1 FOR UPDATE", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock product %d: %w", id, err)
	}
	return p, nil
}

func (t *postgresTxRepo) InsertSale(ctx context.Context, productID int64, saleDate time.Time, quantity int64) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO sales (product_id, sale_date, quantity)
		VALUES ($1, $2, $3)
		RETURNING sale_id
	`, productID, saleDate.Format("2006-01-02"), quantity).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert sale entry: %w", err)
	}
	return id, nil
}

func (t *postgresTxRepo) InsertInventoryAddition(ctx context.Context, productID int64, purchaseDate time.Time, quantityAdded int64, costPerUnit decimal.Decimal) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `
		INSERT INTO inventory (product_id, purchase_date, quantity_added, cost_per_unit)
		VALUES ($1, $2, $3, $4)
		RETURNING inventory_id
	`, productID, purchaseDate.Format("2006-01-02"), quantityAdded, costPerUnit).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert inventory entry: %w", err)
	}
	return id, nil
}

func (t *postgresTxRepo) SetStock(ctx context.Context, productID, stock int64) error {
	if _, err := t.tx.Exec(ctx,
		"UPDATE products SET stock_quantity = $1 WHERE product_id = $2",
		stock, productID,
	); err != nil {
		return fmt.Errorf("failed to update stock for product %d: %w", productID, err)
	}
	return nil
}

func (t *postgresTxRepo) SetStockAndCost(ctx context.Context, productID, stock int64, costBasis decimal.Decimal) error {
	if _, err := t.tx.Exec(ctx,
		"UPDATE products SET stock_quantity = $1, last_cost_per_unit = $2 WHERE product_id = $3",
		stock, costBasis, productID,
	); err != nil {
		return fmt.Errorf("failed to update stock and cost for product %d: %w", productID, err)
	}
	return nil
}
