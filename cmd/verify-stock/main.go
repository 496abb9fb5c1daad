// Command verify-stock recomputes each product's stock from the ledgers
// (sum of inventory additions minus sum of sales) and compares it against
// the stored stock_quantity. Exits non-zero when any product diverges.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"sales-ledger/internal/db"

	"github.com/joho/godotenv"
)

type stockRow struct {
	productID int64
	name      string
	stored    int64
	derived   int64
}

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, `
		SELECT p.product_id,
		       p.product_name,
		       p.stock_quantity,
		       COALESCE((SELECT SUM(i.quantity_added) FROM inventory i WHERE i.product_id = p.product_id), 0)
		     - COALESCE((SELECT SUM(s.quantity) FROM sales s WHERE s.product_id = p.product_id), 0) AS derived
		FROM products p
		ORDER BY p.product_id`)
	if err != nil {
		log.Fatalf("querying stock: %v", err)
	}
	defer rows.Close()

	var drifted []stockRow
	var total int
	for rows.Next() {
		var r stockRow
		if err := rows.Scan(&r.productID, &r.name, &r.stored, &r.derived); err != nil {
			log.Fatalf("scanning row: %v", err)
		}
		total++
		if r.stored != r.derived {
			drifted = append(drifted, r)
		}
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("reading rows: %v", err)
	}

	if len(drifted) == 0 {
		fmt.Printf("ok: %d products, stored stock matches ledger-derived stock\n", total)
		return
	}

	fmt.Printf("drift detected in %d of %d products:\n", len(drifted), total)
	for _, r := range drifted {
		fmt.Printf("  %d %-30s stored=%d derived=%d delta=%d\n",
			r.productID, r.name, r.stored, r.derived, r.stored-r.derived)
	}
	os.Exit(1)
}
