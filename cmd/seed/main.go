// Command seed wipes the ledger tables and loads the demo fixture: a fixed
// catalog of 40 products plus 500 randomly generated sales.
//
// The fixture is inserted directly, bypassing the stock reconciler, so the
// generated sales are not reflected in stock_quantity. Run verify-stock
// against a seeded database to see the resulting drift.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"sales-ledger/internal/db"

	"github.com/joho/godotenv"
)

type seedProduct struct {
	name  string
	price string
	cost  string
	stock int64
}

var catalog = []seedProduct{
	{"Pen", "10", "5", 200},
	{"Notebook (A5)", "30", "15", 150},
	{"Pencil", "5", "2", 500},
	{"Eraser", "3", "4", 400},
	{"Highlighter (Yellow)", "15", "7", 100},
	{"Folder", "20", "10", 75},
	{"Stapler", "45", "20", 50},
	{"Sticky Notes", "8", "4", 300},
	{"Whiteboard Markers (Pack)", "25", "12", 60},
	{"Correction Tape", "12", "6", 120},
	{"Scissors", "18", "9", 80},
	{"Glue Stick", "7", "3", 150},
	{"Ruler (30cm)", "6", "3", 250},
	{"Protractor", "9", "4", 70},
	{"Compass Set", "22", "10", 40},
	{"Sharpener", "4", "2", 200},
	{"Binder Clips", "10", "5", 150},
	{"Paper Clips", "5", "2", 500},
	{"Index Cards", "9", "4", 250},
	{"Legal Pad", "18", "9", 100},
	{"Desk Organizer", "50", "25", 40},
	{"Calculator (Basic)", "35", "15", 30},
	{"USB Drive (32GB)", "60", "65", 20},
	{"Laptop Sleeve (15\")", "80", "40", 15},
	{"Mouse Pad", "12", "6", 100},
	{"Ballpoint Pen (Set)", "25", "10", 120},
	{"Mechanical Pencil", "15", "7", 80},
	{"Colored Pencils (Set)", "28", "14", 90},
	{"Markers (Set of 12)", "20", "9", 110},
	{"Drawing Pad", "15", "7", 75},
	{"Sketchbook", "25", "12", 60},
	{"Water Bottle", "40", "20", 50},
	{"Lunch Box", "35", "18", 45},
	{"Backpack", "150", "75", 25},
	{"Posters (Pack)", "25", "12", 80},
	{"Push Pins", "5", "2", 300},
	{"Rubber Bands", "3", "1", 500},
	{"Laminator", "120", "60", 10},
	{"Document Shredder", "200", "100", 5},
	{"Ink Cartridge", "90", "45", 20},
}

const numSales = 500

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

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE sales, inventory, products RESTART IDENTITY CASCADE`); err != nil {
		log.Fatalf("truncating tables: %v", err)
	}

	for _, p := range catalog {
		_, err := tx.Exec(ctx,
			`INSERT INTO products (product_name, price, last_cost_per_unit, stock_quantity) VALUES ($1, $2, $3, $4)`,
			p.name, p.price, p.cost, p.stock)
		if err != nil {
			log.Fatalf("inserting product %q: %v", p.name, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < numSales; i++ {
		productID := int64(rng.Intn(len(catalog)) + 1)
		quantity := int64(rng.Intn(25) + 1)
		saleDate := start.AddDate(0, 0, rng.Intn(181))
		_, err := tx.Exec(ctx,
			`INSERT INTO sales (product_id, sale_date, quantity) VALUES ($1, $2, $3)`,
			productID, saleDate.Format("2006-01-02"), quantity)
		if err != nil {
			log.Fatalf("inserting sale: %v", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("commit: %v", err)
	}

	fmt.Printf("seeded %d products and %d sales\n", len(catalog), numSales)
}
