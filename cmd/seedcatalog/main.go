// cmd/seedcatalog/main.go — loads a small demo catalog into the local store
// so the terminal can run without a reachable remote.
// Usage: go run ./cmd/seedcatalog
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/infra"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/model"
	"github.com/ahmedmedhat1994/vopecs-pos-desktop/internal/repository"
)

func main() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "vopecs_pos.db"
	}

	db, err := infra.NewDatabase(path)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}

	now := time.Now().UTC()
	str := func(s string) *string { return &s }

	products := []model.Product{
		{ID: 1, Code: "1001", Name: "Espresso Beans 1kg", Price: decimal.NewFromFloat(18.50), TaxPercent: decimal.NewFromInt(14), StockQty: 40, UpdatedAt: now},
		{ID: 2, Code: "1002", Name: "Mineral Water 600ml", Price: decimal.NewFromFloat(1.25), StockQty: 240, UpdatedAt: now},
		{ID: 3, Code: "1003", Name: "Basmati Rice (per kg)", Price: decimal.NewFromFloat(3.80), StockQty: 75.5, UpdatedAt: now},
		{ID: 4, Code: "2001", Name: "Gift Wrapping", Price: decimal.NewFromFloat(2.00), IsService: true, UpdatedAt: now},
	}
	clients := []model.Client{
		{ID: 1, Name: "Walk-in Customer", UpdatedAt: now},
		{ID: 2, Name: "Nile Trading Co", Phone: str("+20 100 555 0102"), TaxNumber: str("204-881-337"), UpdatedAt: now},
	}
	categories := []model.Category{
		{ID: 1, Name: "Beverages", UpdatedAt: now},
		{ID: 2, Name: "Groceries", UpdatedAt: now},
	}
	warehouses := []model.Warehouse{
		{ID: 1, Name: "Main Store", UpdatedAt: now},
	}
	methods := []model.PaymentMethod{
		{ID: 1, Name: "Cash", UpdatedAt: now},
		{ID: 2, Name: "Card", UpdatedAt: now},
	}

	ctx := context.Background()
	catalog := repository.NewCatalogRepository(db)

	if _, err := catalog.ReplaceProducts(ctx, products); err != nil {
		log.Fatalf("seed products error: %v", err)
	}
	if _, err := catalog.ReplaceClients(ctx, clients); err != nil {
		log.Fatalf("seed clients error: %v", err)
	}
	if _, err := catalog.ReplaceCategories(ctx, categories); err != nil {
		log.Fatalf("seed categories error: %v", err)
	}
	if _, err := catalog.ReplaceWarehouses(ctx, warehouses); err != nil {
		log.Fatalf("seed warehouses error: %v", err)
	}
	if _, err := catalog.ReplacePaymentMethods(ctx, methods); err != nil {
		log.Fatalf("seed payment methods error: %v", err)
	}

	fmt.Printf("✅ demo catalog seeded into %s\n", path)
}
