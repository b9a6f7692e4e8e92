package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/repository/postgres"
)

// find-sku resolves the short SKU quoted in a WhatsApp order request back to a product
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-sku/main.go <sku>")
		fmt.Println("Example: go run cmd/find-sku/main.go 3F2A9C1E")
		os.Exit(1)
	}

	targetSKU := os.Args[1]

	// Load configuration
	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	fmt.Printf("🔍 Searching for SKU: %s\n\n", targetSKU)

	products, err := repos.Product.FindBySKU(context.Background(), targetSKU)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to query products: %v\n", err)
		os.Exit(1)
	}

	if len(products) == 0 {
		fmt.Printf("❌ SKU '%s' not found in the catalog.\n", targetSKU)
		fmt.Printf("\nMake sure:\n")
		fmt.Printf("  1. The SKU is the 8-character code from the order message\n")
		fmt.Printf("  2. The product has not been deleted\n")
		os.Exit(1)
	}

	if len(products) > 1 {
		fmt.Printf("⚠️  %d products share this SKU, newest first.\n\n", len(products))
	}

	for _, p := range products {
		status := "active"
		if !p.IsActive {
			status = "inactive"
		}

		fmt.Printf("✅ Found SKU!\n\n")
		fmt.Printf("SKU: %s\n", p.SKU())
		fmt.Printf("Name: %s\n", p.Name)
		fmt.Printf("Price: €%s\n", p.Price.StringFixed(2))
		fmt.Printf("Category: %s\n", p.Category)
		fmt.Printf("Status: %s\n", status)
		fmt.Printf("\nProduct ID: %s\n\n", p.ID)
	}
}
