package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/repository/postgres"
	"github.com/suratdiamond/storefront/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/import-products/main.go <file.csv>")
		fmt.Println("Example: go run cmd/import-products/main.go products_export.csv")
		os.Exit(1)
	}

	path := os.Args[1]

	// Load configuration
	cfg, err := config.Read()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	file, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", path, err)
		os.Exit(1)
	}
	defer file.Close()

	records, err := service.ParseProductCSV(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse %s: %v\n", path, err)
		os.Exit(1)
	}
	fmt.Printf("📄 Parsed %d records from %s\n", len(records), path)

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	importer := service.NewProductImporter(repos.Product, logger)

	stats, err := importer.Import(context.Background(), records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import interrupted: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Import finished\n\n")
	fmt.Printf("Total:   %d\n", stats.Total)
	fmt.Printf("Success: %d\n", stats.Success)
	fmt.Printf("Failed:  %d\n", stats.Failed)
	fmt.Printf("Skipped: %d\n", stats.Skipped)

	if stats.Failed > 0 {
		fmt.Printf("\n⚠️  Some batches failed. Check the log output above for details.\n")
		os.Exit(1)
	}
}
