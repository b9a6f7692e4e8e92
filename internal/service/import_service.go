package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/pkg/errors"
)

// ImportBatchSize is the number of CSV records inserted per transaction
const ImportBatchSize = 10

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// ProductBatchWriter inserts a batch of products atomically
type ProductBatchWriter interface {
	CreateBatch(ctx context.Context, products []*domain.Product) error
}

// ImportStats reports the outcome of an import run
type ImportStats struct {
	Total   int
	Success int
	Failed  int
	Skipped int
}

// ProductImporter loads products from standard or Shopify CSV exports
type ProductImporter struct {
	products  ProductBatchWriter
	batchSize int
	logger    *zap.Logger
}

// NewProductImporter creates a new importer
func NewProductImporter(products ProductBatchWriter, logger *zap.Logger) *ProductImporter {
	return &ProductImporter{
		products:  products,
		batchSize: ImportBatchSize,
		logger:    logger,
	}
}

// ParseProductCSV reads all records keyed by header.
// Shopify variant rows without a Title inherit it from the previous row of the same Handle.
func ParseProductCSV(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, &errors.ValidationError{Message: "CSV file is empty"}
	}

	headers := rows[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	if !hasColumns(headers, "name", "price") && !hasColumns(headers, "Title", "Variant Price") {
		return nil, &errors.ValidationError{
			Message: "invalid CSV format, required columns: 'name', 'price' OR 'Title', 'Variant Price' (Shopify)",
		}
	}

	var lastTitle, lastHandle string
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		record := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				record[h] = strings.TrimSpace(row[i])
			}
		}

		if record["name"] == "" {
			handle := record["Handle"]
			title := record["Title"]
			if title == "" && handle != "" && handle == lastHandle {
				title = lastTitle
			}
			if title != "" {
				lastTitle = title
				lastHandle = handle
			}
			record["Title"] = title
		}

		records = append(records, record)
	}

	return records, nil
}

// MapRecordToProduct converts one CSV record, returning nil when it has no usable name or price
func MapRecordToProduct(record map[string]string) *domain.Product {
	name := record["Title"]
	shopify := name != ""
	if name == "" {
		name = record["name"]
	}
	if name == "" {
		return nil
	}

	if shopify {
		var options []string
		if v := record["Option1 Value"]; v != "" && v != "Default Title" {
			options = append(options, v)
		}
		if v := record["Option2 Value"]; v != "" {
			options = append(options, v)
		}
		if v := record["Option3 Value"]; v != "" {
			options = append(options, v)
		}
		if len(options) > 0 {
			name = fmt.Sprintf("%s (%s)", name, strings.Join(options, ", "))
		}
	}

	rawPrice := firstNonEmpty(record["Variant Price"], record["price"], "0")
	price, err := decimal.NewFromString(rawPrice)
	if err != nil || price.IsNegative() {
		return nil
	}

	category := strings.ToLower(record["category"])
	if category == "" {
		category = inferCategory(record)
	}

	description := optional(record["description"])
	if body := record["Body (HTML)"]; body != "" {
		description = optional(stripHTML(body))
	}

	metal := optional(record["metal"])
	if grams := record["Variant Grams"]; grams != "" {
		metal = optional(strings.TrimSpace(fmt.Sprintf("%sg %s", grams, record["Option1 Value"])))
	}

	return &domain.Product{
		Name:          name,
		NameLV:        optional(record["name_lv"]),
		NameRU:        optional(record["name_ru"]),
		Description:   description,
		DescriptionLV: optional(record["description_lv"]),
		DescriptionRU: optional(record["description_ru"]),
		Price:         price.Round(2),
		Category:      category,
		ImageURL:      optional(firstNonEmpty(record["Image Src"], record["image_url"])),
		Carat:         optional(record["carat"]),
		Clarity:       optional(record["clarity"]),
		Cut:           optional(record["cut"]),
		Color:         optional(record["color"]),
		Metal:         metal,
		IsActive:      true,
	}
}

// Import inserts records in batches. A failed batch is counted and the run continues.
func (i *ProductImporter) Import(ctx context.Context, records []map[string]string) (ImportStats, error) {
	stats := ImportStats{Total: len(records)}

	for start := 0; start < len(records); start += i.batchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		end := start + i.batchSize
		if end > len(records) {
			end = len(records)
		}

		batch := make([]*domain.Product, 0, end-start)
		for _, record := range records[start:end] {
			if p := MapRecordToProduct(record); p != nil {
				batch = append(batch, p)
			} else {
				stats.Skipped++
			}
		}
		if len(batch) == 0 {
			continue
		}

		if err := i.products.CreateBatch(ctx, batch); err != nil {
			i.logger.Error("Batch insert error",
				zap.Int("offset", start),
				zap.Int("size", len(batch)),
				zap.Error(err),
			)
			stats.Failed += len(batch)
			continue
		}
		stats.Success += len(batch)
	}

	i.logger.Info("Product import finished",
		zap.Int("total", stats.Total),
		zap.Int("success", stats.Success),
		zap.Int("failed", stats.Failed),
		zap.Int("skipped", stats.Skipped),
	)

	return stats, nil
}

func inferCategory(record map[string]string) string {
	kind := strings.ToLower(firstNonEmpty(record["Type"], record["Product Category"]))
	title := strings.ToLower(record["Title"])

	matches := func(word string) bool {
		return strings.Contains(kind, word) || strings.Contains(title, word)
	}

	// earring before ring, which it contains
	switch {
	case matches("earring"):
		return domain.CategoryEarrings
	case matches("ring"):
		return domain.CategoryRings
	case matches("necklace"):
		return domain.CategoryNecklaces
	case matches("bracelet"):
		return domain.CategoryBracelets
	default:
		return domain.CategoryOthers
	}
}

func stripHTML(html string) string {
	text := htmlTagPattern.ReplaceAllString(html, " ")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

func hasColumns(headers []string, names ...string) bool {
	for _, name := range names {
		found := false
		for _, h := range headers {
			if h == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
