package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/pkg/errors"
)

// ProductReader is the bulk product lookup used when pricing a cart
type ProductReader interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
}

// CartPricer re-prices caller carts from the product store
type CartPricer struct {
	products ProductReader
	logger   *zap.Logger
}

// NewCartPricer creates a new cart pricer
func NewCartPricer(products ProductReader, logger *zap.Logger) *CartPricer {
	return &CartPricer{
		products: products,
		logger:   logger,
	}
}

// ValidateLines checks the shape of every line before anything is read
func (p *CartPricer) ValidateLines(lines []domain.CartLineRequest) error {
	if len(lines) == 0 {
		return &errors.ValidationError{Message: "no items provided for checkout"}
	}

	for i, line := range lines {
		if line.ProductID == "" {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Message: "invalid product ID provided",
			}
		}
		if line.Quantity < 1 {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "invalid quantity provided",
			}
		}
	}

	return nil
}

// Price resolves every line against the store and returns the priced items
// in input order. Names follow lang, falling back to the default name.
func (p *CartPricer) Price(ctx context.Context, lines []domain.CartLineRequest, lang domain.Language) ([]domain.PricedLineItem, error) {
	if err := p.ValidateLines(lines); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	products, err := p.products.GetByIDs(ctx, ids)
	if err != nil {
		p.logger.Error("Database error fetching products", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch product details")
	}
	// A single missing id is reported by name below
	if len(products) == 0 && len(ids) > 1 {
		return nil, &errors.NotFoundError{Message: "no valid products found"}
	}

	byID := make(map[string]*domain.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	items := make([]domain.PricedLineItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, &errors.NotFoundError{Resource: "product", ID: line.ProductID}
		}
		if !product.IsActive {
			return nil, &errors.UnavailableError{Name: product.Name}
		}

		carat := ""
		if product.Carat != nil {
			carat = *product.Carat
		}

		items = append(items, domain.PricedLineItem{
			ProductID:            product.ID,
			Name:                 product.LocalizedName(lang),
			Carat:                carat,
			UnitAmountMinorUnits: product.UnitAmountMinorUnits(),
			Quantity:             line.Quantity,
		})
	}

	return items, nil
}

// TotalMinorUnits sums the line totals of items
func TotalMinorUnits(items []domain.PricedLineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.TotalMinorUnits()
	}
	return total
}
