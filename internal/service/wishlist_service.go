package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/repository"
	"github.com/suratdiamond/storefront/pkg/errors"
)

type wishlistService struct {
	wishlist repository.WishlistRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(wishlist repository.WishlistRepository, products repository.ProductRepository, logger *zap.Logger) *wishlistService {
	return &wishlistService{
		wishlist: wishlist,
		products: products,
		logger:   logger,
	}
}

// List returns the ids of the products saved by userID
func (s *wishlistService) List(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.wishlist.ListProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Add saves a product. Saving the same product twice is a no-op.
func (s *wishlistService) Add(ctx context.Context, userID, productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return &errors.ValidationError{Field: "product_id", Message: "product_id is required"}
	}

	// Product must exist
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}

	return s.wishlist.Add(ctx, userID, productID)
}

func (s *wishlistService) Remove(ctx context.Context, userID, productID string) error {
	return s.wishlist.Remove(ctx, userID, productID)
}
