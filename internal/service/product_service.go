package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/internal/repository"
	"github.com/suratdiamond/storefront/pkg/errors"
)

type productService struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(products repository.ProductRepository, logger *zap.Logger) *productService {
	return &productService{
		products: products,
		logger:   logger,
	}
}

// ListActive returns the public catalog, optionally for one category
func (s *productService) ListActive(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.products.ListActive(ctx, strings.TrimSpace(category))
}

// GetActive returns a product only while it is on sale
func (s *productService) GetActive(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, &errors.NotFoundError{Resource: "product", ID: id}
	}
	return product, nil
}

// ListAll returns every product including inactive ones
func (s *productService) ListAll(ctx context.Context) ([]*domain.Product, error) {
	return s.products.ListAll(ctx)
}

func (s *productService) Create(ctx context.Context, req ProductRequest) (*domain.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &domain.Product{IsActive: true}
	applyProductRequest(product, req)

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created", zap.String("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

func (s *productService) Update(ctx context.Context, id string, req ProductRequest) (*domain.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProductRequest(product, req)
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) SetActive(ctx context.Context, id string, isActive bool) error {
	return s.products.SetActive(ctx, id, isActive)
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

func validateProductRequest(req ProductRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &errors.ValidationError{Field: "name", Message: "name is required"}
	}
	if req.Price == nil || *req.Price < 0 {
		return &errors.ValidationError{Field: "price", Message: "price must be zero or greater"}
	}
	if strings.TrimSpace(req.Category) == "" {
		return &errors.ValidationError{Field: "category", Message: "category is required"}
	}
	return nil
}

func applyProductRequest(p *domain.Product, req ProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.NameLV = req.NameLV
	p.NameRU = req.NameRU
	p.Description = req.Description
	p.DescriptionLV = req.DescriptionLV
	p.DescriptionRU = req.DescriptionRU
	p.Price = decimal.NewFromFloat(*req.Price).Round(2)
	p.Category = strings.TrimSpace(req.Category)
	p.ImageURL = req.ImageURL
	p.Carat = req.Carat
	p.Clarity = req.Clarity
	p.Cut = req.Cut
	p.Color = req.Color
	p.Metal = req.Metal
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
}
