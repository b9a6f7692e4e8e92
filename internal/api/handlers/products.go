package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/internal/service"
)

// ProductCatalog serves the public catalog
type ProductCatalog interface {
	ListActive(ctx context.Context, category string) ([]*domain.Product, error)
	GetActive(ctx context.Context, id string) (*domain.Product, error)
}

// ProductAdmin maintains the catalog from the back-office
type ProductAdmin interface {
	ListAll(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, req service.ProductRequest) (*domain.Product, error)
	Update(ctx context.Context, id string, req service.ProductRequest) (*domain.Product, error)
	SetActive(ctx context.Context, id string, isActive bool) error
	Delete(ctx context.Context, id string) error
}

// SetActiveRequest represents the product visibility toggle
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(catalog ProductCatalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalog.ListActive(c.Request.Context(), c.Query("category"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": toProductResponses(products)})
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(catalog ProductCatalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.GetActive(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toProductResponse(product))
	}
}

// HandleAdminListProducts handles GET /v1/admin/products
func HandleAdminListProducts(products ProductAdmin, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": toProductResponses(list)})
	}
}

// HandleCreateProduct handles POST /v1/admin/products
func HandleCreateProduct(products ProductAdmin, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		product, err := products.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, toProductResponse(product))
	}
}

// HandleUpdateProduct handles PUT /v1/admin/products/:id
func HandleUpdateProduct(products ProductAdmin, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		product, err := products.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, toProductResponse(product))
	}
}

// HandleSetProductActive handles PATCH /v1/admin/products/:id/active
func HandleSetProductActive(products ProductAdmin, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		id := c.Param("id")
		if err := products.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": id, "is_active": *req.IsActive})
	}
}

// HandleDeleteProduct handles DELETE /v1/admin/products/:id
func HandleDeleteProduct(products ProductAdmin, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := products.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, logger, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
