package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/api/middleware"
)

// WishlistService stores saved products per user
type WishlistService interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

// AddWishlistRequest represents a product being saved
type AddWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// HandleListWishlist handles GET /v1/wishlist
func HandleListWishlist(wishlist WishlistService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ids, err := wishlist.List(c.Request.Context(), user.ID)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"product_ids": ids})
	}
}

// HandleAddToWishlist handles POST /v1/wishlist
func HandleAddToWishlist(wishlist WishlistService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req AddWishlistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		if err := wishlist.Add(c.Request.Context(), user.ID, req.ProductID); err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"product_id": req.ProductID})
	}
}

// HandleRemoveFromWishlist handles DELETE /v1/wishlist/:productId
func HandleRemoveFromWishlist(wishlist WishlistService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.GetUserFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if err := wishlist.Remove(c.Request.Context(), user.ID, c.Param("productId")); err != nil {
			respondError(c, logger, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
