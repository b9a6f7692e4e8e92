package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/internal/service"
)

const maxCheckoutBodyBytes = 1 << 20

// CheckoutCreator runs the create-checkout flow
type CheckoutCreator interface {
	CreateCheckout(ctx context.Context, authHeader, origin string, body []byte) (*domain.CheckoutSession, error)
}

// WhatsAppOrderBuilder renders a cart as a WhatsApp order request
type WhatsAppOrderBuilder interface {
	BuildOrderRequest(ctx context.Context, body []byte) (*service.WhatsAppOrderResponse, error)
}

// HandleCreateCheckout handles POST /functions/v1/create-checkout and POST /v1/checkout/session.
// Every failure is reported as 500 with the error message.
func HandleCreateCheckout(checkout CheckoutCreator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxCheckoutBodyBytes))
		if err != nil {
			logger.Warn("Failed to read checkout body", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read request body"})
			return
		}

		session, err := checkout.CreateCheckout(
			c.Request.Context(),
			c.GetHeader("Authorization"),
			c.GetHeader("Origin"),
			body,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, service.CheckoutResponse{
			URL:       session.RedirectURL,
			SessionID: session.SessionID,
		})
	}
}

// HandleWhatsAppOrder handles POST /v1/checkout/whatsapp
func HandleWhatsAppOrder(builder WhatsAppOrderBuilder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxCheckoutBodyBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		order, err := builder.BuildOrderRequest(c.Request.Context(), body)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
