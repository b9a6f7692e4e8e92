package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/pkg/errors"
)

// CheckoutRequest is the body of the checkout and WhatsApp endpoints.
// Lines carry no price; unknown fields are ignored.
type CheckoutRequest struct {
	Items    []CheckoutItem `json:"items"`
	Language string         `json:"language"`
}

// CheckoutItem is one requested cart line
type CheckoutItem struct {
	ProductID string          `json:"productId"`
	Quantity  json.RawMessage `json:"quantity"`
}

// CheckoutResponse is returned by the checkout endpoint
type CheckoutResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"sessionId"`
}

// WhatsAppOrderResponse is returned by the WhatsApp endpoint
type WhatsAppOrderResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// ProductRequest is the admin create/update payload
type ProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	NameLV        *string  `json:"name_lv"`
	NameRU        *string  `json:"name_ru"`
	Description   *string  `json:"description"`
	DescriptionLV *string  `json:"description_lv"`
	DescriptionRU *string  `json:"description_ru"`
	Price         *float64 `json:"price" binding:"required,min=0"`
	Category      string   `json:"category" binding:"required"`
	ImageURL      *string  `json:"image_url"`
	Carat         *string  `json:"carat"`
	Clarity       *string  `json:"clarity"`
	Cut           *string  `json:"cut"`
	Color         *string  `json:"color"`
	Metal         *string  `json:"metal"`
	IsActive      *bool    `json:"is_active"`
}

// AnalyticsEventRequest is the body of POST /v1/analytics/events
type AnalyticsEventRequest struct {
	EventType string               `json:"event_type"`
	PagePath  string               `json:"page_path" binding:"required"`
	SessionID string               `json:"session_id" binding:"required"`
	Metadata  domain.EventMetadata `json:"metadata"`
}

// decodeCheckoutRequest parses the raw body of a checkout request
func decodeCheckoutRequest(body []byte) (*CheckoutRequest, error) {
	var req CheckoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &errors.ValidationError{Message: "invalid request body"}
	}
	return &req, nil
}

// Lines converts the requested items into cart lines.
// The first malformed line fails the whole request.
func (r *CheckoutRequest) Lines() ([]domain.CartLineRequest, error) {
	if len(r.Items) == 0 {
		return nil, &errors.ValidationError{Message: "no items provided for checkout"}
	}

	lines := make([]domain.CartLineRequest, 0, len(r.Items))
	for i, item := range r.Items {
		productID := strings.TrimSpace(item.ProductID)
		if productID == "" {
			return nil, &errors.ValidationError{
				Field:   fmt.Sprintf("items[%d].productId", i),
				Message: "invalid product ID provided",
			}
		}

		qty, ok := parseQuantity(item.Quantity)
		if !ok {
			return nil, &errors.ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "invalid quantity provided",
			}
		}

		lines = append(lines, domain.CartLineRequest{ProductID: productID, Quantity: qty})
	}

	return lines, nil
}

// maxQuantity bounds a line so its total cannot overflow int64 minor units
const maxQuantity = math.MaxInt32

// parseQuantity accepts JSON numbers that are positive integers, including forms like 2.0.
// Quoted numbers, null and other JSON types are rejected.
func parseQuantity(raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}

	n := json.Number(raw)
	if v, err := n.Int64(); err == nil {
		return v, v >= 1 && v <= maxQuantity
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < 1 || f > maxQuantity {
		return 0, false
	}
	return int64(f), true
}
