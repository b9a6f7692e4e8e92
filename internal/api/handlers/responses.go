package handlers

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/suratdiamond/storefront/internal/domain"
)

// ProductResponse represents a catalog product
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	NameLV        *string         `json:"name_lv"`
	NameRU        *string         `json:"name_ru"`
	Description   *string         `json:"description"`
	DescriptionLV *string         `json:"description_lv"`
	DescriptionRU *string         `json:"description_ru"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	ImageURL      *string         `json:"image_url"`
	Carat         *string         `json:"carat"`
	Clarity       *string         `json:"clarity"`
	Cut           *string         `json:"cut"`
	Color         *string         `json:"color"`
	Metal         *string         `json:"metal"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// OrderResponse represents the order response
type OrderResponse struct {
	ID              string                  `json:"id"`
	UserID          *string                 `json:"user_id"`
	TotalAmount     decimal.Decimal         `json:"total_amount"`
	Status          domain.OrderStatus      `json:"status"`
	ShippingAddress *domain.ShippingAddress `json:"shipping_address"`
	StripeSessionID *string                 `json:"stripe_session_id,omitempty"`
	Items           []OrderItemResponse     `json:"items"`
	CreatedAt       string                  `json:"created_at"`
	UpdatedAt       string                  `json:"updated_at"`
}

type OrderItemResponse struct {
	ID           string          `json:"id"`
	ProductID    *string         `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU(),
		Name:          p.Name,
		NameLV:        p.NameLV,
		NameRU:        p.NameRU,
		Description:   p.Description,
		DescriptionLV: p.DescriptionLV,
		DescriptionRU: p.DescriptionRU,
		Price:         p.Price,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		Carat:         p.Carat,
		Clarity:       p.Clarity,
		Cut:           p.Cut,
		Color:         p.Color,
		Metal:         p.Metal,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}
	return result
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:           item.ID.String(),
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: item.ProductPrice,
			Quantity:     item.Quantity,
		})
	}

	return OrderResponse{
		ID:              o.ID.String(),
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		ShippingAddress: o.ShippingAddress,
		StripeSessionID: o.StripeSessionID,
		Items:           items,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       o.UpdatedAt.Format(time.RFC3339),
	}
}

func toOrderResponses(orders []*domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, toOrderResponse(o))
	}
	return result
}
