package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/suratdiamond/storefront/internal/domain"
)

// ProductRepository reads and maintains the product catalog
type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySKU(ctx context.Context, sku string) ([]*domain.Product, error)
	ListActive(ctx context.Context, category string) ([]*domain.Product, error)
	ListAll(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	CreateBatch(ctx context.Context, products []*domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	SetActive(ctx context.Context, id string, isActive bool) error
	Delete(ctx context.Context, id string) error
}

// OrderRepository reads orders and updates their status
type OrderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

// WishlistRepository stores saved products per user
type WishlistRepository interface {
	ListProductIDs(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

// UserRoleRepository resolves back-office roles
type UserRoleRepository interface {
	HasRole(ctx context.Context, userID string, role domain.Role) (bool, error)
}

// AnalyticsRepository stores visit events
type AnalyticsRepository interface {
	Create(ctx context.Context, event *domain.AnalyticsEvent) error
	List(ctx context.Context) ([]*domain.AnalyticsEvent, error)
}

// Repositories groups every repository used by the API
type Repositories struct {
	Product   ProductRepository
	Order     OrderRepository
	Wishlist  WishlistRepository
	UserRole  UserRoleRepository
	Analytics AnalyticsRepository
}
