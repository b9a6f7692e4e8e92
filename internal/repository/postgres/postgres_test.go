package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/pkg/errors"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := NewConnection(config.DatabaseConfig{
		Host:     host,
		Port:     fmt.Sprint(port.Int()),
		User:     "testuser",
		Password: "testpass",
		DBName:   "testdb",
		SSLMode:  "disable",
	})
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db, "../../../migrations"))

	cleanup := func() {
		db.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

func newTestProduct(name, price string, active bool) *domain.Product {
	return &domain.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: domain.CategoryRings,
		IsActive: active,
	}
}

func TestProductRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewProductRepository(db, zap.NewNop())

	ring := newTestProduct("Ring", "10.00", true)
	lv := "Gredzens"
	ring.NameLV = &lv
	retired := newTestProduct("Old Ring", "5.50", false)
	require.NoError(t, repo.Create(ctx, ring))
	require.NoError(t, repo.CreateBatch(ctx, []*domain.Product{retired}))

	t.Run("GetByIDs ignores unknown and malformed ids", func(t *testing.T) {
		products, err := repo.GetByIDs(ctx, []string{ring.ID, retired.ID, uuid.NewString(), "C"})
		require.NoError(t, err)
		require.Len(t, products, 2)

		byID := map[string]*domain.Product{}
		for _, p := range products {
			byID[p.ID] = p
		}
		assert.True(t, byID[ring.ID].Price.Equal(decimal.RequireFromString("10")))
		assert.Equal(t, "Gredzens", *byID[ring.ID].NameLV)
		assert.False(t, byID[retired.ID].IsActive)
	})

	t.Run("ListActive excludes inactive", func(t *testing.T) {
		products, err := repo.ListActive(ctx, domain.CategoryRings)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, ring.ID, products[0].ID)
	})

	t.Run("FindBySKU", func(t *testing.T) {
		products, err := repo.FindBySKU(ctx, domain.SKUFromID(ring.ID))
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, ring.ID, products[0].ID)
	})

	t.Run("SetActive and Delete", func(t *testing.T) {
		require.NoError(t, repo.SetActive(ctx, retired.ID, true))
		p, err := repo.GetByID(ctx, retired.ID)
		require.NoError(t, err)
		assert.True(t, p.IsActive)

		require.NoError(t, repo.Delete(ctx, retired.ID))
		_, err = repo.GetByID(ctx, retired.ID)
		assert.True(t, errors.IsNotFound(err))

		assert.True(t, errors.IsNotFound(repo.Delete(ctx, retired.ID)))
	})
}

func TestOrderRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewOrderRepository(db, zap.NewNop())

	orderID := uuid.New()
	userID := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, total_amount, status, shipping_address) VALUES ($1, $2, $3, 'pending', $4)`,
		orderID, userID, "20.00", domain.ShippingAddress{City: "Riga", Country: "LV"},
	)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO order_items (order_id, product_name, product_price, quantity) VALUES ($1, 'Ring', 10.00, 2)`,
		orderID,
	)
	require.NoError(t, err)

	orders, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Riga", orders[0].ShippingAddress.City)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)

	require.NoError(t, repo.UpdateStatus(ctx, orderID, domain.OrderStatusProcessing))
	order, err := repo.GetByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, order.Status)

	status := domain.OrderStatusPending
	pending, err := repo.List(ctx, &status)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.True(t, errors.IsNotFound(repo.UpdateStatus(ctx, uuid.New(), domain.OrderStatusShipped)))
}

func TestWishlistAndRoles(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	products := NewProductRepository(db, zap.NewNop())
	wishlist := NewWishlistRepository(db, zap.NewNop())
	roles := NewUserRoleRepository(db, zap.NewNop())

	p := newTestProduct("Necklace", "99.00", true)
	require.NoError(t, products.Create(ctx, p))

	userID := uuid.NewString()
	require.NoError(t, wishlist.Add(ctx, userID, p.ID))
	require.NoError(t, wishlist.Add(ctx, userID, p.ID))

	ids, err := wishlist.ListProductIDs(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, ids)

	require.NoError(t, wishlist.Remove(ctx, userID, p.ID))
	ids, err = wishlist.ListProductIDs(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	isAdmin, err := roles.HasRole(ctx, userID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	require.NoError(t, roles.Grant(ctx, userID, domain.RoleAdmin))
	isAdmin, err = roles.HasRole(ctx, userID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestAnalyticsRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewAnalyticsRepository(db, zap.NewNop())

	event := &domain.AnalyticsEvent{
		EventType: domain.EventTypePageView,
		PagePath:  "/shop",
		SessionID: "abc123",
		Metadata: domain.EventMetadata{
			Title:    "Shop",
			Location: &domain.VisitorLocation{Country: "Latvia", City: "Riga"},
		},
	}
	require.NoError(t, repo.Create(ctx, event))

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Latvia", events[0].Metadata.Location.Country)
	assert.Nil(t, events[0].UserID)
}
