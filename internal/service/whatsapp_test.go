package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/pkg/errors"
)

func newWhatsAppService(store *mockProductReader) *WhatsAppService {
	logger := zap.NewNop()
	return NewWhatsAppService(
		NewCartPricer(store, logger),
		config.WhatsAppConfig{Phone: "37125578862", ShopName: "Surat Diamond"},
		logger,
	)
}

func TestWhatsAppService_BuildOrderRequest(t *testing.T) {
	carat := "0.5"
	lv := "Gredzens"
	ring := newProduct("3f2a9c1e-0000-4000-8000-000000000001", "Ring", "10.00", true)
	ring.Carat = &carat
	ring.NameLV = &lv
	chain := newProduct("ab12cd34-0000-4000-8000-000000000002", "Chain", "25.50", true)

	store := new(mockProductReader)
	store.On("GetByIDs", mock.Anything, []string{ring.ID, chain.ID}).
		Return([]*domain.Product{ring, chain}, nil)

	body := `{"language":"lv","items":[
		{"productId":"` + ring.ID + `","quantity":2,"price":1},
		{"productId":"` + chain.ID + `","quantity":1}
	]}`

	resp, err := newWhatsAppService(store).BuildOrderRequest(context.Background(), []byte(body))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Message, "🛍️ *ORDER REQUEST* 💍\n\nHello Surat Diamond!"))
	assert.Contains(t, resp.Message, "✨ *Gredzens*\n   🆔 *SKU:* 3F2A9C1E\n   💎 *Ct:* 0.5\n   🔢 *Qty:* 2\n   💶 *Price:* €20.00")
	assert.Contains(t, resp.Message, "✨ *Chain*\n   🆔 *SKU:* AB12CD34\n   💎 *Ct:* N/A\n   🔢 *Qty:* 1\n   💶 *Price:* €25.50")
	assert.Contains(t, resp.Message, "💰 *Total Estimate: €45.50*")

	require.True(t, strings.HasPrefix(resp.URL, "https://wa.me/37125578862?text="))
	assert.NotContains(t, resp.URL, "+")

	parsed, err := url.Parse(resp.URL)
	require.NoError(t, err)
	assert.Equal(t, resp.Message, parsed.Query().Get("text"))
}

func TestWhatsAppService_RejectsInvalidCart(t *testing.T) {
	store := new(mockProductReader)

	_, err := newWhatsAppService(store).BuildOrderRequest(context.Background(),
		[]byte(`{"items":[{"productId":"A","quantity":0}]}`))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	store.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}

func TestWhatsAppService_FormatPrice(t *testing.T) {
	s := newWhatsAppService(new(mockProductReader))

	tests := map[int64]string{
		0:                "€0.00",
		5:                "€0.05",
		123456:           "€1,234.56",
		900719925474099:  "€9,007,199,254,740.99",
		9007199254740993: "€90,071,992,547,409.93",
	}
	for minor, want := range tests {
		assert.Equal(t, want, s.formatPrice(minor), "minor units %d", minor)
	}
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "a%20b%26c%3Dd", encodeURIComponent("a b&c=d"))
}
