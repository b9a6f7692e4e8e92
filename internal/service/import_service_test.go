package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/pkg/errors"
)

const shopifyCSV = `Handle,Title,Body (HTML),Type,Option1 Value,Option2 Value,Variant Price,Variant Grams,Image Src
solitaire,Solitaire Ring,"<p>Classic <b>solitaire</b></p>
<p>with a brilliant cut</p>",Rings,Yellow Gold,7,1200.00,3.2,https://img.example/solitaire.jpg
solitaire,,,,White Gold,7,1250.00,,
drops,Drop Earrings,,,Default Title,,300,,
`

func TestParseProductCSV_Shopify(t *testing.T) {
	records, err := ParseProductCSV(strings.NewReader(shopifyCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Solitaire Ring", records[1]["Title"], "variant rows inherit the title of their handle")

	first := MapRecordToProduct(records[0])
	require.NotNil(t, first)
	assert.Equal(t, "Solitaire Ring (Yellow Gold, 7)", first.Name)
	assert.Equal(t, "1200", first.Price.String())
	assert.Equal(t, domain.CategoryRings, first.Category)
	assert.Equal(t, "Classic solitaire with a brilliant cut", *first.Description)
	assert.Equal(t, "3.2g Yellow Gold", *first.Metal)
	assert.Equal(t, "https://img.example/solitaire.jpg", *first.ImageURL)
	assert.True(t, first.IsActive)

	variant := MapRecordToProduct(records[1])
	require.NotNil(t, variant)
	assert.Equal(t, "Solitaire Ring (White Gold, 7)", variant.Name)

	earrings := MapRecordToProduct(records[2])
	require.NotNil(t, earrings)
	assert.Equal(t, "Drop Earrings", earrings.Name)
	assert.Equal(t, domain.CategoryEarrings, earrings.Category)
}

func TestParseProductCSV_Standard(t *testing.T) {
	csv := "name,price,category,name_lv,carat\nTennis Bracelet,899.99,Bracelets,Tenisa aproce,2.0\n,10,rings,,\n"

	records, err := ParseProductCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	p := MapRecordToProduct(records[0])
	require.NotNil(t, p)
	assert.Equal(t, "Tennis Bracelet", p.Name)
	assert.Equal(t, "bracelets", p.Category)
	assert.Equal(t, "Tenisa aproce", *p.NameLV)
	assert.Equal(t, "2.0", *p.Carat)
	assert.Nil(t, p.NameRU)

	assert.Nil(t, MapRecordToProduct(records[1]), "rows without a name are skipped")
}

func TestParseProductCSV_InvalidHeaders(t *testing.T) {
	_, err := ParseProductCSV(strings.NewReader("sku,amount\nA,1\n"))
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestInferCategory(t *testing.T) {
	tests := map[string]string{
		"Gold Necklace":    domain.CategoryNecklaces,
		"Hoop Earring":     domain.CategoryEarrings,
		"Signet Ring":      domain.CategoryRings,
		"Charm Bracelet":   domain.CategoryBracelets,
		"Gift Certificate": domain.CategoryOthers,
	}
	for title, want := range tests {
		assert.Equal(t, want, inferCategory(map[string]string{"Title": title}), title)
	}
}

func TestProductImporter_Import(t *testing.T) {
	records := make([]map[string]string, 0, 23)
	for i := 0; i < 22; i++ {
		records = append(records, map[string]string{"name": "Item", "price": "5"})
	}
	records = append(records, map[string]string{"name": ""})

	writer := new(mockBatchWriter)
	writer.On("CreateBatch", mock.Anything, mock.MatchedBy(func(b []*domain.Product) bool { return len(b) == 10 })).
		Return(nil).Once()
	writer.On("CreateBatch", mock.Anything, mock.MatchedBy(func(b []*domain.Product) bool { return len(b) == 10 })).
		Return(assert.AnError).Once()
	writer.On("CreateBatch", mock.Anything, mock.MatchedBy(func(b []*domain.Product) bool { return len(b) == 2 })).
		Return(nil).Once()

	stats, err := NewProductImporter(writer, zap.NewNop()).Import(context.Background(), records)
	require.NoError(t, err)

	assert.Equal(t, ImportStats{Total: 23, Success: 12, Failed: 10, Skipped: 1}, stats)
	writer.AssertExpectations(t)
}
