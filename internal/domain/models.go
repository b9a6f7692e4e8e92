package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Product is the authoritative catalog record
type Product struct {
	ID            string
	Name          string
	NameLV        *string
	NameRU        *string
	Description   *string
	DescriptionLV *string
	DescriptionRU *string
	Price         decimal.Decimal
	Category      string
	ImageURL      *string
	Carat         *string
	Clarity       *string
	Cut           *string
	Color         *string
	Metal         *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LocalizedName returns the name for lang, falling back to the default name
func (p *Product) LocalizedName(lang Language) string {
	switch lang {
	case LanguageLV:
		if p.NameLV != nil && *p.NameLV != "" {
			return *p.NameLV
		}
	case LanguageRU:
		if p.NameRU != nil && *p.NameRU != "" {
			return *p.NameRU
		}
	}
	return p.Name
}

// UnitAmountMinorUnits converts the stored price to cents
func (p *Product) UnitAmountMinorUnits() int64 {
	return p.Price.Mul(hundred).Round(0).IntPart()
}

// SKU is the short reference shown to customers and shop staff
func (p *Product) SKU() string {
	return SKUFromID(p.ID)
}

// SKUFromID derives the SKU from a product id
func SKUFromID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// CartLineRequest is one caller-supplied cart line. It never carries a price.
type CartLineRequest struct {
	ProductID string
	Quantity  int64
}

// PricedLineItem is a cart line priced from the product store
type PricedLineItem struct {
	ProductID            string
	Name                 string
	Carat                string
	UnitAmountMinorUnits int64
	Quantity             int64
}

// TotalMinorUnits is unit amount times quantity
func (i PricedLineItem) TotalMinorUnits() int64 {
	return i.UnitAmountMinorUnits * i.Quantity
}

// AuthenticatedUser is the identity resolved from a bearer credential
type AuthenticatedUser struct {
	ID    string
	Email string
}

// SessionMetadata is attached to the payment-provider session
type SessionMetadata struct {
	Language Language
	UserID   string
}

// CheckoutSession is a payment-provider session created for one request
type CheckoutSession struct {
	SessionID       string
	RedirectURL     string
	LineItems       []PricedLineItem
	TotalMinorUnits int64
	Metadata        SessionMetadata
}

// ShippingAddress is stored as JSONB on orders
type ShippingAddress struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Value implements driver.Valuer
func (a ShippingAddress) Value() (driver.Value, error) {
	return marshalJSON(a)
}

// Scan implements sql.Scanner
func (a *ShippingAddress) Scan(src interface{}) error {
	return scanJSON(src, a)
}

// Order represents a placed storefront order
type Order struct {
	ID              uuid.UUID
	UserID          *string
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	ShippingAddress *ShippingAddress
	StripeSessionID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Items           []OrderItem
}

// OrderItem represents a line of a placed order
type OrderItem struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    *string
	ProductName  string
	ProductPrice decimal.Decimal
	Quantity     int
}

// WishlistItem links a user to a saved product
type WishlistItem struct {
	ID        uuid.UUID
	UserID    string
	ProductID string
	CreatedAt time.Time
}

// VisitorLocation is the coarse location reported by the storefront
type VisitorLocation struct {
	Country string `json:"country,omitempty"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
}

// EventMetadata is the typed payload of an analytics event
type EventMetadata struct {
	Title    string           `json:"title,omitempty"`
	Location *VisitorLocation `json:"location,omitempty"`
}

// Value implements driver.Valuer
func (m EventMetadata) Value() (driver.Value, error) {
	return marshalJSON(m)
}

// Scan implements sql.Scanner
func (m *EventMetadata) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// AnalyticsEvent is one tracked storefront visit event
type AnalyticsEvent struct {
	ID          uuid.UUID
	EventType   string
	PagePath    string
	Metadata    EventMetadata
	UserID      *string
	SessionID   string
	VisitorHash string
	CreatedAt   time.Time
}

// LocationCount is one row of a "views by location" breakdown
type LocationCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AnalyticsSummary aggregates analytics events for the back-office
type AnalyticsSummary struct {
	TotalViews     int             `json:"total_views"`
	UniqueVisitors int             `json:"unique_visitors"`
	TopCountries   []LocationCount `json:"top_countries"`
	TopCities      []LocationCount `json:"top_cities"`
}

// marshalJSON returns text so lib/pq does not send the payload as bytea
func marshalJSON(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
}
