package domain

import "strings"

// Language is a storefront locale
type Language string

const (
	LanguageEN Language = "en"
	LanguageLV Language = "lv"
	LanguageRU Language = "ru"
)

// DefaultLanguage is used when the caller sends nothing or an unknown value
const DefaultLanguage = LanguageEN

// ParseLanguage maps a caller-supplied locale onto a supported language
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageLV:
		return LanguageLV
	case LanguageRU:
		return LanguageRU
	default:
		return DefaultLanguage
	}
}

// OrderStatus represents the fulfilment status of a storefront order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return newStatus == OrderStatusProcessing ||
			newStatus == OrderStatusCancelled
	case OrderStatusProcessing:
		return newStatus == OrderStatusShipped ||
			newStatus == OrderStatusCancelled
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}

// Role is a back-office role stored in user_roles
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Product categories used by the catalog and the CSV importer
const (
	CategoryRings     = "rings"
	CategoryNecklaces = "necklaces"
	CategoryBracelets = "bracelets"
	CategoryEarrings  = "earrings"
	CategoryOthers    = "others"
)

// EventTypePageView is recorded for every storefront route change
const EventTypePageView = "page_view"
