package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/internal/payment"
	"github.com/suratdiamond/storefront/pkg/errors"
)

const (
	defaultCurrency = "eur"
	defaultOrigin   = "http://localhost:5173"
)

// SessionBuilder turns priced items into a payment-provider session
type SessionBuilder struct {
	provider payment.Provider
	cfg      config.CheckoutConfig
	logger   *zap.Logger
}

// NewSessionBuilder creates a new session builder
func NewSessionBuilder(provider payment.Provider, cfg config.CheckoutConfig, logger *zap.Logger) *SessionBuilder {
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.DefaultOrigin == "" {
		cfg.DefaultOrigin = defaultOrigin
	}
	return &SessionBuilder{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// Build creates one session for items. Each call creates a new session.
func (b *SessionBuilder) Build(
	ctx context.Context,
	items []domain.PricedLineItem,
	user *domain.AuthenticatedUser,
	lang domain.Language,
	origin string,
) (*domain.CheckoutSession, error) {
	if len(items) == 0 {
		return nil, &errors.ValidationError{Message: "no items provided for checkout"}
	}

	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	if origin == "" {
		origin = b.cfg.DefaultOrigin
	}

	customerID, err := b.provider.FindCustomerIDByEmail(ctx, user.Email)
	if err != nil {
		return nil, &errors.PaymentProviderError{Op: "customer lookup", Message: payment.ErrorMessage(err), Err: err}
	}
	if customerID != "" {
		b.logger.Info("[CREATE-CHECKOUT] Found existing customer", zap.String("customer_id", customerID))
	}

	lineItems := make([]payment.LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, payment.LineItem{
			Name:       item.Name,
			UnitAmount: item.UnitAmountMinorUnits,
			Quantity:   item.Quantity,
		})
	}
	b.logger.Info("[CREATE-CHECKOUT] Created line items from database prices", zap.Int("count", len(lineItems)))

	metadata := domain.SessionMetadata{Language: lang, UserID: user.ID}
	params := payment.SessionParams{
		CustomerID:       customerID,
		CustomerEmail:    user.Email,
		Currency:         b.cfg.Currency,
		LineItems:        lineItems,
		SuccessURL:       origin + "/checkout?success=true&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:        origin + "/checkout?canceled=true",
		AllowedCountries: b.cfg.ShippingCountries,
		Metadata: map[string]string{
			"language": string(metadata.Language),
			"user_id":  metadata.UserID,
		},
	}

	session, err := b.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, &errors.PaymentProviderError{Op: "create session", Message: payment.ErrorMessage(err), Err: err}
	}

	return &domain.CheckoutSession{
		SessionID:       session.ID,
		RedirectURL:     session.URL,
		LineItems:       items,
		TotalMinorUnits: TotalMinorUnits(items),
		Metadata:        metadata,
	}, nil
}
