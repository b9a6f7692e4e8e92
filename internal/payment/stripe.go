package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/config"
)

// Provider is the payment-provider surface used by checkout
type Provider interface {
	FindCustomerIDByEmail(ctx context.Context, email string) (string, error)
	CreateCheckoutSession(ctx context.Context, params SessionParams) (*Session, error)
}

// LineItem is one inline-priced checkout line
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// SessionParams describes a one-off payment session
type SessionParams struct {
	CustomerID       string
	CustomerEmail    string
	Currency         string
	LineItems        []LineItem
	SuccessURL       string
	CancelURL        string
	AllowedCountries []string
	Metadata         map[string]string
}

// Session is the provider-side checkout session
type Session struct {
	ID  string
	URL string
}

// StripeClient implements Provider on top of the Stripe API
type StripeClient struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeClient creates a new Stripe client.
// Requests are sent once; a failed call surfaces to the caller without retry.
func NewStripeClient(cfg config.StripeConfig, logger *zap.Logger) *StripeClient {
	return &StripeClient{
		api:    client.New(cfg.SecretKey, newBackends(cfg, logger)),
		logger: logger,
	}
}

func newBackends(cfg config.StripeConfig, logger *zap.Logger) *stripe.Backends {
	backendConfig := func() *stripe.BackendConfig {
		bc := &stripe.BackendConfig{
			MaxNetworkRetries: stripe.Int64(0),
			LeveledLogger:     logger.Named("stripe").Sugar(),
		}
		if cfg.APIURL != "" {
			bc.URL = stripe.String(cfg.APIURL)
		}
		return bc
	}

	return &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig()),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig()),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig()),
	}
}

// FindCustomerIDByEmail returns the id of the first customer with email, or "" when none exists
func (c *StripeClient) FindCustomerIDByEmail(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Limit = stripe.Int64(1)
	params.Context = ctx

	iter := c.api.Customers.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", err
	}

	return "", nil
}

// CreateCheckoutSession creates a payment-mode checkout session
func (c *StripeClient) CreateCheckoutSession(ctx context.Context, p SessionParams) (*Session, error) {
	params := buildSessionParams(p)
	params.Context = ctx

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.logger.Warn("Stripe session create failed", zap.String("message", ErrorMessage(err)))
		return nil, err
	}

	return &Session{ID: s.ID, URL: s.URL}, nil
}

func buildSessionParams(p SessionParams) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(p.LineItems))
	for _, item := range p.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(p.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		LineItems:                lineItems,
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:               stripe.String(p.SuccessURL),
		CancelURL:                stripe.String(p.CancelURL),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(p.AllowedCountries),
		},
	}

	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	} else {
		params.CustomerEmail = stripe.String(p.CustomerEmail)
	}

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	return params
}

// ErrorMessage extracts the provider's message from a Stripe error
func ErrorMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
