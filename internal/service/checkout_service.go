package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
)

// UserAuthenticator resolves the caller from an Authorization header
type UserAuthenticator interface {
	Authenticate(ctx context.Context, header string) (*domain.AuthenticatedUser, error)
}

// CheckoutService runs the create-checkout flow: authenticate, price, create session
type CheckoutService struct {
	auth     UserAuthenticator
	pricer   *CartPricer
	sessions *SessionBuilder
	logger   *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(auth UserAuthenticator, pricer *CartPricer, sessions *SessionBuilder, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		auth:     auth,
		pricer:   pricer,
		sessions: sessions,
		logger:   logger,
	}
}

// CreateCheckout authenticates the caller before the body is even decoded,
// so an unauthenticated request never reaches the product store.
func (s *CheckoutService) CreateCheckout(ctx context.Context, authHeader, origin string, body []byte) (*domain.CheckoutSession, error) {
	s.logger.Info("[CREATE-CHECKOUT] Function started")

	user, err := s.auth.Authenticate(ctx, authHeader)
	if err != nil {
		return nil, s.fail(err)
	}
	s.logger.Info("[CREATE-CHECKOUT] User authenticated",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)

	req, err := decodeCheckoutRequest(body)
	if err != nil {
		return nil, s.fail(err)
	}
	lang := domain.ParseLanguage(req.Language)
	s.logger.Info("[CREATE-CHECKOUT] Received checkout request",
		zap.Int("item_count", len(req.Items)),
		zap.String("language", string(lang)),
	)

	lines, err := req.Lines()
	if err != nil {
		return nil, s.fail(err)
	}

	items, err := s.pricer.Price(ctx, lines, lang)
	if err != nil {
		return nil, s.fail(err)
	}
	s.logger.Info("[CREATE-CHECKOUT] Products validated from database", zap.Int("count", len(items)))

	session, err := s.sessions.Build(ctx, items, user, lang, origin)
	if err != nil {
		return nil, s.fail(err)
	}
	s.logger.Info("[CREATE-CHECKOUT] Checkout session created",
		zap.String("session_id", session.SessionID),
		zap.String("url", session.RedirectURL),
		zap.Int64("total_minor_units", session.TotalMinorUnits),
	)

	return session, nil
}

func (s *CheckoutService) fail(err error) error {
	s.logger.Error("[CREATE-CHECKOUT] ERROR in create-checkout", zap.String("message", err.Error()))
	return err
}
