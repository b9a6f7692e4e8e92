package identity

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/domain"
	"github.com/suratdiamond/storefront/pkg/errors"
)

// Provider resolves an access token to the user it was issued for
type Provider interface {
	GetUser(ctx context.Context, token string) (*domain.AuthenticatedUser, error)
}

// NewProvider selects the token provider configured by AUTH_MODE
func NewProvider(cfg config.SupabaseConfig, logger *zap.Logger) Provider {
	if cfg.AuthMode == config.AuthModeJWT {
		return NewJWTVerifier(cfg.JWTSecret)
	}
	return NewSupabaseClient(cfg, logger)
}

// Authenticator turns an Authorization header into an authenticated user
type Authenticator struct {
	provider Provider
	logger   *zap.Logger
}

// NewAuthenticator creates a new authenticator backed by provider
func NewAuthenticator(provider Provider, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		provider: provider,
		logger:   logger,
	}
}

// Authenticate resolves the bearer credential in header. Every failure is an *errors.AuthError.
func (a *Authenticator) Authenticate(ctx context.Context, header string) (*domain.AuthenticatedUser, error) {
	token := bearerToken(header)
	if token == "" {
		return nil, &errors.AuthError{Message: "no authorization header"}
	}

	user, err := a.provider.GetUser(ctx, token)
	if err != nil {
		a.logger.Debug("Identity provider rejected token", zap.Error(err))
		return nil, &errors.AuthError{Message: fmt.Sprintf("authentication error: %s", err.Error())}
	}

	if user == nil || user.Email == "" {
		return nil, &errors.AuthError{Message: "user not authenticated or email not available"}
	}

	return user, nil
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "Bearer" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
