package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/config"
	"github.com/suratdiamond/storefront/internal/domain"
)

// SupabaseClient resolves tokens against the Supabase auth (GoTrue) API
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSupabaseClient creates a new Supabase auth client
func NewSupabaseClient(cfg config.SupabaseConfig, logger *zap.Logger) *SupabaseClient {
	return &SupabaseClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		anonKey: cfg.AnonKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type supabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type supabaseError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e supabaseError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	default:
		return e.ErrorDescription
	}
}

// GetUser implements Provider
func (c *SupabaseClient) GetUser(ctx context.Context, token string) (*domain.AuthenticatedUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if c.anonKey != "" {
		req.Header.Set("apikey", c.anonKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr supabaseError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.text() != "" {
			return nil, fmt.Errorf("%s", apiErr.text())
		}
		return nil, fmt.Errorf("auth API error: status %d", resp.StatusCode)
	}

	var user supabaseUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &domain.AuthenticatedUser{ID: user.ID, Email: user.Email}, nil
}
