package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://project.supabase.co", cfg.Supabase.URL)
	assert.Equal(t, AuthModeRemote, cfg.Supabase.AuthMode)
	assert.Equal(t, "eur", cfg.Checkout.Currency)
	assert.Empty(t, cfg.Stripe.APIURL)
	assert.Equal(t, "http://localhost:5173", cfg.Checkout.DefaultOrigin)
	assert.Equal(t, []string{"LV", "EE", "LT", "DE", "PL", "SE", "FI", "DK", "NO"}, cfg.Checkout.ShippingCountries)
	assert.Equal(t, "https://bdurxefnxwlagftimxdp.lovableproject.com", cfg.CORS.AllowedOrigins[0])
	assert.Len(t, cfg.CORS.AllowedOrigins, 4)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("AUTH_MODE", "JWT")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example, ,https://admin.example")
	t.Setenv("SHIPPING_COUNTRIES", "LV,EE")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, AuthModeJWT, cfg.Supabase.AuthMode)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"LV", "EE"}, cfg.Checkout.ShippingCountries)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingStripeKey(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, "STRIPE_SECRET_KEY is not set", err.Error())
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("DB_NAME", "catalog")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "catalog", cfg.Database.DBName)
}

func TestValidate_AuthModes(t *testing.T) {
	base := func() *Config {
		return &Config{
			Stripe:   StripeConfig{SecretKey: "sk"},
			Supabase: SupabaseConfig{AuthMode: AuthModeRemote, URL: "https://x.supabase.co"},
			CORS:     CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		}
	}

	assert.NoError(t, base().Validate())

	noURL := base()
	noURL.Supabase.URL = ""
	assert.Error(t, noURL.Validate())

	jwtNoSecret := base()
	jwtNoSecret.Supabase.AuthMode = AuthModeJWT
	assert.Error(t, jwtNoSecret.Validate())

	unknown := base()
	unknown.Supabase.AuthMode = "magic"
	assert.Error(t, unknown.Validate())

	noOrigins := base()
	noOrigins.CORS.AllowedOrigins = nil
	assert.Error(t, noOrigins.Validate())
}
