package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Auth modes for resolving bearer tokens
const (
	AuthModeRemote = "remote"
	AuthModeJWT    = "jwt"
)

var defaultAllowedOrigins = []string{
	"https://bdurxefnxwlagftimxdp.lovableproject.com",
	"http://localhost:5173",
	"http://localhost:8080",
	"https://aum-sohoni.github.io",
}

var defaultShippingCountries = []string{"LV", "EE", "LT", "DE", "PL", "SE", "FI", "DK", "NO"}

type Config struct {
	Port          string
	Environment   string
	Database      DatabaseConfig
	Supabase      SupabaseConfig
	Stripe        StripeConfig
	Checkout      CheckoutConfig
	CORS          CORSConfig
	WhatsApp      WhatsAppConfig
	Analytics     AnalyticsConfig
	MigrationsDir string
	LogLevel      string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type SupabaseConfig struct {
	URL       string
	AnonKey   string
	JWTSecret string
	AuthMode  string
}

type StripeConfig struct {
	SecretKey string
	// APIURL overrides the Stripe API base, e.g. for stripe-mock
	APIURL string
}

type CheckoutConfig struct {
	Currency          string
	DefaultOrigin     string
	ShippingCountries []string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type WhatsAppConfig struct {
	Phone    string
	ShopName string
}

type AnalyticsConfig struct {
	HashSalt string
}

// Load reads and validates the server configuration
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read loads configuration without validating it. Used by the CLI tools,
// which only need the database settings.
func Read() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("AUTH_MODE", AuthModeRemote)

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Supabase: SupabaseConfig{
			URL:       strings.TrimSuffix(getEnvOrViper("SUPABASE_URL", ""), "/"),
			AnonKey:   getEnvOrViper("SUPABASE_ANON_KEY", ""),
			JWTSecret: getEnvOrViper("SUPABASE_JWT_SECRET", ""),
			AuthMode:  strings.ToLower(getEnvOrViper("AUTH_MODE", AuthModeRemote)),
		},
		Stripe: StripeConfig{
			SecretKey: getEnvOrViper("STRIPE_SECRET_KEY", ""),
			APIURL:    strings.TrimSuffix(getEnvOrViper("STRIPE_API_URL", ""), "/"),
		},
		Checkout: CheckoutConfig{
			Currency:          strings.ToLower(getEnvOrViper("CHECKOUT_CURRENCY", "eur")),
			DefaultOrigin:     getEnvOrViper("CHECKOUT_DEFAULT_ORIGIN", "http://localhost:5173"),
			ShippingCountries: getListOrDefault("SHIPPING_COUNTRIES", defaultShippingCountries),
		},
		CORS: CORSConfig{
			AllowedOrigins: getListOrDefault("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		},
		WhatsApp: WhatsAppConfig{
			Phone:    getEnvOrViper("WHATSAPP_PHONE", "37125578862"),
			ShopName: getEnvOrViper("SHOP_NAME", "Surat Diamond"),
		},
		Analytics: AnalyticsConfig{
			HashSalt: getEnvOrViper("ANALYTICS_HASH_SALT", "default-salt-change-in-production"),
		},
		MigrationsDir: getEnvOrViper("MIGRATIONS_DIR", "./migrations"),
		LogLevel:      getEnvOrViper("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Validate checks required fields
func (c *Config) Validate() error {
	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is not set")
	}
	switch c.Supabase.AuthMode {
	case AuthModeRemote:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required when AUTH_MODE=%s", AuthModeRemote)
		}
	case AuthModeJWT:
		if c.Supabase.JWTSecret == "" {
			return fmt.Errorf("SUPABASE_JWT_SECRET is required when AUTH_MODE=%s", AuthModeJWT)
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE %q", c.Supabase.AuthMode)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must not be empty")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getListOrDefault(key string, defaultValue []string) []string {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		out := make([]string, len(defaultValue))
		copy(out, defaultValue)
		return out
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
