package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Log         LogConfig
	HTTP        HTTPConfig
	Shopify     ShopifyConfig
	WooCommerce WooCommerceConfig
	Dfin        DfinConfig
	Protection  ProtectionConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxBodySize      int64
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// ShopifyConfig holds Shopify Admin API settings
type ShopifyConfig struct {
	Shop          string // shop domain used to resolve the stored session
	APIVersion    string // versioned Admin API, e.g. "2024-10"
	WebhookSecret string // signs inbound Shopify webhook deliveries
	Timeout       time.Duration
}

// WooCommerceConfig holds WooCommerce REST API settings
type WooCommerceConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	APIVersion     string // e.g. "wc/v3"
	Timeout        time.Duration
}

// DfinConfig holds Dfin payment gateway settings
type DfinConfig struct {
	BaseURL       string
	PublicKey     string
	SecretKey     string
	WebhookSecret string
	Timeout       time.Duration
}

// ProtectionTierConfig is one subtotal tier of the shipping protection table
type ProtectionTierConfig struct {
	Threshold string // inclusive lower bound of the tier, major units
	VariantID string // Shopify variant added to the cart for this tier
}

// ProtectionConfig holds the tiered shipping protection table
type ProtectionConfig struct {
	Tiers []ProtectionTierConfig
}

// DSN returns the postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres connection URL used by the migration runner
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with SYNC_ prefix (e.g., SYNC_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Shopify: ShopifyConfig{
			Shop:          v.GetString("shopify.shop"),
			APIVersion:    v.GetString("shopify.api_version"),
			WebhookSecret: v.GetString("shopify.webhook_secret"),
			Timeout:       v.GetDuration("shopify.timeout"),
		},
		WooCommerce: WooCommerceConfig{
			BaseURL:        v.GetString("woocommerce.base_url"),
			ConsumerKey:    v.GetString("woocommerce.consumer_key"),
			ConsumerSecret: v.GetString("woocommerce.consumer_secret"),
			APIVersion:     v.GetString("woocommerce.api_version"),
			Timeout:        v.GetDuration("woocommerce.timeout"),
		},
		Dfin: DfinConfig{
			BaseURL:       v.GetString("dfin.base_url"),
			PublicKey:     v.GetString("dfin.public_key"),
			SecretKey:     v.GetString("dfin.secret_key"),
			WebhookSecret: v.GetString("dfin.webhook_secret"),
			Timeout:       v.GetDuration("dfin.timeout"),
		},
		Protection: loadProtection(v),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadProtection decodes the [[protection.tiers]] array
func loadProtection(v *viper.Viper) ProtectionConfig {
	var cfg ProtectionConfig
	raw := v.Get("protection.tiers")
	tiers, ok := raw.([]any)
	if !ok {
		return cfg
	}
	for _, entry := range tiers {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		tier := ProtectionTierConfig{}
		if threshold, ok := m["threshold"].(string); ok {
			tier.Threshold = threshold
		}
		if variantID, ok := m["variant_id"].(string); ok {
			tier.VariantID = variantID
		}
		cfg.Tiers = append(cfg.Tiers, tier)
	}
	return cfg
}

// setDefaults registers built-in defaults
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sync-bridge")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.dbname", "syncbridge")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30)
	v.SetDefault("database.conn_max_idle_time", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.max_body_size", int64(1<<20))

	v.SetDefault("shopify.api_version", "2024-10")
	v.SetDefault("shopify.timeout", 30*time.Second)

	v.SetDefault("woocommerce.api_version", "wc/v3")
	v.SetDefault("woocommerce.timeout", 30*time.Second)

	v.SetDefault("dfin.timeout", 30*time.Second)
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("config: app.port is required")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
