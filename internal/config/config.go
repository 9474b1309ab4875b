package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Shopify     ShopifyConfig
	Cargo       CargoConfig
	Pager       PagerConfig
	API         APIConfig
	LogLevel    string
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
}

// CargoConfig configures the external cargo-carrier API and the warehouse
// sender block stamped into every shipment request.
type CargoConfig struct {
	BaseURL      string
	CustomerCode string
	CarrierID    int
	Sender       SenderConfig
}

type SenderConfig struct {
	Company string
	Street1 string
	Street2 string
	City    string
	Phone   string
}

type PagerConfig struct {
	// AnchorBackwardCursor keeps the first response's end cursor when merging
	// backward pages, so "Previous" repeats the same window. Pending product
	// clarification on whether this is intended; default matches production.
	AnchorBackwardCursor bool
}

type APIConfig struct {
	// KeyHash is the bcrypt hash of the staff API key accepted by the auth
	// middleware. Generate with cmd/hash-api-key.
	KeyHash string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("CARGO_API_URL", "https://api.cargo.co.il")
	viper.SetDefault("CARGO_CUSTOMER_CODE", "125")
	viper.SetDefault("CARGO_CARRIER_ID", 1)
	viper.SetDefault("SENDER_COMPANY", "ADDICT")
	viper.SetDefault("SENDER_STREET1", "5")
	viper.SetDefault("SENDER_STREET2", "יוחנן הסנדלר")
	viper.SetDefault("SENDER_CITY", "הרצליה")
	viper.SetDefault("SENDER_PHONE", "035017825")
	viper.SetDefault("PAGER_ANCHOR_BACKWARD_CURSOR", true)

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Shopify: ShopifyConfig{
			ShopDomain:  getEnvOrViper("SHOPIFY_SHOP_DOMAIN", ""),
			AccessToken: getEnvOrViper("SHOPIFY_ACCESS_TOKEN", ""),
		},
		Cargo: CargoConfig{
			BaseURL:      getEnvOrViper("CARGO_API_URL", "https://api.cargo.co.il"),
			CustomerCode: getEnvOrViper("CARGO_CUSTOMER_CODE", "125"),
			CarrierID:    viper.GetInt("CARGO_CARRIER_ID"),
			Sender: SenderConfig{
				Company: getEnvOrViper("SENDER_COMPANY", "ADDICT"),
				Street1: getEnvOrViper("SENDER_STREET1", "5"),
				Street2: getEnvOrViper("SENDER_STREET2", "יוחנן הסנדלר"),
				City:    getEnvOrViper("SENDER_CITY", "הרצליה"),
				Phone:   getEnvOrViper("SENDER_PHONE", "035017825"),
			},
		},
		Pager: PagerConfig{
			AnchorBackwardCursor: viper.GetBool("PAGER_ANCHOR_BACKWARD_CURSOR"),
		},
		API: APIConfig{
			KeyHash: getEnvOrViper("API_KEY_HASH", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ACCESS_TOKEN is required")
	}
	if cfg.API.KeyHash == "" {
		return nil, fmt.Errorf("API_KEY_HASH is required")
	}

	return cfg, nil
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
