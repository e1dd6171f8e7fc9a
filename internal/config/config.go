// Package config loads server and CLI settings from FORMBUILDER_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix.
const Prefix = "FORMBUILDER"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

// Config holds every setting. Zero values are replaced by the defaults in
// the struct tags.
type Config struct {
	Addr          string        `envconfig:"ADDR"`
	Store         string        `envconfig:"STORE" default:"memory"`
	DataFile      string        `envconfig:"DATA_FILE" default:"data/formbuilder.json"`
	MongoURI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017/formdb"`
	MongoDatabase string        `envconfig:"MONGO_DATABASE" default:"formdb"`
	ShutdownGrace time.Duration `envconfig:"SHUTDOWN_GRACE" default:"10s"`
	ExposeErrors  bool          `envconfig:"EXPOSE_ERRORS" default:"false"`

	ShopID             string `envconfig:"SHOP_ID"`
	ShopName           string `envconfig:"SHOP_NAME"`
	ShopDomain         string `envconfig:"SHOP_DOMAIN"`
	ShopifyAccessToken string `envconfig:"SHOPIFY_ACCESS_TOKEN"`
	ShopifyAPIVersion  string `envconfig:"SHOPIFY_API_VERSION" default:"2024-04"`

	// APIURL is where the edit and dashboard commands reach the server.
	APIURL string `envconfig:"API_URL" default:"http://localhost:3000"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads the environment. When FORMBUILDER_ADDR is unset the listen
// address falls back to BACKEND_PORT, then PORT, then :3000.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.Addr == "" {
		cfg.Addr = fallbackAddr()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fallbackAddr() string {
	for _, key := range []string{"BACKEND_PORT", "PORT"} {
		if port := strings.TrimSpace(os.Getenv(key)); port != "" {
			return ":" + strings.TrimPrefix(port, ":")
		}
	}
	return ":3000"
}

// Validate checks the combination of settings.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreFile:
		if strings.TrimSpace(c.DataFile) == "" {
			return fmt.Errorf("config: %s_DATA_FILE is required for the file store", Prefix)
		}
	case StoreMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return fmt.Errorf("config: %s_MONGO_URI is required for the mongo store", Prefix)
		}
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	if c.ShopifyAccessToken != "" && c.ShopDomain == "" {
		return fmt.Errorf("config: %s_SHOP_DOMAIN is required with an access token", Prefix)
	}
	return nil
}

// UsesShopify reports whether the store should be resolved through the Admin
// API rather than the static SHOP_* settings.
func (c Config) UsesShopify() bool {
	return c.ShopifyAccessToken != ""
}
