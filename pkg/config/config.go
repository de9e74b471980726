package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Pricing  PricingConfig
	Delivery DeliveryConfig
	Sync     SyncConfig
	Storage  StorageConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Sync.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORDA_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"ORDA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig locates the storefront backend this engine talks to.
type APIConfig struct {
	BaseURL string        `envconfig:"ORDA_API_BASE_URL" default:"https://api.orda.example"`
	Timeout time.Duration `envconfig:"ORDA_API_TIMEOUT" default:"15s"`
}

// PricingConfig holds the static discount configuration.
type PricingConfig struct {
	// Collections exempt from the every-second-unit-half-price rule.
	ExemptCollections []string `envconfig:"ORDA_PRICING_EXEMPT_COLLECTIONS" default:"sale,gift-cards"`
}

// DeliveryConfig carries the two-tier flat delivery rates.
type DeliveryConfig struct {
	CapitalCity string `envconfig:"ORDA_DELIVERY_CAPITAL_CITY" default:"Astana"`
	CapitalSum  int64  `envconfig:"ORDA_DELIVERY_CAPITAL_SUM" default:"1500"`
	RegionalSum int64  `envconfig:"ORDA_DELIVERY_REGIONAL_SUM" default:"3000"`
}

// CapitalRate returns the capital-city delivery sum as a decimal amount.
func (d DeliveryConfig) CapitalRate() decimal.Decimal {
	return decimal.NewFromInt(d.CapitalSum)
}

// RegionalRate returns the non-capital delivery sum as a decimal amount.
func (d DeliveryConfig) RegionalRate() decimal.Decimal {
	return decimal.NewFromInt(d.RegionalSum)
}

// SyncConfig controls how the reconciler pushes decrements to the server cart.
type SyncConfig struct {
	// NegativeDeltaMode selects the call shape for local < server quantities:
	// "add" sends the negative delta on the add endpoint, "remove" deletes the
	// server line and re-adds the full local quantity.
	NegativeDeltaMode string `envconfig:"ORDA_SYNC_NEGATIVE_DELTA_MODE" default:"add"`
}

func (s SyncConfig) validate() error {
	switch s.NegativeDeltaMode {
	case NegativeDeltaAdd, NegativeDeltaRemove:
		return nil
	}
	return fmt.Errorf("unknown negative delta mode %q", s.NegativeDeltaMode)
}

// StorageConfig selects and tunes the local durable KV backend.
type StorageConfig struct {
	Driver string `envconfig:"ORDA_STORAGE_DRIVER" default:"sqlite"`

	SQLitePath string `envconfig:"ORDA_STORAGE_SQLITE_PATH" default:"orda.db"`

	RedisAddr         string        `envconfig:"ORDA_STORAGE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword     string        `envconfig:"ORDA_STORAGE_REDIS_PASSWORD"`
	RedisDB           int           `envconfig:"ORDA_STORAGE_REDIS_DB" default:"0"`
	RedisDialTimeout  time.Duration `envconfig:"ORDA_STORAGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	RedisReadTimeout  time.Duration `envconfig:"ORDA_STORAGE_REDIS_READ_TIMEOUT" default:"5s"`
	RedisWriteTimeout time.Duration `envconfig:"ORDA_STORAGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverSQLite, StorageDriverRedis:
		return nil
	}
	return fmt.Errorf("unknown storage driver %q", s.Driver)
}
