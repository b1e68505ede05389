// Package config loads process configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/strideworks/storefront/internal/pricing"
)

// Config is the full process configuration.
type Config struct {
	ServerAddr      string  `envconfig:"SERVER_ADDR" default:":2022"`
	DatabaseURL     string  `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns      int32   `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns      int32   `envconfig:"DB_MIN_CONNS" default:"2"`
	ShippingFlatFee float64 `envconfig:"SHIPPING_FLAT_FEE" default:"15"`
	LogLevel        string  `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// PricingPolicy returns the default pricing policy with the configured
// flat shipping fee applied.
func (c Config) PricingPolicy() pricing.Policy {
	policy := pricing.Default()
	policy.FlatShippingFee = decimal.NewFromFloat(c.ShippingFlatFee)
	return policy
}
