package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from environment variables
// or an optional config file in the working directory.
type Config struct {
	Port              string        `mapstructure:"PORT"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	PaystackSecretKey string        `mapstructure:"PAYSTACK_SECRET_KEY"`
	PaystackBaseURL   string        `mapstructure:"PAYSTACK_BASE_URL"`
	FrontendURL       string        `mapstructure:"FRONTEND_URL"`
	Currency          string        `mapstructure:"CURRENCY"`
	SchedulerInterval time.Duration `mapstructure:"SCHEDULER_INTERVAL"`
	ShipmentGraceDays int           `mapstructure:"SHIPMENT_GRACE_DAYS"`
	BidCASMaxRetries  int           `mapstructure:"BID_CAS_MAX_RETRIES"`
}

// keys lists every setting in Config. Each one is bound to its environment
// variable explicitly: AutomaticEnv alone only surfaces keys viper already
// knows about, so env-only settings without a default would never load.
var keys = []string{
	"PORT",
	"REDIS_ADDR",
	"PAYSTACK_SECRET_KEY",
	"PAYSTACK_BASE_URL",
	"FRONTEND_URL",
	"CURRENCY",
	"SCHEDULER_INTERVAL",
	"SHIPMENT_GRACE_DAYS",
	"BID_CAS_MAX_RETRIES",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	v.SetDefault("PORT", ":8080")
	v.SetDefault("PAYSTACK_BASE_URL", "https://api.paystack.co")
	v.SetDefault("CURRENCY", "GHS")
	v.SetDefault("SCHEDULER_INTERVAL", 30*time.Second)
	v.SetDefault("SHIPMENT_GRACE_DAYS", 3)
	v.SetDefault("BID_CAS_MAX_RETRIES", 5)

	// A config file is optional; env vars alone are enough.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GracePeriod returns the shipment grace window as a duration.
func (c *Config) GracePeriod() time.Duration {
	return time.Duration(c.ShipmentGraceDays) * 24 * time.Hour
}
