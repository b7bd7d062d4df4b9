package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	Funding       FundingConfig
	Currency      CurrencyConfig
	Pools         PoolsConfig
	Notifications NotificationsConfig
	Metrics       MetricsConfig
	LogLevel      string
	LogFormat     string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	AllowedHosts    []string
	ShutdownTimeout time.Duration
}

// FundingConfig holds the prize funding compliance constants
type FundingConfig struct {
	MinWalletPercent float64
	WaiverRequestFee float64
}

// CurrencyConfig selects how amounts are displayed
type CurrencyConfig struct {
	Code   string
	Locale string
}

// PoolsConfig points at the shared question pool files
type PoolsConfig struct {
	AdminFile    string
	MerchantFile string
}

// NotificationsConfig holds toast channel configuration
type NotificationsConfig struct {
	Topic        string
	HistoryLimit int
}

// MetricsConfig holds Prometheus configuration
type MetricsConfig struct {
	Enabled bool
}

// Load loads configuration from environment variables and config files
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read configuration
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the values a misconfigured deployment would get wrong
func (c *Config) Validate() error {
	if c.Funding.MinWalletPercent < 0 || c.Funding.MinWalletPercent > 1 {
		return fmt.Errorf("Funding.MinWalletPercent must be between 0 and 1, got %v", c.Funding.MinWalletPercent)
	}
	if c.Funding.WaiverRequestFee < 0 {
		return fmt.Errorf("Funding.WaiverRequestFee cannot be negative, got %v", c.Funding.WaiverRequestFee)
	}
	if c.Server.Port == "" {
		return errors.New("Server.Port is required")
	}
	return nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	v.SetDefault("Server.ShutdownTimeout", 10*time.Second)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFormat", "json")
	v.SetDefault("Funding.MinWalletPercent", 0.70)
	v.SetDefault("Funding.WaiverRequestFee", 50000)
	v.SetDefault("Currency.Code", "NGN")
	v.SetDefault("Currency.Locale", "en-NG")
	v.SetDefault("Pools.AdminFile", "")
	v.SetDefault("Pools.MerchantFile", "")
	v.SetDefault("Notifications.Topic", "merchant.toasts")
	v.SetDefault("Notifications.HistoryLimit", 50)
	v.SetDefault("Metrics.Enabled", true)
}
