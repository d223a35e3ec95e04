// Package config provides configuration management for the spread trader.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"spread-trader/internal/models"
	"spread-trader/pkg/utils"
)

const envPrefix = "SPREAD_TRADER"

// Config holds all application configuration.
type Config struct {
	Orders  OrdersConfig  `mapstructure:"orders"`
	Broker  BrokerConfig  `mapstructure:"broker"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`
}

// OrdersConfig holds order envelope defaults.
type OrdersConfig struct {
	DefaultDuration string `mapstructure:"default_duration"` // DAY, GOOD_TILL_CANCEL
	DefaultSession  string `mapstructure:"default_session"`  // NORMAL, EXTENDED
}

// BrokerConfig holds order submission configuration.
type BrokerConfig struct {
	Mode          string        `mapstructure:"mode"` // "paper"
	MaxAttempts   int           `mapstructure:"max_attempts"`
	InitialDelay  time.Duration `mapstructure:"initial_delay"`
	MaxDelay      time.Duration `mapstructure:"max_delay"`
	BackoffFactor float64       `mapstructure:"backoff_factor"`

	// Consecutive transient failures before submissions pause; 0 disables.
	BreakerThreshold int           `mapstructure:"breaker_threshold"`
	BreakerCooldown  time.Duration `mapstructure:"breaker_cooldown"`
}

// StoreConfig holds order journal configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/spread-trader"
	}
	return filepath.Join(home, ".config", "spread-trader")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
// A missing config.toml is replaced by a template and defaults are used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("orders.default_duration", string(models.DurationDay))
	v.SetDefault("orders.default_session", string(models.SessionNormal))
	v.SetDefault("broker.mode", "paper")
	v.SetDefault("broker.max_attempts", 3)
	v.SetDefault("broker.initial_delay", "500ms")
	v.SetDefault("broker.max_delay", "5s")
	v.SetDefault("broker.backoff_factor", 2.0)
	v.SetDefault("broker.breaker_threshold", 5)
	v.SetDefault("broker.breaker_cooldown", "30s")
	v.SetDefault("store.path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", filepath.Join(configDir, "logs", "trader.log"))
	v.SetDefault("ui.color_enabled", true)
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	// SPREAD_TRADER_ORDERS_DEFAULT_DURATION overrides orders.default_duration, etc.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		if err := createTemplateConfig(configDir, name); err != nil {
			return err
		}
	}

	return v.Unmarshal(target)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, _, err := c.OrderDefaults(); err != nil {
		return err
	}

	if c.Broker.Mode != "paper" {
		return fmt.Errorf("invalid broker mode: %s (only 'paper' is supported)", c.Broker.Mode)
	}
	if c.Broker.MaxAttempts < 1 {
		return fmt.Errorf("broker.max_attempts must be at least 1")
	}
	if c.Broker.BackoffFactor < 1 {
		return fmt.Errorf("broker.backoff_factor must be at least 1")
	}
	if c.Broker.BreakerThreshold < 0 {
		return fmt.Errorf("broker.breaker_threshold must not be negative")
	}

	if c.Store.Path == "" {
		return fmt.Errorf("store.path must not be empty")
	}

	return nil
}

// OrderDefaults returns the parsed default duration and session.
func (c *Config) OrderDefaults() (models.Duration, models.Session, error) {
	duration, ok := models.ParseDuration(c.Orders.DefaultDuration)
	if !ok {
		return "", "", fmt.Errorf("invalid orders.default_duration: %q", c.Orders.DefaultDuration)
	}
	session, ok := models.ParseSession(c.Orders.DefaultSession)
	if !ok {
		return "", "", fmt.Errorf("invalid orders.default_session: %q", c.Orders.DefaultSession)
	}
	return duration, session, nil
}

// RetryConfig returns the submission retry policy.
func (c *Config) RetryConfig() utils.RetryConfig {
	return utils.RetryConfig{
		MaxAttempts:   c.Broker.MaxAttempts,
		InitialDelay:  c.Broker.InitialDelay,
		MaxDelay:      c.Broker.MaxDelay,
		BackoffFactor: c.Broker.BackoffFactor,
	}
}

// IsPaperMode returns true if paper trading mode is enabled.
func (c *Config) IsPaperMode() bool {
	return c.Broker.Mode == "paper"
}
