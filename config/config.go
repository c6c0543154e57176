package config

import (
	"fmt"

	"github.com/spf13/viper"

	"beautybook/models"
)

// Config holds all configuration values. It is loaded once in main and passed
// explicitly into constructors; there is no ambient global.
type Config struct {
	AppPort  string `mapstructure:"app_port"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`

	Notion       NotionConfig       `mapstructure:"notion"`
	Stripe       StripeConfig       `mapstructure:"stripe"`
	Places       PlacesConfig       `mapstructure:"places"`
	Appointments AppointmentsConfig `mapstructure:"appointments"`
}

// NotionConfig identifies the remote document store and its two collections.
type NotionConfig struct {
	Token          string `mapstructure:"token"`
	CustomersDB    string `mapstructure:"customers_db"`
	AppointmentsDB string `mapstructure:"appointments_db"`
}

// StripeConfig carries payment provider credentials and redirect URLs.
type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key"`
	WebhookSecret string `mapstructure:"webhook_secret"`
	SuccessURL    string `mapstructure:"success_url"`
	CancelURL     string `mapstructure:"cancel_url"`
	Currency      string `mapstructure:"currency"`
}

// PlacesConfig configures the Google Places business-info lookup.
type PlacesConfig struct {
	APIKey  string `mapstructure:"api_key"`
	PlaceID string `mapstructure:"place_id"`
}

// AppointmentsConfig holds the scheduling rules: weekly hours, slot buffer and
// the static service catalog.
type AppointmentsConfig struct {
	BusinessHours models.BusinessHours `mapstructure:"business_hours"`
	BufferMinutes int                  `mapstructure:"buffer_minutes"`
	Timezone      string               `mapstructure:"timezone"`
	Types         []models.ServiceType `mapstructure:"types"`
}

// Load reads config.yaml from the current and "config" directory, layering
// environment variables on top, and returns the resulting Config.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("app_port", "8080")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("stripe.currency", "usd")
	v.SetDefault("stripe.success_url", "http://localhost:3000/pay-success")
	v.SetDefault("stripe.cancel_url", "http://localhost:3000/pay-cancel")
	v.SetDefault("appointments.buffer_minutes", 30)
	v.SetDefault("appointments.timezone", "America/New_York")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
		// No config file is fine: environment variables and defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
