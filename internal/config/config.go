package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Email      EmailConfig
	Stripe     StripeConfig
	App        AppConfig `validate:"required"`
}

type DeploymentConfig struct {
	// Mode is "local", "staging", or "prod".
	Mode string `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level       string `validate:"required"`
	Development bool
}

type PostgresConfig struct {
	Host            string `validate:"required"`
	Port            int    `validate:"required"`
	User            string `validate:"required"`
	Password        string
	DBName          string `validate:"required"`
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	// Supabase project used for JWT verification and user admin calls.
	SupabaseURL        string
	SupabaseServiceKey string
	// JWTSecret verifies Supabase access tokens locally.
	JWTSecret string `validate:"required"`
}

type EmailConfig struct {
	ResendAPIKey string
	FromAddress  string
	// Enabled gates outbound mail so local runs never send.
	Enabled bool
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	PriceIDs      map[string]string `mapstructure:"price_ids"`
}

type AppConfig struct {
	// PublicBaseURL is the origin public quote links are minted against.
	PublicBaseURL string `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/quoteflow")

	v.SetEnvPrefix("QUOTEFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// DSN renders the postgres connection string.
func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode,
	)
}

// GetDefaultConfig returns a configuration for local development and tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: "local"},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: "debug", Development: true},
		Postgres: PostgresConfig{
			Host:   "localhost",
			Port:   5432,
			User:   "quoteflow",
			DBName: "quoteflow",
		},
		Auth: AuthConfig{JWTSecret: "local-dev-secret"},
		App:  AppConfig{PublicBaseURL: "http://localhost:8080"},
	}
}
