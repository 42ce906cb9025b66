package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverPlatform = "platform"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Port         string   `mapstructure:"PORT"`
	Env          string   `mapstructure:"ENV"`
	StoreDriver  string   `mapstructure:"STORE_DRIVER"`
	StoreURL     string   `mapstructure:"STORE_URL"`
	StoreAPIKey  string   `mapstructure:"STORE_API_KEY"`
	StoreTimeout int      `mapstructure:"STORE_TIMEOUT_SECONDS"`
	CORSOrigins  []string `mapstructure:"CORS_ORIGINS"`
	JWTSecret    string   `mapstructure:"JWT_SECRET"`
	JWTIssuer    string   `mapstructure:"JWT_ISSUER"`
	JWTAudience  string   `mapstructure:"JWT_AUDIENCE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_DRIVER", StoreDriverPlatform)
	v.SetDefault("STORE_TIMEOUT_SECONDS", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("STORE_DRIVER")
	v.BindEnv("STORE_URL")
	v.BindEnv("STORE_API_KEY")
	v.BindEnv("STORE_TIMEOUT_SECONDS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_ISSUER")
	v.BindEnv("JWT_AUDIENCE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.IsDev() {
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: All requests get admin access. Do NOT use this in production.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// StoreRequestTimeout returns the outbound record-store timeout.
func (c *Config) StoreRequestTimeout() time.Duration {
	return time.Duration(c.StoreTimeout) * time.Second
}

// Validate checks that the configuration is safe to run. The platform store
// driver needs a URL; outside development a JWT secret must be set so real
// authentication is enforced.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPlatform:
		if c.StoreURL == "" {
			return fmt.Errorf("STORE_URL is required when STORE_DRIVER is %q", StoreDriverPlatform)
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPlatform, StoreDriverMemory, c.StoreDriver)
	}

	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV is %q", c.Env)
	}
	return nil
}
