// Package config loads startup configuration from the environment,
// with an optional local .env file for development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr        string
	DatabaseDSN       string
	CORSAllowedOrigin string
	Debug             bool

	JWTSigningKey   string
	JWTIssuer       string
	JWTAudience     []string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	ContextKey            string
	RefreshCookieName     string
	RefreshCookieSecure   bool
	RefreshCookieSameSite string
}

// Load reads the environment into a Config. A missing .env file is not
// an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr:        getEnv("SERVER_ADDR", ":8080"),
		DatabaseDSN:       getEnv("DATABASE_DSN", "file:todoapp.db?cache=shared&_pragma=foreign_keys(1)"),
		CORSAllowedOrigin: getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		Debug:             getEnvAsBool("DEBUG", false),

		JWTSigningKey:   getEnv("JWT_SIGNING_KEY", ""),
		JWTIssuer:       getEnv("JWT_ISSUER", "todoapp"),
		JWTAudience:     getEnvAsSlice("JWT_AUDIENCE", []string{"todoapp"}),
		AccessTokenTTL:  getEnvAsDuration("ACCESS_TOKEN_TTL", 30*time.Second),
		RefreshTokenTTL: getEnvAsDuration("REFRESH_TOKEN_TTL", 20*time.Second),

		ContextKey:            getEnv("AUTH_CONTEXT_KEY", "user"),
		RefreshCookieName:     getEnv("REFRESH_COOKIE_NAME", "refresh-token"),
		RefreshCookieSecure:   getEnvAsBool("REFRESH_COOKIE_SECURE", true),
		RefreshCookieSameSite: getEnv("REFRESH_COOKIE_SAMESITE", "None"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY is required")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL has to be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL has to be positive")
	}
	return nil
}

func (c *Config) GetSigningKey() string { return c.JWTSigningKey }
func (c *Config) GetContextKey() string { return c.ContextKey }
func (c *Config) GetIssuer() string     { return c.JWTIssuer }
func (c *Config) GetAudience() []string { return c.JWTAudience }

func (c *Config) GetAccessTokenTTL() time.Duration  { return c.AccessTokenTTL }
func (c *Config) GetRefreshTokenTTL() time.Duration { return c.RefreshTokenTTL }

func (c *Config) GetAuthScheme() string  { return "Bearer" }
func (c *Config) GetTokenLookup() string { return "header:Authorization" }

func (c *Config) GetRefreshCookieName() string     { return c.RefreshCookieName }
func (c *Config) GetRefreshCookieSecure() bool     { return c.RefreshCookieSecure }
func (c *Config) GetRefreshCookieSameSite() string { return c.RefreshCookieSameSite }

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsSlice(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
