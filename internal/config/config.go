package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"bookcatalog/internal/httpx"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

// Config holds process configuration for the API and its tools.
type Config struct {
	Port              int
	MongoURL          string
	AuthorStore       string
	MongoDatabase     string
	ConnectRetryDelay time.Duration
	StoreTimeout      time.Duration
	AllowedOrigins    []string
	RateLimitRPS      float64
	RateLimitBurst    int
	TrustedProxies    []string
	LogLevel          string
	LogFormat         string
	MigrationsDir     string
}

// Default returns the configuration used when no environment is set.
func Default() *Config {
	return &Config{
		Port:              8080,
		MongoURL:          "mongodb://localhost:27017/books",
		AuthorStore:       StoreMongo,
		MongoDatabase:     "books",
		ConnectRetryDelay: 5 * time.Second,
		StoreTimeout:      5 * time.Second,
		AllowedOrigins:    []string{"*"},
		RateLimitRPS:      20,
		RateLimitBurst:    40,
		LogLevel:          "info",
		LogFormat:         "text",
		MigrationsDir:     "db/migrations",
	}
}

// LoadEnvFiles reads .env and .env.local. Variables already present in the
// environment win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads env files and the process environment on top of Default.
func Load() (*Config, error) {
	LoadEnvFiles()
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching env files.
func FromEnv() (*Config, error) {
	c := Default()

	var err error
	if c.Port, err = envInt("PORT", c.Port); err != nil {
		return nil, err
	}
	c.MongoURL = getEnv("MONGO_URL", c.MongoURL)

	store, err := storeFromURL(c.MongoURL)
	if err != nil {
		return nil, err
	}
	c.AuthorStore = getEnv("AUTHOR_STORE", store)
	c.MongoDatabase = getEnv("MONGO_DATABASE", databaseFromURL(c.MongoURL, c.MongoDatabase))

	if c.ConnectRetryDelay, err = envDuration("CONNECT_RETRY_DELAY", c.ConnectRetryDelay); err != nil {
		return nil, err
	}
	if c.StoreTimeout, err = envDuration("STORE_TIMEOUT", c.StoreTimeout); err != nil {
		return nil, err
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimitRPS = rps
	}
	if c.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", c.RateLimitBurst); err != nil {
		return nil, err
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		c.TrustedProxies = splitList(v)
	}
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.MigrationsDir = getEnv("MIGRATIONS_DIR", c.MigrationsDir)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.MongoURL == "" {
		return fmt.Errorf("store URL cannot be empty")
	}
	if c.AuthorStore != StoreMongo && c.AuthorStore != StorePostgres {
		return fmt.Errorf("author store must be %q or %q, got %q", StoreMongo, StorePostgres, c.AuthorStore)
	}
	if c.AuthorStore == StoreMongo && c.MongoDatabase == "" {
		return fmt.Errorf("mongo database cannot be empty")
	}
	if c.ConnectRetryDelay <= 0 {
		return fmt.Errorf("connect retry delay must be positive")
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("store timeout must be positive")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit rps cannot be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit burst must be positive when rate limiting is enabled")
	}
	for _, p := range c.TrustedProxies {
		if _, err := httpx.ParseProxy(p); err != nil {
			return fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func storeFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid store URL: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return StoreMongo, nil
	case "postgres", "postgresql":
		return StorePostgres, nil
	default:
		return "", fmt.Errorf("unsupported store URL scheme %q", u.Scheme)
	}
}

func databaseFromURL(raw, def string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return def
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
