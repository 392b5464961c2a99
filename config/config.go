package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string
	LogLevel    string

	// Redis configuration, used for rate limiting mutations
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	RateLimitWindow time.Duration
	RateLimitMax    int

	// Image storage
	S3BucketName string
	AWSRegion    string

	// Recipes
	SeedFile   string
	StatsDelay time.Duration
}

// RedisEnabled reports whether a redis server is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// ImageStorageEnabled reports whether S3 image uploads are configured
func (c *Config) ImageStorageEnabled() bool {
	return c.S3BucketName != ""
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := Defaults()
	cfg.Environment = env

	if err := loadEnvConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Production keeps credentials in Docker secrets
	if cfg.IsProduction() {
		if pw := readSecret("redis_password"); pw != "" {
			cfg.RedisPassword = pw
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		Environment:     Development,
		ServerPort:      "8080",
		ServerHost:      "",
		CORSOrigins:     []string{"http://localhost:5173"},
		LogLevel:        "info",
		RedisDB:         0,
		RateLimitWindow: time.Minute,
		RateLimitMax:    30,
		AWSRegion:       "us-east-1",
		StatsDelay:      500 * time.Millisecond,
	}
}

func loadEnvConfig(cfg *Config) error {
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.S3BucketName, "S3_BUCKET_NAME")
	setString(&cfg.AWSRegion, "AWS_REGION")
	setString(&cfg.SeedFile, "SEED_FILE")

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: "REDIS_DB", Message: "must be an integer"}
		}
		cfg.RedisDB = db
	}
	if v := os.Getenv("RATE_LIMIT_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: "RATE_LIMIT_MAX", Message: "must be an integer"}
		}
		cfg.RateLimitMax = n
	}
	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be a duration such as 1m"}
		}
		cfg.RateLimitWindow = d
	}
	if v := os.Getenv("STATS_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ValidationError{Field: "STATS_DELAY", Message: "must be a duration such as 500ms"}
		}
		cfg.StatsDelay = d
	}

	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
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

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
