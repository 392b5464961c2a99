package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks ranges and environment specific requirements
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "must be a port number between 1 and 65535"})
	}
	if cfg.RateLimitMax < 1 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_MAX", Message: "must be at least 1"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
	}
	if cfg.StatsDelay < 0 {
		errs = append(errs, ValidationError{Field: "STATS_DELAY", Message: "cannot be negative"})
	}
	if len(cfg.CORSOrigins) == 0 {
		errs = append(errs, ValidationError{Field: "CORS_ORIGINS", Message: "must list at least one origin"})
	}
	for _, origin := range cfg.CORSOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, ValidationError{Field: "CORS_ORIGINS", Message: fmt.Sprintf("origin %q must start with http:// or https://", origin)})
		}
	}
	if cfg.RedisHost != "" && cfg.RedisPort == "" {
		errs = append(errs, ValidationError{Field: "REDIS_PORT", Message: "required when REDIS_HOST is set"})
	}

	// Production runs behind the rate limiter
	if cfg.IsProduction() && !cfg.RedisEnabled() {
		errs = append(errs, ValidationError{Field: "REDIS_URL", Message: "redis is required in production"})
	}

	return errors.Join(errs...)
}
