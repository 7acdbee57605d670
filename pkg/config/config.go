// Package config holds global settings for the honeypot gateway. All
// settings can be configured via environment variables or
// programmatically.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the gateway and engine settings.
type Config struct {
	// ListenAddr is the gateway bind address (host:port).
	ListenAddr string

	// APIKey, when non-empty, is required in the x-api-key header of
	// every honeypot request.
	APIKey string

	// MinScamConfidence is the policy floor above which a verdict counts
	// as a detected scam. The honeypot posture is default-suspicious, so
	// the default of 0 keeps the scam flag raised even for unknown/0
	// verdicts. This encodes a product decision, not a detection tunable.
	MinScamConfidence float64

	// SessionTTL bounds how long an idle session stays resident. Zero
	// disables expiry.
	SessionTTL time.Duration

	// MaxConcurrentTurns caps in-flight message processing.
	MaxConcurrentTurns int

	// SignalsPath optionally points at a YAML file of extra classifier
	// signals.
	SignalsPath string

	// PersonaPath optionally points at a YAML persona script override.
	PersonaPath string
}

// NewDefaultConfig returns a Config populated from environment variables
// with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		ListenAddr:         GetEnv("HONEYPOT_LISTEN_ADDR", ":8080"),
		APIKey:             os.Getenv("HONEYPOT_API_KEY"),
		MinScamConfidence:  GetEnvFloat("HONEYPOT_MIN_SCAM_CONFIDENCE", 0.0),
		SessionTTL:         time.Duration(GetEnvInt("HONEYPOT_SESSION_TTL_SECONDS", 86400)) * time.Second,
		MaxConcurrentTurns: GetEnvInt("HONEYPOT_MAX_CONCURRENT", 256),
		SignalsPath:        os.Getenv("HONEYPOT_SIGNALS_PATH"),
		PersonaPath:        os.Getenv("HONEYPOT_PERSONA_PATH"),
	}
}

// Validate checks value ranges. Called once at startup.
func (c *Config) Validate() error {
	if c.MinScamConfidence < 0 || c.MinScamConfidence > 1 {
		return fmt.Errorf("MinScamConfidence %.2f out of range [0,1]", c.MinScamConfidence)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SessionTTL must not be negative")
	}
	if c.MaxConcurrentTurns <= 0 {
		return fmt.Errorf("MaxConcurrentTurns must be positive")
	}
	return nil
}

// GetEnv returns the env value or a default.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt returns the env value parsed as int, or a default.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// GetEnvFloat returns the env value parsed as float64, or a default.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvBool returns the env value parsed as bool, or a default.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}
