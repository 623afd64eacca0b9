// Package config provides configuration management for the combination service.
//
// Values come from environment variables. LoadFile additionally reads a
// YAML file first and lets environment variables override it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultDenominations and DefaultTarget are the compiled-in search inputs.
var (
	DefaultDenominations = []int{2}
	DefaultTarget        = 3
)

// Config holds the complete application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Enumeration EnumerationConfig `yaml:"enumeration"`
	Cache       CacheConfig       `yaml:"cache"`
	Auth        AuthConfig        `yaml:"auth"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string        `yaml:"port"`
	RateLimit      int           `yaml:"rate_limit"`
	RateWindow     time.Duration `yaml:"rate_window"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CORSOrigins    []string      `yaml:"cors_origins"`
}

// EnumerationConfig holds the search inputs and the limits applied to API requests.
type EnumerationConfig struct {
	Denominations []int `yaml:"denominations"`
	Target        int   `yaml:"target"`
	// MaxCombinations caps results per request; 0 disables the cap.
	MaxCombinations int `yaml:"max_combinations"`
	// MaxTarget rejects requests with larger targets; 0 disables the check.
	MaxTarget int `yaml:"max_target"`
	// MaxElements caps the total values held by one buffered (JSON) result;
	// 0 disables the cap. Streamed results are not buffered and ignore it.
	MaxElements int `yaml:"max_elements"`
}

// CacheConfig holds result cache configuration. Size 0 disables the cache.
type CacheConfig struct {
	Size   int           `yaml:"size"`
	TTL    time.Duration `yaml:"ttl"`
	Shards int           `yaml:"shards"`
}

// AuthConfig holds API key authentication configuration.
type AuthConfig struct {
	Enabled bool            `yaml:"enabled"`
	APIKeys map[string]bool `yaml:"api_keys"`
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string        `yaml:"uri"`
	DatabaseName string        `yaml:"database_name"`
	LogsTTL      time.Duration `yaml:"logs_ttl"`
	Enabled      bool          `yaml:"enabled"`
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int           `yaml:"circuit_breaker_failure_threshold"`
	CircuitBreakerSuccessThreshold int           `yaml:"circuit_breaker_success_threshold"`
	CircuitBreakerTimeout          time.Duration `yaml:"circuit_breaker_timeout"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:           "8080",
			RateLimit:      100,
			RateWindow:     time.Minute,
			RequestTimeout: 30 * time.Second,
			CORSOrigins:    parseCORSOrigins(""),
		},
		Enumeration: EnumerationConfig{
			Denominations:   append([]int(nil), DefaultDenominations...),
			Target:          DefaultTarget,
			MaxCombinations: 10000,
			MaxTarget:       100000,
			MaxElements:     1000000,
		},
		Cache: CacheConfig{
			Size:   1000,
			TTL:    5 * time.Minute,
			Shards: 16,
		},
		Database: DatabaseConfig{
			URI:                            "mongodb://localhost:27017",
			DatabaseName:                   "combination_service",
			LogsTTL:                        30 * 24 * time.Hour,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load creates a Config from environment variables.
func Load() Config {
	return applyEnv(Defaults())
}

// LoadFile reads a YAML configuration file and applies environment overrides on top.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	cfg.Server.RateLimit = getEnvInt("RATE_LIMIT", cfg.Server.RateLimit)
	cfg.Server.RateWindow = getEnvDuration("RATE_WINDOW", cfg.Server.RateWindow)
	cfg.Server.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", cfg.Server.RequestTimeout)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = parseCORSOrigins(v)
	}

	if sizes := parseIntSlice(os.Getenv("DENOMINATIONS")); len(sizes) > 0 {
		cfg.Enumeration.Denominations = sizes
	}
	cfg.Enumeration.Target = getEnvInt("TARGET", cfg.Enumeration.Target)
	cfg.Enumeration.MaxCombinations = getEnvInt("MAX_COMBINATIONS", cfg.Enumeration.MaxCombinations)
	cfg.Enumeration.MaxTarget = getEnvInt("MAX_TARGET", cfg.Enumeration.MaxTarget)
	cfg.Enumeration.MaxElements = getEnvInt("MAX_ELEMENTS", cfg.Enumeration.MaxElements)

	cfg.Cache.Size = getEnvInt("CACHE_SIZE", cfg.Cache.Size)
	cfg.Cache.TTL = getEnvDuration("CACHE_TTL", cfg.Cache.TTL)
	cfg.Cache.Shards = getEnvInt("CACHE_SHARDS", cfg.Cache.Shards)

	cfg.Auth.Enabled = getEnvBool("AUTH_ENABLED", cfg.Auth.Enabled)
	if keys := parseAPIKeys(os.Getenv("API_KEYS")); keys != nil {
		cfg.Auth.APIKeys = keys
	}

	cfg.Database.URI = getEnv("MONGODB_URI", cfg.Database.URI)
	cfg.Database.DatabaseName = getEnv("MONGODB_DATABASE", cfg.Database.DatabaseName)
	cfg.Database.LogsTTL = getEnvDuration("MONGODB_LOGS_TTL", cfg.Database.LogsTTL)
	cfg.Database.Enabled = getEnvBool("MONGODB_ENABLED", cfg.Database.Enabled)
	cfg.Database.CircuitBreakerFailureThreshold = getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", cfg.Database.CircuitBreakerFailureThreshold)
	cfg.Database.CircuitBreakerSuccessThreshold = getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", cfg.Database.CircuitBreakerSuccessThreshold)
	cfg.Database.CircuitBreakerTimeout = getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", cfg.Database.CircuitBreakerTimeout)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Pretty = getEnvBool("LOG_PRETTY", cfg.Log.Pretty)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// ParseDenominations parses a comma-separated list of integers.
// Unlike the lenient environment parser it reports the first malformed entry.
func ParseDenominations(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid denomination %q: %w", strings.TrimSpace(p), err)
		}
		result = append(result, v)
	}
	return result, nil
}

func parseIntSlice(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.Atoi(strings.TrimSpace(p)); err == nil && v > 0 {
			result = append(result, v)
		}
	}
	return result
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
