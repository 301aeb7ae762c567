// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Database types accepted by DatabaseType
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port         int    `yaml:"port"`
	DatabaseURL  string `yaml:"database_url"`
	DatabaseType string `yaml:"database_type"`

	// CORS allow-list. Requests carrying any other Origin are refused.
	AllowedOrigins []string `yaml:"allowed_origins"`
	// Honor X-Forwarded-For / X-Real-IP when resolving the client address.
	TrustProxy bool `yaml:"trust_proxy"`

	RateLimitMax     int           `yaml:"rate_limit_max"`
	RateLimitWindow  time.Duration `yaml:"rate_limit_window"`
	SlowDownAfter    int           `yaml:"slow_down_after"`
	SlowDownDelay    time.Duration `yaml:"slow_down_delay"`
	SlowDownMaxDelay time.Duration `yaml:"slow_down_max_delay"` // 0 means uncapped
	MaxBodyBytes     int64         `yaml:"max_body_bytes"`

	// Optional. When set, rate-limit counters live in Redis instead of memory.
	RedisURL string `yaml:"redis_url"`

	DBMaxOpenConns    int           `yaml:"db_max_open_conns"`
	DBMaxIdleConns    int           `yaml:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `yaml:"db_conn_max_lifetime"`

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
}

// Defaults returns the configuration used when nothing else is supplied.
func Defaults() Config {
	return Config{
		Port:              5000,
		DatabaseType:      DatabasePostgres,
		AllowedOrigins:    []string{"https://quizo-frontend.vercel.app"},
		RateLimitMax:      100,
		RateLimitWindow:   15 * time.Minute,
		SlowDownAfter:     50,
		SlowDownDelay:     100 * time.Millisecond,
		MaxBodyBytes:      100 * 1024,
		DBMaxOpenConns:    10,
		DBMaxIdleConns:    5,
		DBConnMaxLifetime: 30 * time.Minute,
		ShutdownTimeout:   10 * time.Second,
		LogLevel:          "info",
		LogFormat:         "json",
	}
}

// ParseFlags builds the configuration from, in increasing precedence:
// defaults, an optional YAML file, the environment (seeded from a .env
// file when present) and command-line flags.
func ParseFlags(args []string) (Config, error) {
	var (
		port        int
		databaseURL string
		dbType      string
		configFile  string
		envFile     string
		origins     string
		redisURL    string
		trustProxy  bool
	)

	fs := flag.NewFlagSet("quizo", flag.ContinueOnError)

	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&databaseURL, "d", "", "Database URL")
	fs.StringVar(&dbType, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&configFile, "config", "", "Path to a YAML config file")
	fs.StringVar(&envFile, "env", ".env", "Path to a .env file (ignored when missing)")
	fs.StringVar(&origins, "origins", "", "Comma-separated CORS allow-list")
	fs.StringVar(&redisURL, "redis", "", "Redis URL for shared rate-limit counters")
	fs.BoolVar(&trustProxy, "trust-proxy", false, "Trust X-Forwarded-For for client addresses")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	cfg := Defaults()

	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile != "" {
		if err := LoadFile(configFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	// CLI overrides everything else
	if port != 0 {
		cfg.Port = port
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if dbType != "" {
		cfg.DatabaseType = dbType
	}
	if origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}
	if redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if trustProxy {
		cfg.TrustProxy = true
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile merges a YAML config file into cfg. Keys absent from the file
// keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks that required fields are present and values are sane.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.DatabaseType != DatabasePostgres && c.DatabaseType != DatabaseSQLite {
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.RateLimitMax <= 0 {
		return errors.New("rate_limit_max must be > 0")
	}
	if c.RateLimitWindow <= 0 {
		return errors.New("rate_limit_window must be > 0")
	}
	if c.SlowDownAfter < 0 || c.SlowDownDelay < 0 || c.SlowDownMaxDelay < 0 {
		return errors.New("slow-down settings must not be negative")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("max_body_bytes must be > 0")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	return nil
}

// RedactedDatabaseURL returns the database URL with any password masked,
// suitable for logging.
func (c Config) RedactedDatabaseURL() string {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil || u.User == nil {
		return c.DatabaseURL
	}
	return u.Redacted()
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	// godotenv never overrides variables that are already set
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("DATABASE_TYPE"); v != "" {
		cfg.DatabaseType = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("invalid TRUST_PROXY env variable")
		}
		cfg.TrustProxy = b
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"RATE_LIMIT_MAX", &cfg.RateLimitMax},
		{"SLOW_DOWN_AFTER", &cfg.SlowDownAfter},
		{"DB_MAX_OPEN_CONNS", &cfg.DBMaxOpenConns},
		{"DB_MAX_IDLE_CONNS", &cfg.DBMaxIdleConns},
	}
	for _, e := range ints {
		if v := os.Getenv(e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s env variable", e.key)
			}
			*e.dst = n
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"RATE_LIMIT_WINDOW", &cfg.RateLimitWindow},
		{"SLOW_DOWN_DELAY", &cfg.SlowDownDelay},
		{"SLOW_DOWN_MAX_DELAY", &cfg.SlowDownMaxDelay},
		{"DB_CONN_MAX_LIFETIME", &cfg.DBConnMaxLifetime},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, e := range durations {
		if v := os.Getenv(e.key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s env variable", e.key)
			}
			*e.dst = d
		}
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.New("invalid MAX_BODY_BYTES env variable")
		}
		cfg.MaxBodyBytes = n
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
