// Package config loads service configuration in layers: built-in defaults,
// an optional YAML file, then environment variables. A .env file in the
// working directory is read into the environment first.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Store       StoreConfig       `koanf:"store"`
	Mongo       MongoConfig       `koanf:"mongo"`
	Redis       RedisConfig       `koanf:"redis"`
	JWT         JWTConfig         `koanf:"jwt"`
	Recommender RecommenderConfig `koanf:"recommender"`
	Search      SearchConfig      `koanf:"search"`
	Log         LogConfig         `koanf:"log"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	AllowedOrigins  []string      `koanf:"allowed_origins"`
	RateLimit       int           `koanf:"rate_limit"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig selects the persistence backend: "mongo" or "memory".
type StoreConfig struct {
	Driver   string `koanf:"driver"`
	SeedFile string `koanf:"seed_file"`
}

type MongoConfig struct {
	URI            string        `koanf:"uri"`
	Database       string        `koanf:"database"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// RedisConfig enables the user cache when Addr is set.
type RedisConfig struct {
	Addr    string        `koanf:"addr"`
	DB      int           `koanf:"db"`
	UserTTL time.Duration `koanf:"user_ttl"`
}

type JWTConfig struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

// RecommenderConfig points at the external recommender. An empty URL
// returns candidates unranked.
type RecommenderConfig struct {
	URL              string        `koanf:"url"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
	OpenTimeout      time.Duration `koanf:"open_timeout"`
}

type SearchConfig struct {
	DefaultLimit  int `koanf:"default_limit"`
	SuggestLimit  int `koanf:"suggest_limit"`
	CategoryLimit int `koanf:"category_limit"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimit:       100,
			RateLimitWindow: time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver:   "mongo",
			SeedFile: "./data/seed.json",
		},
		Mongo: MongoConfig{
			Database:       "poi_db",
			ConnectTimeout: 10 * time.Second,
		},
		Redis: RedisConfig{
			UserTTL: 24 * time.Hour,
		},
		JWT: JWTConfig{
			TTL: 24 * time.Hour,
		},
		Recommender: RecommenderConfig{
			Timeout:          5 * time.Second,
			FailureThreshold: 5,
			OpenTimeout:      30 * time.Second,
		},
		Search: SearchConfig{
			DefaultLimit:  50,
			SuggestLimit:  20,
			CategoryLimit: 50,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// envMappings maps environment variable names to config keys.
var envMappings = map[string]string{
	"PORT":                          "server.port",
	"ALLOWED_ORIGINS":               "server.allowed_origins",
	"RATE_LIMIT":                    "server.rate_limit",
	"RATE_LIMIT_WINDOW":             "server.rate_limit_window",
	"SHUTDOWN_TIMEOUT":              "server.shutdown_timeout",
	"STORE_DRIVER":                  "store.driver",
	"SEED_FILE":                     "store.seed_file",
	"MONGODB_URI":                   "mongo.uri",
	"MONGODB_DATABASE":              "mongo.database",
	"MONGODB_CONNECT_TIMEOUT":       "mongo.connect_timeout",
	"REDIS_ADDR":                    "redis.addr",
	"REDIS_DB":                      "redis.db",
	"REDIS_USER_TTL":                "redis.user_ttl",
	"JWT_SECRET":                    "jwt.secret",
	"JWT_TTL":                       "jwt.ttl",
	"RECOMMENDER_URL":               "recommender.url",
	"RECOMMENDER_TIMEOUT":           "recommender.timeout",
	"RECOMMENDER_FAILURE_THRESHOLD": "recommender.failure_threshold",
	"RECOMMENDER_OPEN_TIMEOUT":      "recommender.open_timeout",
	"SEARCH_DEFAULT_LIMIT":          "search.default_limit",
	"SEARCH_SUGGEST_LIMIT":          "search.suggest_limit",
	"SEARCH_CATEGORY_LIMIT":         "search.category_limit",
	"LOG_LEVEL":                     "log.level",
	"LOG_FORMAT":                    "log.format",
}

// envTransform returns "" for variables that are not configuration, which
// makes koanf skip them.
func envTransform(key string) string {
	return envMappings[key]
}

// Load builds the configuration and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	// ALLOWED_ORIGINS is a comma-separated list.
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		if err := k.Set("server.allowed_origins", splitList(raw)); err != nil {
			return nil, fmt.Errorf("set allowed origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET must be set"))
	}
	switch c.Store.Driver {
	case "mongo":
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGODB_URI must be set when store.driver is mongo"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.Store.Driver))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port %d out of range", c.Server.Port))
	}
	if c.Search.DefaultLimit < 0 || c.Search.SuggestLimit < 0 || c.Search.CategoryLimit < 0 {
		errs = append(errs, errors.New("search limits must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
