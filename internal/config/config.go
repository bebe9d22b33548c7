package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort           = 3330
	defaultEnv            = "development"
	defaultMongoURI       = "mongodb://localhost:27017"
	defaultMongoDatabase  = "clippy"
	defaultGatewayTimeout = 10 * time.Second
)

// Environment variable overrides. The subscribe endpoint is the one option
// the capture workflow requires; everything else has a usable default.
const (
	EnvPort          = "CLIPPY_PORT"
	EnvEnv           = "CLIPPY_ENV"
	EnvMongoURI      = "CLIPPY_MONGO_URI"
	EnvMongoDatabase = "CLIPPY_MONGO_DB"
	EnvSubscribeAPI  = "CLIPPY_SUBSCRIBE_API"
)

// AppConfig holds runtime startup configuration loaded from YAML plus
// environment overrides.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	AllowedOrigins []string        `yaml:"allowed_origins"`
	Mongo          MongoConfig     `yaml:"mongo"`
	Subscribe      SubscribeConfig `yaml:"subscribe"`
}

// MongoConfig identifies the document store holding the emails collection.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// SubscribeConfig points the gateway at the external subscription endpoint.
type SubscribeConfig struct {
	Endpoint       string `yaml:"endpoint"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// GatewayTimeout returns the bounded timeout applied to subscribe calls.
func (c *AppConfig) GatewayTimeout() time.Duration {
	if c.Subscribe.TimeoutSeconds > 0 {
		return time.Duration(c.Subscribe.TimeoutSeconds) * time.Second
	}
	return defaultGatewayTimeout
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, "development") || strings.EqualFold(c.Env, "dev")
}

// Load reads the YAML file at path (missing file is not an error — env and
// defaults still apply), overlays environment variables, and normalizes.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	normalize(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvEnv)); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMongoURI)); v != "" {
		cfg.Mongo.URI = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMongoDatabase)); v != "" {
		cfg.Mongo.Database = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSubscribeAPI)); v != "" {
		cfg.Subscribe.Endpoint = v
	}
}

func normalize(cfg *AppConfig) {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = defaultPort
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = defaultEnv
	}
	if strings.TrimSpace(cfg.Mongo.URI) == "" {
		cfg.Mongo.URI = defaultMongoURI
	}
	if strings.TrimSpace(cfg.Mongo.Database) == "" {
		cfg.Mongo.Database = defaultMongoDatabase
	}
	cfg.Subscribe.Endpoint = strings.TrimSpace(cfg.Subscribe.Endpoint)

	origins := cfg.AllowedOrigins[:0]
	for _, o := range cfg.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.AllowedOrigins = origins
}
