package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Environment string `envconfig:"ENV" default:"development"`
	Port        string `envconfig:"PORT" default:"8080"`
	Host        string `envconfig:"HOST" default:"http://localhost:8080"` // Raw HOST env (e.g. https://api.serenify.app)
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
	OriginsEnv  string `envconfig:"ALLOWED_ORIGINS"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"sqlite"`
	SQLitePath    string `envconfig:"SQLITE_PATH" default:"data/serenify.db"`
	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017/serenify"`
	PostgresURI   string `envconfig:"POSTGRES_URI" default:"postgres://localhost:5432/serenify?sslmode=disable"`
	RedisURI      string `envconfig:"REDIS_URI" default:"redis://localhost:6379/0"`

	JWTSecret       string        `envconfig:"JWT_SECRET" default:"your-secret-key-change-in-production"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"168h"`
	AuthDelay       time.Duration `envconfig:"AUTH_DELAY" default:"1s"`
	ChatTypingDelay time.Duration `envconfig:"CHAT_TYPING_DELAY" default:"1s"`

	CloudinaryName      string `envconfig:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `envconfig:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `envconfig:"CLOUDINARY_API_SECRET"`
	ExportFolder        string `envconfig:"EXPORT_FOLDER" default:"serenify/exports"`

	AllowedOrigins []string `ignored:"true"` // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	AllowedHost    string   `ignored:"true"` // Hostname only for strict host check (production only)
}

// Load reads the environment into a Config. Call godotenv.Load before this
// when a .env file should be honored.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	// Legacy name kept working for existing deployments
	if os.Getenv("MONGODB_URI") == "" && os.Getenv("MONGO_URI") != "" {
		cfg.MongoURI = os.Getenv("MONGO_URI")
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if cfg.IsProduction() {
		cfg.AllowedHost = hostname(cfg.Host)
	}
	cfg.AllowedOrigins = resolveOrigins(cfg.OriginsEnv, cfg.FrontendURL, cfg.Host)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverSQLite, DriverRedis, DriverMongo, DriverPostgres:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER: %s", c.StorageDriver)
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret) {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// CloudinaryEnabled reports whether all three Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func resolveOrigins(raw, frontendURL, host string) []string {
	origins := parseOrigins(raw)
	if len(origins) == 0 {
		for _, u := range []string{frontendURL, os.Getenv("FRONTEND_URL_2"), os.Getenv("FRONTEND_URL_3")} {
			u = strings.TrimSpace(u)
			if u != "" {
				origins = append(origins, u)
			}
		}
	}
	// A backend host like api.serenify.app implies the https apex and www frontends
	h := hostname(host)
	if h != "" && h != "localhost" {
		parts := strings.Split(h, ".")
		if len(parts) >= 2 {
			domain := strings.Join(parts[1:], ".")
			for _, origin := range []string{"https://" + domain, "https://www." + domain} {
				if !containsOrigin(origins, origin) {
					origins = append(origins, origin)
				}
			}
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}

// hostname strips scheme, path and port from a HOST value.
func hostname(host string) string {
	h := strings.TrimSpace(host)
	for _, prefix := range []string{"https://", "http://"} {
		h = strings.TrimPrefix(h, prefix)
	}
	if idx := strings.Index(h, "/"); idx != -1 {
		h = h[:idx]
	}
	if idx := strings.Index(h, ":"); idx != -1 {
		h = h[:idx]
	}
	return strings.TrimSpace(h)
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}
