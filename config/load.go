package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "CONFIG_PATH"

const devJWTSecret = "local_dev_secret"

var defaultPaths = []string{"config.yaml", "config.yml"}

func defaults() App {
	return App{
		Env: "dev",
		Server: ServerConfig{
			Port:            "8080",
			ShutdownTimeout: 10 * time.Second,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxConns:        10,
			MaxConnLifetime: time.Hour,
			Migrate:         true,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Catalog: CatalogConfig{PageSize: 10},
		Jobs:    JobsConfig{OverdueInterval: time.Hour},
	}
}

// envKeys maps environment variables onto config paths. Variables not
// listed here are ignored.
var envKeys = map[string]string{
	"APP_ENV":             "env",
	"APP_PORT":            "server.port",
	"SHUTDOWN_TIMEOUT":    "server.shutdown_timeout",
	"DATABASE_URL":        "database.url",
	"DB_MAX_CONNS":        "database.max_conns",
	"DB_MIGRATE":          "database.migrate",
	"JWT_SECRET":          "auth.jwt_secret",
	"TOKEN_TTL":           "auth.token_ttl",
	"ADMIN_USERNAME":      "auth.admin_username",
	"AUTHZ_MODEL_PATH":    "authz.model_path",
	"AUTHZ_POLICY_PATH":   "authz.policy_path",
	"LOG_LEVEL":           "log.level",
	"LOG_FORMAT":          "log.format",
	"RATE_LIMIT_REQUESTS": "security.rate_limit_requests",
	"RATE_LIMIT_WINDOW":   "security.rate_limit_window",
	"CORS_ORIGINS":        "security.cors_origins",
	"PAGE_SIZE":           "catalog.page_size",
	"OVERDUE_INTERVAL":    "jobs.overdue_interval",
}

func envKey(k string) string { return envKeys[k] }

// Load layers defaults, an optional YAML file and the environment, in
// that order of precedence, and validates the result.
func Load() (*App, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if path := findFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &App{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Security.CORSOrigins = splitList(cfg.Security.CORSOrigins)
	if cfg.Auth.JWTSecret == "" && cfg.IsDev() {
		cfg.Auth.JWTSecret = devJWTSecret
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *App) Validate() error {
	var errs []error
	if a.Database.URL == "" {
		errs = append(errs, errors.New("database.url (DATABASE_URL) is required"))
	}
	if a.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required outside dev"))
	}
	if a.Server.Port == "" {
		errs = append(errs, errors.New("server.port (APP_PORT) is required"))
	}
	if a.Catalog.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("catalog.page_size must be > 0, got %d", a.Catalog.PageSize))
	}
	if a.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be > 0"))
	}
	if a.Jobs.OverdueInterval <= 0 {
		errs = append(errs, errors.New("jobs.overdue_interval must be > 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func findFile() string {
	if p := os.Getenv(PathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitList trims list entries and splits any that still hold commas.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
