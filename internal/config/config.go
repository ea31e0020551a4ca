package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// HTTP holds HTTP server configuration.
type HTTP struct {
	Host         string
	Port         int
	AllowOrigins []string
}

// Auth holds the single administrator identity and its static bearer token.
type Auth struct {
	Username string
	Password string
	Token    string
}

// Storage configures the on-disk image store.
type Storage struct {
	ImageDir        string
	PlaceholderName string
}

// Orders configures order listing bounds and startup seeding.
type Orders struct {
	DefaultPageSize int
	MaxPageSize     int
	SeedCount       int
}

// Observability contains logging, tracing, and metrics configuration.
type Observability struct {
	ServiceName     string
	Environment     string
	LogLevel        string
	LogEncoding     string
	EnableTracing   bool
	TraceExporter   string
	TraceEndpoint   string
	TraceInsecure   bool
	EnableMetrics   bool
	MetricsExporter string
	PrometheusPath  string
}

// Config wraps all application configuration knobs.
type Config struct {
	HTTP          HTTP
	Auth          Auth
	Storage       Storage
	Orders        Orders
	Observability Observability
}

// Module wires the configuration loader into the Fx graph.
var Module = fx.Provide(New)

var loadEnvOnce sync.Once

// defaultAllowOrigins mirrors the browser origins the service has always
// accepted for local development.
var defaultAllowOrigins = []string{
	"http://127.0.0.1:5500",
	"http://localhost:5500",
	"http://127.0.0.1:8000",
	"http://localhost:8000",
	"http://127.0.0.1",
	"http://localhost",
}

// New builds a Config from environment variables or defaults.
func New() (Config, error) {
	loadEnvOnce.Do(func() {
		_ = godotenv.Load()
	})

	cfg := Config{
		HTTP: HTTP{
			Host:         getEnv("HTTP_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("HTTP_PORT", 8080),
			AllowOrigins: getEnvAsStringSlice("HTTP_ALLOW_ORIGINS", defaultAllowOrigins),
		},
		Auth: Auth{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "password123"),
			Token:    getEnv("ADMIN_TOKEN", "fake-jwt-token-for-admin"),
		},
		Storage: Storage{
			ImageDir:        getEnv("IMAGE_DIR", "images"),
			PlaceholderName: getEnv("IMAGE_PLACEHOLDER", "default.jpg"),
		},
		Orders: Orders{
			DefaultPageSize: getEnvAsInt("ORDERS_DEFAULT_PAGE_SIZE", 12),
			MaxPageSize:     getEnvAsInt("ORDERS_MAX_PAGE_SIZE", 100),
			SeedCount:       getEnvAsInt("ORDERS_SEED_COUNT", 25),
		},
		Observability: Observability{
			ServiceName:     getEnv("OBS_SERVICE_NAME", "orderhub"),
			Environment:     getEnv("OBS_ENVIRONMENT", "local"),
			LogLevel:        getEnv("OBS_LOG_LEVEL", "info"),
			LogEncoding:     getEnv("OBS_LOG_ENCODING", "json"),
			EnableTracing:   getEnvAsBool("OBS_ENABLE_TRACING", true),
			TraceExporter:   getEnv("OBS_TRACE_EXPORTER", "stdout"),
			TraceEndpoint:   getEnv("OBS_OTLP_ENDPOINT", "localhost:4317"),
			TraceInsecure:   getEnvAsBool("OBS_OTLP_INSECURE", true),
			EnableMetrics:   getEnvAsBool("OBS_ENABLE_METRICS", true),
			MetricsExporter: getEnv("OBS_METRICS_EXPORTER", "prometheus"),
			PrometheusPath:  getEnv("OBS_PROMETHEUS_PATH", "/metrics"),
		},
	}

	if cfg.HTTP.Port <= 0 {
		return Config{}, fmt.Errorf("invalid HTTP port: %d", cfg.HTTP.Port)
	}

	if cfg.Auth.Username == "" || cfg.Auth.Password == "" {
		return Config{}, fmt.Errorf("admin credentials must not be empty")
	}
	if cfg.Auth.Token == "" {
		return Config{}, fmt.Errorf("admin token must not be empty")
	}

	if cfg.Storage.ImageDir == "" {
		return Config{}, fmt.Errorf("missing IMAGE_DIR")
	}
	if cfg.Storage.PlaceholderName == "" {
		cfg.Storage.PlaceholderName = "default.jpg"
	}

	if cfg.Orders.DefaultPageSize <= 0 {
		cfg.Orders.DefaultPageSize = 12
	}
	if cfg.Orders.MaxPageSize < cfg.Orders.DefaultPageSize {
		cfg.Orders.MaxPageSize = cfg.Orders.DefaultPageSize
	}
	if cfg.Orders.SeedCount < 0 {
		cfg.Orders.SeedCount = 0
	}

	cfg.Observability.LogLevel = strings.ToLower(strings.TrimSpace(cfg.Observability.LogLevel))
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	cfg.Observability.LogEncoding = strings.ToLower(strings.TrimSpace(cfg.Observability.LogEncoding))
	if cfg.Observability.LogEncoding == "" {
		cfg.Observability.LogEncoding = "json"
	}
	cfg.Observability.TraceExporter = strings.ToLower(strings.TrimSpace(cfg.Observability.TraceExporter))
	if cfg.Observability.TraceExporter == "" {
		cfg.Observability.TraceExporter = "stdout"
	}
	cfg.Observability.MetricsExporter = strings.ToLower(strings.TrimSpace(cfg.Observability.MetricsExporter))
	if cfg.Observability.MetricsExporter == "" {
		cfg.Observability.MetricsExporter = "prometheus"
	}

	if cfg.Observability.PrometheusPath == "" {
		cfg.Observability.PrometheusPath = "/metrics"
	} else if !strings.HasPrefix(cfg.Observability.PrometheusPath, "/") {
		cfg.Observability.PrometheusPath = "/" + cfg.Observability.PrometheusPath
	}

	return cfg, nil
}
