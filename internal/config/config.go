package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DatabaseURL string `env:"DATABASE_URL"`

	JWTSecretKey              string        `env:"JWT_SECRET_KEY"`
	BackendURL                string        `env:"BACKEND_URL" envDefault:"http://localhost:8080"`
	FrontendURL               string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	AuthLinkTokenTTL          time.Duration `env:"AUTH_LINK_TOKEN_TTL" envDefault:"720h"`
	AuthSessionTokenTTL       time.Duration `env:"AUTH_SESSION_TOKEN_TTL" envDefault:"0s"`
	AuthPasswordHashMemoryKB  uint32        `env:"AUTH_PASSWORD_HASH_MEMORY_KB" envDefault:"65536"`
	AuthPasswordHashIterations uint32        `env:"AUTH_PASSWORD_HASH_ITERATIONS" envDefault:"3"`
	Locale                    string        `env:"APP_LOCALE" envDefault:"en"`

	MailDriver       string `env:"MAIL_DRIVER" envDefault:"log"`
	RedisAddr        string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	MailStreamKey    string `env:"MAIL_STREAM_KEY" envDefault:"mail:events"`
	MailStreamMaxLen int64  `env:"MAIL_STREAM_MAX_LEN" envDefault:"10000"`

	RequestTimeout        time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout       time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"20s"`
	ReadinessProbeTimeout time.Duration `env:"READINESS_PROBE_TIMEOUT" envDefault:"1s"`

	OTELServiceName           string        `env:"OTEL_SERVICE_NAME" envDefault:"identity-core"`
	OTELEnvironment           string        `env:"OTEL_ENVIRONMENT"`
	OTELExporterOTLPEndpoint  string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTELExporterOTLPInsecure  bool          `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	OTELMetricsExportInterval time.Duration `env:"OTEL_METRICS_EXPORT_INTERVAL" envDefault:"10s"`
	OTELTraceSamplingRatio    float64       `env:"OTEL_TRACE_SAMPLING_RATIO" envDefault:"1.0"`
	OTELMetricsEnabled        bool          `env:"OTEL_METRICS_ENABLED" envDefault:"true"`
	OTELTracingEnabled        bool          `env:"OTEL_TRACING_ENABLED" envDefault:"true"`
	OTELLogsEnabled           bool          `env:"OTEL_LOGS_ENABLED" envDefault:"true"`
	OTELLogLevel              string        `env:"OTEL_LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	if c.OTELEnvironment == "" {
		c.OTELEnvironment = c.Env
	}
	c.Locale = strings.ToLower(strings.TrimSpace(c.Locale))
	c.MailDriver = strings.ToLower(strings.TrimSpace(c.MailDriver))
	c.OTELLogLevel = strings.ToLower(c.OTELLogLevel)
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")
	c.FrontendURL = strings.TrimRight(c.FrontendURL, "/")
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if len(c.JWTSecretKey) < 32 {
		errs = append(errs, "JWT_SECRET_KEY must be at least 32 chars")
	}
	if !isAbsoluteURL(c.BackendURL) {
		errs = append(errs, "BACKEND_URL must be an absolute http(s) URL")
	}
	if !isAbsoluteURL(c.FrontendURL) {
		errs = append(errs, "FRONTEND_URL must be an absolute http(s) URL")
	}
	if c.AuthLinkTokenTTL <= 0 {
		errs = append(errs, "AUTH_LINK_TOKEN_TTL must be > 0")
	}
	if c.AuthSessionTokenTTL < 0 {
		errs = append(errs, "AUTH_SESSION_TOKEN_TTL must be >= 0")
	}
	if c.AuthPasswordHashMemoryKB < 8 {
		errs = append(errs, "AUTH_PASSWORD_HASH_MEMORY_KB must be >= 8")
	}
	if c.AuthPasswordHashIterations == 0 {
		errs = append(errs, "AUTH_PASSWORD_HASH_ITERATIONS must be > 0")
	}
	if c.Locale != "en" && c.Locale != "vi" {
		errs = append(errs, "APP_LOCALE must be one of en, vi")
	}
	switch c.MailDriver {
	case "log":
	case "redis":
		if c.MailStreamKey == "" {
			errs = append(errs, "MAIL_STREAM_KEY is required when MAIL_DRIVER=redis")
		}
	default:
		errs = append(errs, "MAIL_DRIVER must be one of log, redis")
	}
	if c.MailDriver == "redis" && c.RedisAddr == "" {
		errs = append(errs, "REDIS_ADDR is required when MAIL_DRIVER=redis")
	}
	if c.MailStreamMaxLen < 0 {
		errs = append(errs, "MAIL_STREAM_MAX_LEN must be >= 0")
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, "REQUEST_TIMEOUT must be > 0")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be > 0")
	}
	if c.ReadinessProbeTimeout <= 0 {
		errs = append(errs, "READINESS_PROBE_TIMEOUT must be > 0")
	}
	if (c.OTELMetricsEnabled || c.OTELTracingEnabled || c.OTELLogsEnabled) && c.OTELExporterOTLPEndpoint == "" {
		errs = append(errs, "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTel is enabled")
	}
	if c.OTELTraceSamplingRatio < 0 || c.OTELTraceSamplingRatio > 1 {
		errs = append(errs, "OTEL_TRACE_SAMPLING_RATIO must be between 0 and 1")
	}
	if c.OTELMetricsExportInterval <= 0 {
		errs = append(errs, "OTEL_METRICS_EXPORT_INTERVAL must be > 0")
	}
	if !isValidLogLevel(c.OTELLogLevel) {
		errs = append(errs, "OTEL_LOG_LEVEL must be one of debug, info, warn, error")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// UsesRedis reports whether any component needs a redis client.
func (c *Config) UsesRedis() bool {
	return c.MailDriver == "redis"
}

func isAbsoluteURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isValidLogLevel(v string) bool {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
