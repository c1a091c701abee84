package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"speedx/internal/log"
)

type Config struct {
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`
	MetricsAddr string `mapstructure:"METRICS_ADDR"`
	PprofAddr   string `mapstructure:"PPROF_ADDR"`
	IsDev       bool   `mapstructure:"IS_DEV"`

	AnalyzerURL     string        `mapstructure:"ANALYZER_URL"`
	AnalyzerTimeout time.Duration `mapstructure:"ANALYZER_TIMEOUT"`

	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	StoragePath   string `mapstructure:"STORAGE_PATH"`
	StorageKey    string `mapstructure:"STORAGE_KEY"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	RateLimitRPS   float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `mapstructure:"RATE_LIMIT_BURST"`

	BasicAuthUser string `mapstructure:"BASIC_AUTH_USER"`
	BasicAuthPass string `mapstructure:"BASIC_AUTH_PASS"`

	CORSAllowedOrigin string `mapstructure:"CORS_ALLOWED_ORIGIN"`
}

var AppConfig *Config

var defaults = map[string]any{
	"HTTP_ADDR":           ":8080",
	"METRICS_ADDR":        ":8081",
	"PPROF_ADDR":          ":6060",
	"IS_DEV":              false,
	"ANALYZER_URL":        "http://localhost:5000",
	"ANALYZER_TIMEOUT":    "30s",
	"STORAGE_DRIVER":      "file",
	"STORAGE_PATH":        "./data",
	"STORAGE_KEY":         "analysisHistory",
	"SQLITE_PATH":         "./data/speedx.db",
	"REDIS_ADDR":          "localhost:6379",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"RATE_LIMIT_RPS":      1.0,
	"RATE_LIMIT_BURST":    3,
	"BASIC_AUTH_USER":     "",
	"BASIC_AUTH_PASS":     "",
	"CORS_ALLOWED_ORIGIN": "*",
}

// BasicAuthEnabled reports whether both credentials are configured.
func (c *Config) BasicAuthEnabled() bool {
	return c.BasicAuthUser != "" && c.BasicAuthPass != ""
}

func (c *Config) validate() error {
	if c.AnalyzerURL == "" {
		return errors.New("ANALYZER_URL must be set")
	}
	if c.AnalyzerTimeout <= 0 {
		return errors.New("ANALYZER_TIMEOUT must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if (c.BasicAuthUser == "") != (c.BasicAuthPass == "") {
		return errors.New("BASIC_AUTH_USER and BASIC_AUTH_PASS must be set together")
	}
	return nil
}

// Load reads envFile when it exists, then the environment, over the
// defaults. Environment variables win over the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(envFile)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		log.Logger.Info("env file not loaded, using environment only",
			zap.String("file", envFile),
			zap.Error(err),
		)
	}

	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnv loads .env into AppConfig and exits on invalid configuration.
func LoadEnv() {
	cfg, err := Load(".env")
	if err != nil {
		log.Logger.Fatal("Failed to load config", zap.Error(err))
	}
	AppConfig = cfg
}
