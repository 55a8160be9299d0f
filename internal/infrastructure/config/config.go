package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App   AppConfig
	Log   LogConfig
	HTTP  HTTPConfig
	Label LabelConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// LabelConfig holds label rendering and print flow settings
type LabelConfig struct {
	// Template is the default template name when a request names none
	Template string
	// From is the stored sender address
	From FromAddressConfig
	// DownloadDir is where print-run PDFs are written
	DownloadDir string
	// SettleDelay is how long to let client-side barcodes render
	SettleDelay time.Duration
	// CloseDelay is how long to keep the print window open after printing
	CloseDelay time.Duration
	// CompressPDF toggles PDF stream compression
	CompressPDF bool
}

// FromAddressConfig holds the stored sender address
type FromAddressConfig struct {
	Name    string
	Street  string
	City    string
	State   string
	ZipCode string
	Phone   string
}

// Load reads configuration from file and environment.
// Priority (highest to lowest):
// 1. Environment variables with SHIPDESK_ prefix (e.g., SHIPDESK_APP_PORT)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("SHIPDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Label: LabelConfig{
			Template: v.GetString("label.template"),
			From: FromAddressConfig{
				Name:    v.GetString("label.from.name"),
				Street:  v.GetString("label.from.street"),
				City:    v.GetString("label.from.city"),
				State:   v.GetString("label.from.state"),
				ZipCode: v.GetString("label.from.zip_code"),
				Phone:   v.GetString("label.from.phone"),
			},
			DownloadDir: v.GetString("label.download_dir"),
			SettleDelay: v.GetDuration("label.settle_delay"),
			CloseDelay:  v.GetDuration("label.close_delay"),
			CompressPDF: v.GetBool("label.compress_pdf"),
		},
	}

	applyDefaults(cfg, v)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config, v *viper.Viper) {
	if cfg.App.Name == "" {
		cfg.App.Name = "shipdesk-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}

	if cfg.Label.Template == "" {
		cfg.Label.Template = "4x4"
	}
	if cfg.Label.DownloadDir == "" {
		cfg.Label.DownloadDir = "/data/labels"
	}
	if cfg.Label.SettleDelay == 0 {
		cfg.Label.SettleDelay = 500 * time.Millisecond
	}
	if cfg.Label.CloseDelay == 0 {
		cfg.Label.CloseDelay = 100 * time.Millisecond
	}
	if !v.IsSet("label.compress_pdf") {
		cfg.Label.CompressPDF = true
	}
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	switch c.App.Env {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("invalid app.env: %s", c.App.Env)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log.level: %s", c.Log.Level)
	}

	if c.Label.SettleDelay < 0 {
		return fmt.Errorf("label.settle_delay cannot be negative")
	}
	if c.Label.CloseDelay < 0 {
		return fmt.Errorf("label.close_delay cannot be negative")
	}

	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
