package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Extract   ExtractConfig   `mapstructure:"extract"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	ReadTimeout    int `mapstructure:"read_timeout"`
	WriteTimeout   int `mapstructure:"write_timeout"`
	RequestTimeout int `mapstructure:"request_timeout"`
	BodyLimit      int `mapstructure:"body_limit"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExtractConfig bounds the size of analysed texts and how long results are cached.
type ExtractConfig struct {
	MaxTextBytes int `mapstructure:"max_text_bytes"`
	CacheTTL     int `mapstructure:"cache_ttl"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type ValkeyConfig struct {
	Addr    string `mapstructure:"addr"`
	Enabled bool   `mapstructure:"enabled"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

// WorkerConfig configures the extraction event consumer.
type WorkerConfig struct {
	Durable     string `mapstructure:"durable"`
	MetricsPort int    `mapstructure:"metrics_port"`
	DedupWindow int    `mapstructure:"dedup_window"` // event IDs remembered for redelivery
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.request_timeout", 5)
	v.SetDefault("server.body_limit", 256*1024)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("extract.max_text_bytes", 64*1024)
	v.SetDefault("extract.cache_ttl", 300)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.enabled", true)
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.enabled", true)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("worker.durable", "maplink-worker")
	v.SetDefault("worker.metrics_port", 9091)
	v.SetDefault("worker.dedup_window", 10000)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Environment variables: MAPLINK_VALKEY_ADDR → valkey.addr
	v.SetEnvPrefix("MAPLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Server.BodyLimit <= 0 {
		errs = append(errs, "server.body_limit must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}
	if c.Extract.MaxTextBytes <= 0 {
		errs = append(errs, "extract.max_text_bytes must be positive")
	}
	if c.Extract.MaxTextBytes > c.Server.BodyLimit {
		errs = append(errs, "extract.max_text_bytes must not exceed server.body_limit")
	}
	if c.Extract.CacheTTL <= 0 {
		errs = append(errs, "extract.cache_ttl must be positive")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "nats.url is required when nats is enabled")
	}
	if c.Valkey.Enabled && c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required when valkey is enabled")
	}
	if c.Telemetry.Enabled && c.Telemetry.OTLPAddr == "" {
		errs = append(errs, "telemetry.otlp_addr is required when telemetry is enabled")
	}

	if c.Worker.Durable == "" {
		errs = append(errs, "worker.durable must not be empty")
	}
	if c.Worker.MetricsPort < 0 || c.Worker.MetricsPort > 65535 {
		errs = append(errs, fmt.Sprintf("worker.metrics_port must be 0-65535, got %d", c.Worker.MetricsPort))
	}
	if c.Worker.DedupWindow < 1 {
		errs = append(errs, fmt.Sprintf("worker.dedup_window must be positive, got %d", c.Worker.DedupWindow))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
