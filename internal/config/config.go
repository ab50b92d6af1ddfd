package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// FileName is the config file looked up in the working directory
const FileName = "portfolio.yaml"

// EnvPrefix prefixes every environment override
const EnvPrefix = "PORTFOLIO_"

// Config holds all application configuration
type Config struct {
	ServerAddr      string        `koanf:"server_addr"`
	CatalogPath     string        `koanf:"catalog_path"`
	StaticDir       string        `koanf:"static_dir"`
	TemplatesDir    string        `koanf:"templates_dir"`
	Watch           bool          `koanf:"watch"`
	Dev             bool          `koanf:"dev"`
	LogLevel        string        `koanf:"log_level"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// EmbedOpenRate limits new embed viewers per second, server wide. Zero disables it.
	EmbedOpenRate  float64 `koanf:"embed_open_rate"`
	EmbedOpenBurst int     `koanf:"embed_open_burst"`

	// Viewers with no activity for EmbedIdleTimeout are closed, checked every EmbedSweepInterval.
	EmbedIdleTimeout   time.Duration `koanf:"embed_idle_timeout"`
	EmbedSweepInterval time.Duration `koanf:"embed_sweep_interval"`

	// SessionSecret signs the session cookie. Empty means a random key per process.
	SessionSecret string `koanf:"session_secret"`
}

// Defaults returns the built-in configuration
func Defaults() map[string]any {
	return map[string]any{
		"server_addr":          ":8080",
		"catalog_path":         "data/catalog.yaml",
		"static_dir":           "static",
		"templates_dir":        "internal/render/templates",
		"watch":                false,
		"dev":                  false,
		"log_level":            "info",
		"read_timeout":         "15s",
		"write_timeout":        "15s",
		"shutdown_timeout":     "10s",
		"embed_open_rate":      10.0,
		"embed_open_burst":     20,
		"embed_idle_timeout":   "5m",
		"embed_sweep_interval": "1m",
		"session_secret":       "",
	}
}

// Load reads configuration. Precedence, highest first: flags, environment,
// config file, defaults. cfgFile may be empty, in which case portfolio.yaml
// is used when present. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile == "" {
		if _, err := os.Stat(FileName); err == nil {
			cfgFile = FileName
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	// SERVER_ADDR predates the prefixed variables and is still honored.
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		if err := k.Set("server_addr", addr); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFiles loads ENV_FILE when set, otherwise .env.local then .env.
// Variables already present in the environment win.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServerAddr) == "" {
		return fmt.Errorf("server_addr must not be empty")
	}
	if strings.TrimSpace(c.CatalogPath) == "" {
		return fmt.Errorf("catalog_path must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	if c.EmbedOpenRate < 0 || c.EmbedOpenBurst < 0 {
		return fmt.Errorf("embed_open_rate and embed_open_burst must not be negative")
	}
	if c.EmbedIdleTimeout <= 0 || c.EmbedSweepInterval <= 0 {
		return fmt.Errorf("embed_idle_timeout and embed_sweep_interval must be positive")
	}
	return nil
}
