package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jask/artbrowse/internal/artic"
	"github.com/jask/artbrowse/internal/logging"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// APIConfig holds artworks API settings.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Fields    []string      `mapstructure:"fields"`
}

// UIConfig holds table settings.
type UIConfig struct {
	PageSize  int   `mapstructure:"page_size"`
	PageSizes []int `mapstructure:"page_sizes"`
	RowClick  bool  `mapstructure:"row_click"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Pretty bool   `mapstructure:"pretty"`
}

// StoreConfig holds the snapshot database location.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// MetricsConfig holds the optional Prometheus listener.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"base-url":     "api.base_url",
	"timeout":      "api.timeout",
	"page-size":    "ui.page_size",
	"row-click":    "ui.row_click",
	"log-level":    "log.level",
	"log-file":     "log.file",
	"store":        "store.path",
	"metrics-addr": "metrics.addr",
}

func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

// Path returns the config file location: $ARTBROWSE_CONFIG or ~/.config/artbrowse/config.toml.
func Path() string {
	if p := os.Getenv("ARTBROWSE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(homeDir(), ".config", "artbrowse", "config.toml")
}

func setDefaults(v *viper.Viper) {
	home := homeDir()
	v.SetDefault("api.base_url", artic.DefaultBaseURL)
	v.SetDefault("api.user_agent", "artbrowse/0.1")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.fields", artic.DefaultFields)
	v.SetDefault("ui.page_size", 12)
	v.SetDefault("ui.page_sizes", []int{12, 24, 48})
	v.SetDefault("ui.row_click", false)
	v.SetDefault("log.level", string(logging.LevelInfo))
	v.SetDefault("log.file", filepath.Join(home, ".local", "state", "artbrowse", "artbrowse.log"))
	v.SetDefault("log.pretty", false)
	v.SetDefault("store.path", filepath.Join(home, ".local", "share", "artbrowse", "snapshots.db"))
	v.SetDefault("metrics.addr", "")
}

// Load reads configuration from flags, env, .env, file and defaults, in that
// order of precedence. Env var overrides use prefix ARTBROWSE_. flags may be nil.
func Load(flags *pflag.FlagSet) (Config, error) {
	// .env is optional and never overrides variables already set
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if p := os.Getenv("ARTBROWSE_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else {
		v.AddConfigPath(filepath.Join(homeDir(), ".config", "artbrowse"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ARTBROWSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks c and normalizes the page size list.
func (c *Config) Validate() error {
	if c.UI.PageSize < 1 {
		return fmt.Errorf("ui.page_size must be >= 1 (got %d)", c.UI.PageSize)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) url (got %q)", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}

	sizes := make([]int, 0, len(c.UI.PageSizes)+1)
	seen := map[int]bool{}
	candidates := append([]int{c.UI.PageSize}, c.UI.PageSizes...)
	for _, s := range candidates {
		if s < 1 || seen[s] {
			continue
		}
		seen[s] = true
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	c.UI.PageSizes = sizes
	return nil
}

// ClientConfig converts the API section for artic.New.
func (c Config) ClientConfig() artic.Config {
	return artic.Config{
		BaseURL:   c.API.BaseURL,
		UserAgent: c.API.UserAgent,
		Timeout:   c.API.Timeout,
		Fields:    c.API.Fields,
	}
}

// LoggingConfig converts the log section for logging.Setup. Output is left to the caller.
func (c Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  logging.LogLevel(c.Log.Level),
		Pretty: c.Log.Pretty,
	}
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.user_agent", cfg.API.UserAgent)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("api.fields", cfg.API.Fields)
	v.Set("ui.page_size", cfg.UI.PageSize)
	v.Set("ui.page_sizes", cfg.UI.PageSizes)
	v.Set("ui.row_click", cfg.UI.RowClick)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.file", cfg.Log.File)
	v.Set("log.pretty", cfg.Log.Pretty)
	v.Set("store.path", cfg.Store.Path)
	v.Set("metrics.addr", cfg.Metrics.Addr)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
