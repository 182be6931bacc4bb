// Package config loads the CLI and server configuration: defaults, then an
// optional YAML file, then .env files, then SITEKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/goliatone/go-sitekit/pkg/enhance"
	"github.com/goliatone/go-sitekit/pkg/locale"
	"github.com/goliatone/go-sitekit/pkg/prefs"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SITEKIT"

// Keys.
const (
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyLogFile      = "log.file"
	KeyLogMaxSize   = "log.max_size"
	KeyLogMaxFiles  = "log.max_files"
	KeyStoreDriver  = "store.driver"
	KeyStorePath    = "store.path"
	KeyStoreRedis   = "store.redis_url"
	KeyStorePrefix  = "store.prefix"
	KeyStoreTimeout = "store.timeout"
	KeySiteName     = "site.name"
	KeySiteYear     = "site.year"
	KeySiteLocale   = "site.locale"
	KeyServeAddr    = "serve.addr"
)

// Config is the resolved configuration.
type Config struct {
	Log   LogConfig
	Store StoreConfig
	Site  SiteConfig
	Serve ServeConfig
}

// LogConfig configures internal/logging.
type LogConfig struct {
	Level    string // debug, info, warn, error
	Format   string // text, json
	File     string // empty logs to stderr
	MaxSize  int    // MB before rotation
	MaxFiles int
}

// StoreConfig selects the preference store.
type StoreConfig struct {
	Driver   string
	Path     string
	RedisURL string
	Prefix   string
	Timeout  time.Duration
}

// SiteConfig describes the footer text.
type SiteConfig struct {
	Name   string
	Year   int
	Locale string
}

// ServeConfig configures the preview server.
type ServeConfig struct {
	Addr string
}

// Load resolves the configuration. path may be empty; envFiles default to
// ".env" and missing env files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	loadEnvFiles(envFiles)

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{
		Log: LogConfig{
			Level:    strings.ToLower(v.GetString(KeyLogLevel)),
			Format:   strings.ToLower(v.GetString(KeyLogFormat)),
			File:     v.GetString(KeyLogFile),
			MaxSize:  v.GetInt(KeyLogMaxSize),
			MaxFiles: v.GetInt(KeyLogMaxFiles),
		},
		Store: StoreConfig{
			Driver:   strings.ToLower(v.GetString(KeyStoreDriver)),
			Path:     v.GetString(KeyStorePath),
			RedisURL: v.GetString(KeyStoreRedis),
			Prefix:   v.GetString(KeyStorePrefix),
			Timeout:  v.GetDuration(KeyStoreTimeout),
		},
		Site: SiteConfig{
			Name:   v.GetString(KeySiteName),
			Year:   v.GetInt(KeySiteYear),
			Locale: v.GetString(KeySiteLocale),
		},
		Serve: ServeConfig{
			Addr: v.GetString(KeyServeAddr),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles(files []string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		// a missing file is not an error
		_ = godotenv.Load(file)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSize, 10)
	v.SetDefault(KeyLogMaxFiles, 5)
	v.SetDefault(KeyStoreDriver, prefs.DriverMemory)
	v.SetDefault(KeyStorePath, "")
	v.SetDefault(KeyStoreRedis, "")
	v.SetDefault(KeyStorePrefix, "")
	v.SetDefault(KeyStoreTimeout, 2*time.Second)
	v.SetDefault(KeySiteName, enhance.DefaultSite().Name)
	v.SetDefault(KeySiteYear, enhance.DefaultSite().Year)
	v.SetDefault(KeySiteLocale, locale.Default.String())
	v.SetDefault(KeyServeAddr, ":8080")
}

// Validate rejects values no component can use.
func (c *Config) Validate() error {
	var errs []error
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: %s %q not one of debug, info, warn, error", KeyLogLevel, c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: %s %q not one of text, json", KeyLogFormat, c.Log.Format))
	}
	switch c.Store.Driver {
	case prefs.DriverMemory, prefs.DriverDisabled, prefs.DriverRedis:
	case prefs.DriverFile, prefs.DriverSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			errs = append(errs, fmt.Errorf("config: %s is required for driver %s", KeyStorePath, c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown %s %q", KeyStoreDriver, c.Store.Driver))
	}
	if c.Store.Driver == prefs.DriverRedis && strings.TrimSpace(c.Store.RedisURL) == "" {
		errs = append(errs, fmt.Errorf("config: %s is required for driver redis", KeyStoreRedis))
	}
	if c.Site.Year < 0 {
		errs = append(errs, fmt.Errorf("config: %s must not be negative", KeySiteYear))
	}
	return errors.Join(errs...)
}

// PrefsConfig converts the store section for prefs.Open.
func (c *Config) PrefsConfig() prefs.Config {
	return prefs.Config{
		Driver:   c.Store.Driver,
		Path:     c.Store.Path,
		RedisURL: c.Store.RedisURL,
		Prefix:   c.Store.Prefix,
		Timeout:  c.Store.Timeout,
	}
}

// SiteInfo converts the site section for the enhancement steps.
func (c *Config) SiteInfo() enhance.Site {
	return enhance.Site{
		Name:   c.Site.Name,
		Year:   c.Site.Year,
		Locale: locale.Parse(c.Site.Locale),
	}
}
