package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/glabrego/catfeed/internal/logger"
)

const (
	defaultAPIBaseURL  = "http://localhost:8080/api"
	defaultSiteURL     = "http://localhost:3000"
	defaultHTTPTimeout = 10 * time.Second

	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL   string
	APIToken     string
	SiteURL      string
	DBPath       string
	PrefsBackend string
	RedisURL     string
	LogLevel     string
	LogFile      string
	HTTPTimeout  time.Duration
}

// fileConfig mirrors config.toml. Empty values keep the defaults.
type fileConfig struct {
	APIBaseURL   string `toml:"api_base_url"`
	APIToken     string `toml:"api_token"`
	SiteURL      string `toml:"site_url"`
	DBPath       string `toml:"db_path"`
	PrefsBackend string `toml:"prefs_backend"`
	RedisURL     string `toml:"redis_url"`
	LogLevel     string `toml:"log_level"`
	LogFile      string `toml:"log_file"`
	HTTPTimeout  string `toml:"http_timeout"`
}

func Default() Config {
	return Config{
		APIBaseURL:   defaultAPIBaseURL,
		SiteURL:      defaultSiteURL,
		DBPath:       "catfeed.db",
		PrefsBackend: BackendSQLite,
		LogLevel:     "info",
		LogFile:      "catfeed.log",
		HTTPTimeout:  defaultHTTPTimeout,
	}
}

// DefaultPath is config.toml under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "catfeed", "config.toml")
}

// Load layers defaults, the TOML file at path and the environment. envFile
// is loaded into the environment first without overriding variables that are
// already set. Missing files are not an error.
func Load(path, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if _, err := toml.Decode(string(data), &fc); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	setString(&c.APIBaseURL, fc.APIBaseURL)
	setString(&c.APIToken, fc.APIToken)
	setString(&c.SiteURL, fc.SiteURL)
	setString(&c.DBPath, fc.DBPath)
	setString(&c.PrefsBackend, fc.PrefsBackend)
	setString(&c.RedisURL, fc.RedisURL)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFile, fc.LogFile)
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("http_timeout in %s: %w", path, err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	lookupString(&c.APIBaseURL, "CATFEED_API_BASE_URL")
	lookupString(&c.APIToken, "CATFEED_API_TOKEN")
	lookupString(&c.SiteURL, "CATFEED_SITE_URL")
	lookupString(&c.DBPath, "CATFEED_DB_PATH")
	lookupString(&c.PrefsBackend, "CATFEED_PREFS_BACKEND")
	lookupString(&c.RedisURL, "CATFEED_REDIS_URL")
	lookupString(&c.LogLevel, "CATFEED_LOG_LEVEL")
	lookupString(&c.LogFile, "CATFEED_LOG_FILE")
	if v := os.Getenv("CATFEED_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CATFEED_HTTP_TIMEOUT: %w", err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if strings.HasSuffix(c.APIBaseURL, "/") {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	switch c.PrefsBackend {
	case BackendSQLite:
		if c.DBPath == "" {
			return errors.New("DBPath is required for the sqlite backend")
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return errors.New("CATFEED_REDIS_URL is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("PrefsBackend must be sqlite, redis or memory: %s", c.PrefsBackend)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTPTimeout must be positive: %s", c.HTTPTimeout)
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	site, err := url.Parse(c.SiteURL)
	if err != nil || (site.Scheme != "http" && site.Scheme != "https") || site.Host == "" {
		return fmt.Errorf("SiteURL must be an absolute http(s) URL: %s", c.SiteURL)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func lookupString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
