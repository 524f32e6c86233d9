// Package config loads the sync configuration from YAML with environment
// variable overrides. Every recognized option and its default is enumerated
// here; nothing else in the program reads viper directly.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for a sync run.
type Config struct {
	Site  SiteConfig  `mapstructure:"site"`
	API   APIConfig   `mapstructure:"api"`
	Sync  SyncConfig  `mapstructure:"sync"`
	Cache CacheConfig `mapstructure:"cache"`
	Log   LogConfig   `mapstructure:"log"`
}

// SiteConfig describes the published site and its locales.
type SiteConfig struct {
	BaseURL       string   `mapstructure:"base_url"`
	DefaultLocale string   `mapstructure:"default_locale"`
	Locales       []string `mapstructure:"locales"`
}

// APIConfig holds content API connection details.
type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Token                string `mapstructure:"token"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
}

// SyncConfig controls the sync pipeline.
type SyncConfig struct {
	OutputDir      string `mapstructure:"output_dir"`
	Workers        int    `mapstructure:"workers"`
	DownloadAssets bool   `mapstructure:"download_assets"`
	WriteSitemap   bool   `mapstructure:"write_sitemap"`
	CrawlFallback  bool   `mapstructure:"crawl_fallback"`
	MaxCrawlPages  int    `mapstructure:"max_crawl_pages"`
}

// CacheConfig controls the translation-map cache.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	TTL      int    `mapstructure:"ttl"`
	RedisURL string `mapstructure:"redis_url"` // empty = in-memory cache
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from the given YAML file (or "config.yaml" in
// the working directory when path is empty) with environment variable
// overrides (SITE_BASE_URL, API_TOKEN, ...).
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No file: defaults plus environment still make a usable config.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the loaded configuration once, at construction.
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if c.Site.DefaultLocale == "" {
		return fmt.Errorf("site.default_locale is required")
	}
	if len(c.Site.Locales) == 0 {
		return fmt.Errorf("site.locales must name at least one target locale")
	}
	for _, locale := range c.Site.Locales {
		if locale == c.Site.DefaultLocale {
			return fmt.Errorf("site.locales must not contain the default locale %q", locale)
		}
	}
	if c.Sync.Workers < 1 {
		return fmt.Errorf("sync.workers must be at least 1")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.default_locale", "en_US")

	v.SetDefault("api.timeout", 30)
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.max_requests_per_second", 5)

	v.SetDefault("sync.output_dir", "./dist")
	v.SetDefault("sync.workers", 4)
	v.SetDefault("sync.download_assets", true)
	v.SetDefault("sync.write_sitemap", true)
	v.SetDefault("sync.crawl_fallback", true)
	v.SetDefault("sync.max_crawl_pages", 500)

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 86400)
	v.SetDefault("cache.redis_url", "")

	v.SetDefault("log.level", "info")
}
