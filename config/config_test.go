package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
site:
  base_url: https://www.acme.com
  default_locale: en_US
  locales: [da_DK, sv_SE]
api:
  base_url: https://api.acme.com/v1
  token: secret
  timeout: 10
sync:
  output_dir: /tmp/dist
  workers: 8
cache:
  enabled: true
  redis_url: redis://localhost:6379
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://www.acme.com", cfg.Site.BaseURL)
	assert.Equal(t, []string{"da_DK", "sv_SE"}, cfg.Site.Locales)
	assert.Equal(t, "secret", cfg.API.Token)
	assert.Equal(t, 10, cfg.API.Timeout)
	assert.Equal(t, 8, cfg.Sync.Workers)
	assert.Equal(t, "redis://localhost:6379", cfg.Cache.RedisURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
site:
  base_url: https://www.acme.com
  locales: [da_DK]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "en_US", cfg.Site.DefaultLocale)
	assert.Equal(t, 30, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.MaxRetries)
	assert.Equal(t, "./dist", cfg.Sync.OutputDir)
	assert.Equal(t, 4, cfg.Sync.Workers)
	assert.True(t, cfg.Sync.DownloadAssets)
	assert.True(t, cfg.Sync.WriteSitemap)
	assert.Equal(t, 500, cfg.Sync.MaxCrawlPages)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 86400, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Site: SiteConfig{
			BaseURL:       "https://www.acme.com",
			DefaultLocale: "en_US",
			Locales:       []string{"da_DK"},
		},
		Sync: SyncConfig{Workers: 4},
	}
	assert.NoError(t, valid.Validate())

	noBase := valid
	noBase.Site.BaseURL = ""
	assert.ErrorContains(t, noBase.Validate(), "site.base_url")

	noLocales := valid
	noLocales.Site.Locales = nil
	assert.ErrorContains(t, noLocales.Validate(), "site.locales")

	defaultInTargets := valid
	defaultInTargets.Site.Locales = []string{"en_US"}
	assert.ErrorContains(t, defaultInTargets.Validate(), "default locale")

	badWorkers := valid
	badWorkers.Sync.Workers = 0
	assert.ErrorContains(t, badWorkers.Validate(), "sync.workers")
}
