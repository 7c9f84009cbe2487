package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Validates(t *testing.T) {
	cfg, res := NormalizeAndValidate(Default())
	assert.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.NotEmpty(t, res.Warnings)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
site:
  url: https://example.dev/
  author: Sam
seo:
  min_words: 250
`), 0o644))

	t.Setenv("PORT", "7070")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PRIVACY_RETENTION_DAYS", "90")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "Sam", cfg.Site.Author)
	assert.Equal(t, 250, cfg.SEO.MinWords)
	assert.Equal(t, 0.85, cfg.SEO.TitleThreshold, "unset keys keep defaults")
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 90, cfg.Privacy.RetentionDays)
	assert.Equal(t, ":7070", cfg.Addr())

	cfg, res := NormalizeAndValidate(cfg)
	assert.True(t, res.OK(), "errors: %v", res.Errors)
	assert.Equal(t, "https://example.dev", cfg.Site.URL)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("PRIVACY_RETENTION_DAYS", "forever")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, []byte("BLOG_API_KEY=from-dotenv\n"), 0o644))

	t.Setenv("BLOG_API_KEY", "")
	require.NoError(t, os.Unsetenv("BLOG_API_KEY"))
	require.NoError(t, LoadDotEnv(env, filepath.Join(dir, "missing.env")))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Blog.APIKey)
}

func TestNormalizeAndValidate_Problems(t *testing.T) {
	cfg := Default()
	cfg.Server.Mode = "release"
	cfg.Server.Port = "http"
	cfg.Site.URL = "example.dev"
	cfg.Redis.URL = "localhost:6379"
	cfg.SEO.TitleThreshold = 1.5
	cfg.Privacy.RetentionDays = 0

	_, res := NormalizeAndValidate(cfg)
	assert.False(t, res.OK())
	assert.Contains(t, res.Errors, `server.port must be a port number, got "http"`)
	assert.Contains(t, res.Errors, `site.url must be an absolute http(s) URL, got "example.dev"`)
	assert.Contains(t, res.Errors, "ADMIN_PASSWORD must be set in release mode")
	assert.Contains(t, res.Errors, "redis.url must start with redis:// or rediss://")
	assert.Contains(t, res.Errors, "seo.title_threshold must be in (0, 1], got 1.5")
	assert.Contains(t, res.Errors, "privacy.retention_days must be > 0")
}
