// Package config loads server settings from defaults, an optional YAML file,
// .env files and the process environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
		// Mode is gin's mode: debug, release or test.
		Mode string `yaml:"mode"`
	} `yaml:"server"`

	Site struct {
		URL    string `yaml:"url"`
		Brand  string `yaml:"brand"`
		Author string `yaml:"author"`
		Email  string `yaml:"email"`
	} `yaml:"site"`

	SMTP struct {
		Host string `yaml:"host"`
		Port string `yaml:"port"`
		User string `yaml:"user"`
		Pass string `yaml:"pass"`
		To   string `yaml:"to"`
	} `yaml:"smtp"`

	Admin struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"admin"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`

	Blog struct {
		APIURL            string  `yaml:"api_url"`
		APIKey            string  `yaml:"api_key"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"blog"`

	SEO struct {
		MinWords             int     `yaml:"min_words"`
		TitleThreshold       float64 `yaml:"title_threshold"`
		DescriptionThreshold float64 `yaml:"description_threshold"`
		Workers              int     `yaml:"workers"`
	} `yaml:"seo"`

	Privacy struct {
		RetentionDays int `yaml:"retention_days"`
	} `yaml:"privacy"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	var c Config
	c.Server.Port = "8080"
	c.Server.Mode = "debug"
	c.Site.URL = "http://localhost:8080"
	c.Site.Brand = "Zach Dev"
	c.Site.Author = "Zach"
	c.Site.Email = "zachkordaspotter@gmail.com"
	c.SMTP.Host = "smtp.gmail.com"
	c.SMTP.Port = "587"
	c.SMTP.To = "zachkordaspotter@gmail.com"
	c.Database.Path = "data/portfolio.db"
	c.Blog.TimeoutSeconds = 10
	c.Blog.RequestsPerSecond = 5
	c.SEO.MinWords = 300
	c.SEO.TitleThreshold = 0.85
	c.SEO.DescriptionThreshold = 0.9
	c.Privacy.RetentionDays = 365
	return c
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the config: defaults, then the YAML file at path (skipped when
// path is empty), then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	strs := map[string]*string{
		"PORT":           &cfg.Server.Port,
		"GIN_MODE":       &cfg.Server.Mode,
		"SITE_URL":       &cfg.Site.URL,
		"SMTP_HOST":      &cfg.SMTP.Host,
		"SMTP_PORT":      &cfg.SMTP.Port,
		"SMTP_USER":      &cfg.SMTP.User,
		"SMTP_PASS":      &cfg.SMTP.Pass,
		"TO_EMAIL":       &cfg.SMTP.To,
		"ADMIN_USERNAME": &cfg.Admin.Username,
		"ADMIN_PASSWORD": &cfg.Admin.Password,
		"DATABASE_PATH":  &cfg.Database.Path,
		"REDIS_URL":      &cfg.Redis.URL,
		"BLOG_API_URL":   &cfg.Blog.APIURL,
		"BLOG_API_KEY":   &cfg.Blog.APIKey,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("PRIVACY_RETENTION_DAYS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PRIVACY_RETENTION_DAYS: %w", err)
		}
		cfg.Privacy.RetentionDays = n
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}

// ContactEnabled reports whether SMTP credentials are present.
func (c Config) ContactEnabled() bool {
	return c.SMTP.User != "" && c.SMTP.Pass != ""
}
