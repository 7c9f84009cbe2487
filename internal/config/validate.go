package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and the problems
// found. Development defaults for admin credentials are filled in only in
// debug mode.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Server.Mode = strings.ToLower(strings.TrimSpace(out.Server.Mode))
	switch out.Server.Mode {
	case "":
		out.Server.Mode = "debug"
	case "debug", "release", "test":
	default:
		res.addErr("server.mode must be debug, release or test, got %q", out.Server.Mode)
	}

	out.Server.Port = strings.TrimPrefix(strings.TrimSpace(out.Server.Port), ":")
	if p, err := strconv.Atoi(out.Server.Port); err != nil || p <= 0 || p > 65535 {
		res.addErr("server.port must be a port number, got %q", out.Server.Port)
	}

	out.Site.URL = strings.TrimRight(strings.TrimSpace(out.Site.URL), "/")
	if u, err := url.Parse(out.Site.URL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		res.addErr("site.url must be an absolute http(s) URL, got %q", out.Site.URL)
	} else if u.Scheme == "http" && out.Server.Mode == "release" {
		res.addWarn("site.url uses http in release mode; canonical URLs should be https")
	}
	if out.Site.Author == "" {
		res.addWarn("site.author is empty; page copy will read oddly")
	}

	if out.Admin.Username == "" {
		out.Admin.Username = "admin"
	}
	if out.Admin.Password == "" {
		if out.Server.Mode == "release" {
			res.addErr("ADMIN_PASSWORD must be set in release mode")
		} else {
			out.Admin.Password = "admin123"
			res.addWarn("using default admin password; set ADMIN_PASSWORD")
		}
	}

	if !out.ContactEnabled() {
		res.addWarn("SMTP_USER/SMTP_PASS not set; the contact form will report errors")
	}

	if out.Database.Path == "" {
		res.addErr("database.path cannot be empty")
	}

	if out.Redis.URL != "" {
		if u, err := url.Parse(out.Redis.URL); err != nil || (u.Scheme != "redis" && u.Scheme != "rediss") {
			res.addErr("redis.url must start with redis:// or rediss://")
		}
	} else {
		res.addWarn("REDIS_URL not set; view counts are disabled")
	}

	if out.Blog.APIURL == "" {
		res.addWarn("BLOG_API_URL not set; the blog serves cached posts only")
	}
	if out.Blog.TimeoutSeconds <= 0 {
		out.Blog.TimeoutSeconds = 10
	}

	if out.SEO.MinWords <= 0 {
		res.addErr("seo.min_words must be > 0")
	}
	for name, t := range map[string]float64{
		"seo.title_threshold":       out.SEO.TitleThreshold,
		"seo.description_threshold": out.SEO.DescriptionThreshold,
	} {
		if t <= 0 || t > 1 {
			res.addErr("%s must be in (0, 1], got %g", name, t)
		}
	}

	if out.Privacy.RetentionDays <= 0 {
		res.addErr("privacy.retention_days must be > 0")
	} else if out.Privacy.RetentionDays > 730 {
		res.addWarn("privacy.retention_days is %d; visitor data is kept for over two years", out.Privacy.RetentionDays)
	}

	return out, res
}
