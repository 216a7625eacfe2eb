package main

import (
	"fmt"
	"log"
	"net/netip"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment (and .env, if present).
type Config struct {
	Port         string `envconfig:"PORT" default:"8080"`
	SiteURL      string `envconfig:"SITE_URL"`
	TemplateDir  string `envconfig:"TEMPLATE_DIR" default:"templates"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"static"`
	DatabasePath string `envconfig:"DATABASE_PATH" default:"portfolio.db"`
	ResumePath   string `envconfig:"RESUME_PATH"`

	// Proxies allowed to set X-Forwarded-* headers; comma separated IPs or
	// CIDRs. Empty trusts none.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	TrackVisitors    bool          `envconfig:"TRACK_VISITORS" default:"true"`
	VisitorRetention time.Duration `envconfig:"VISITOR_RETENTION" default:"8760h"`

	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	SMTPHost string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser string `envconfig:"SMTP_USER"`
	SMTPPass string `envconfig:"SMTP_PASS"`
	ToEmail  string `envconfig:"TO_EMAIL"`
}

// LoadConfig reads the environment into a Config.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if _, err := parseTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.applyDefaults(DefaultSite().Profile)
	return &cfg, nil
}

// applyDefaults fills values that depend on site content or that only make
// sense during development.
func (c *Config) applyDefaults(p Profile) {
	if c.ToEmail == "" {
		c.ToEmail = p.Email
	}

	// Default credentials for development (set both in production)
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin123"
		if gin.Mode() == gin.DebugMode {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}
}

// parseTrustedProxies accepts the same entries gin's SetTrustedProxies does:
// bare addresses or CIDR prefixes.
func parseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", e, err)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}
