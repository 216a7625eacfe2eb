package main

import (
	"database/sql"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/netip"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

var errProjectNotFound = errors.New("project not found")

// app carries everything the handlers share.
type app struct {
	cfg  *Config
	site Site
	db   *sql.DB
	tmpl *template.Template

	visitors *visitorStore
	messages *messageStore
	mailer   Mailer

	adminToken string
	salt       string // for IP hashing
	now        func() time.Time

	proxies []netip.Prefix
}

func newApp(cfg *Config) (*app, error) {
	proxies, err := parseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	tmpl, err := loadTemplates(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}
	db, err := openDB(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		site:       DefaultSite(),
		db:         db,
		tmpl:       tmpl,
		messages:   &messageStore{db: db},
		mailer:     newSMTPMailer(cfg),
		adminToken: generateToken(),
		salt:       generateToken(),
		now:        time.Now,
		proxies:    proxies,
	}
	a.visitors = &visitorStore{db: db, salt: a.salt, now: func() time.Time { return a.now() }}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.adminToken)
	}
	if cfg.TrackVisitors {
		log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	}
	return a, nil
}

// fromTrustedProxy reports whether the request's direct peer may set
// X-Forwarded-* headers.
func (a *app) fromTrustedProxy(r *http.Request) bool {
	addrPort, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil {
		return false
	}
	ip := addrPort.Addr().Unmap()
	for _, p := range a.proxies {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

func prefixStrings(prefixes []netip.Prefix) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, p.String())
	}
	return out
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) routes() *gin.Engine {
	r := gin.Default()
	// Without this gin trusts X-Forwarded-For from every client.
	if err := r.SetTrustedProxies(prefixStrings(a.proxies)); err != nil {
		log.Printf("Error setting trusted proxies: %v", err)
	}
	r.SetHTMLTemplate(a.tmpl)
	if a.cfg.TrackVisitors {
		r.Use(a.visitorTrackingMiddleware())
	}

	r.Static("/static", a.cfg.StaticDir)

	// Home page route
	r.GET("/", func(c *gin.Context) {
		data, err := a.pageData(CanonicalURL(a.cfg.SiteURL, c.Request, a.fromTrustedProxy(c.Request)))
		if err != nil {
			log.Printf("Error building page: %v", err)
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		data.ContactForm = true
		c.HTML(http.StatusOK, "index.html", data)
	})

	r.GET("/resume", func(c *gin.Context) {
		if a.cfg.ResumePath == "" {
			c.String(http.StatusNotFound, "résumé not available")
			return
		}
		if _, err := os.Stat(a.cfg.ResumePath); err != nil {
			log.Printf("Résumé unavailable: %v", err)
			c.String(http.StatusNotFound, "résumé not available")
			return
		}
		c.FileAttachment(a.cfg.ResumePath, "Chinmay-Jain-Resume.pdf")
	})

	r.GET("/api/projects", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.site.Projects)
	})

	r.GET("/api/projects/:slug", func(c *gin.Context) {
		p, ok := a.site.ProjectBySlug(c.Param("slug"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": errProjectNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.GET("/robots.txt", func(c *gin.Context) {
		c.String(http.StatusOK, robotsTxt(a.cfg.SiteURL))
	})

	r.GET("/sitemap.xml", func(c *gin.Context) {
		if a.cfg.SiteURL == "" {
			c.String(http.StatusNotFound, "sitemap requires SITE_URL")
			return
		}
		body, err := sitemapXML(a.cfg.SiteURL)
		if err != nil {
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	a.setupContactRoutes(r)
	a.setupAdminRoutes(r)
	return r
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
