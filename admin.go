// admin.go - privacy-conscious visitor counting and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const adminCookie = "admin_token"

// Privacy-conscious visitor tracking struct
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"` // Hashed instead of raw IP for privacy
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type PathStat struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

type AdminStats struct {
	TotalVisitors       int64           `json:"total_visitors"`
	UniqueVisitors      int64           `json:"unique_visitors"`
	VisitorsToday       int64           `json:"visitors_today"`
	VisitorsThisWeek    int64           `json:"visitors_this_week"`
	TotalMessages       int64           `json:"total_messages"`
	UndeliveredMessages int64           `json:"undelivered_messages"`
	TopPaths            []PathStat      `json:"top_paths"`
	RecentVisitors      []VisitorMetric `json:"recent_visitors"`
}

func generateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP and salt)
func hashIP(salt, ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// untrackedPrefixes are never counted as page views.
var untrackedPrefixes = []string{
	"/static/",
	"/admin/",
	"/favicon",
	"/privacy",
	"/healthz",
	"/robots.txt",
	"/sitemap.xml",
	"/api/",
}

// shouldTrack reports whether a request counts as a page view.
func shouldTrack(method, path, dnt string) bool {
	if method != http.MethodGet {
		return false
	}
	// Respect Do Not Track header
	if dnt == "1" {
		return false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// visitorStore persists page views with hashed addresses.
type visitorStore struct {
	db   *sql.DB
	salt string
	now  func() time.Time
}

func (s *visitorStore) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashIP(s.salt, ip), userAgent, path, s.now().UTC())
	if err != nil {
		return fmt.Errorf("record visitor: %w", err)
	}
	return nil
}

// Cleanup deletes visitor rows older than retention and returns how many
// were removed.
func (s *visitorStore) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, s.now().UTC().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

func (s *visitorStore) Recent(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// Stats gathers everything the dashboard shows.
func (a *app) Stats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	now := a.visitors.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}},
		{&stats.TotalMessages, `SELECT COUNT(*) FROM messages`, nil},
		{&stats.UndeliveredMessages, `SELECT COUNT(*) FROM messages WHERE delivered = 0`, nil},
	}
	for _, q := range counts {
		if err := a.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS visits
		FROM visitors
		GROUP BY path
		ORDER BY visits DESC, path ASC
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("stats: top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Visits); err != nil {
			return nil, fmt.Errorf("stats: scan path: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.RecentVisitors, err = a.visitors.Recent(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Privacy-conscious visitor tracking middleware
func (a *app) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldTrack(c.Request.Method, c.Request.URL.Path, c.GetHeader("DNT")) {
			c.Next()
			return
		}

		ip, ua, path := c.ClientIP(), c.GetHeader("User-Agent"), c.Request.URL.Path
		// Track visitor with hashed IP in background
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.visitors.Record(ctx, ip, ua, path); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()
		c.Next()
	}
}

// Middleware to check admin authentication
func (a *app) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *app) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.AdminPassword)) == 1
	return userOK && passOK
}

func (a *app) cleanupVisitors(ctx context.Context) {
	n, err := a.visitors.Cleanup(ctx, a.cfg.VisitorRetention)
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than %s", n, a.cfg.VisitorRetention)
	}
}

// Setup all admin routes
func (a *app) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":     "Privacy Policy",
			"retention": a.cfg.VisitorRetention,
			"tracking":  a.cfg.TrackVisitors,
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !a.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			log.Printf("Failed admin login attempt from %s", hashIP(a.salt, c.ClientIP()))
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		// Secure cookie (24 hours)
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, a.adminToken, 3600*24, "/admin", "", c.Request.TLS != nil, true)
		log.Printf("Admin login successful from %s", hashIP(a.salt, c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", c.Request.TLS != nil, true)
		log.Printf("Admin logout from %s", hashIP(a.salt, c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(a.adminAuthMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.Stats(c.Request.Context())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.visitors.Recent(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading visitors: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.GET("/messages", func(c *gin.Context) {
		msgs, err := a.messages.Recent(c.Request.Context(), 200)
		if err != nil {
			log.Printf("Error loading messages: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"messages": msgs,
		})
	})

	adminGroup.DELETE("/messages/:id", func(c *gin.Context) {
		id := c.Param("id")
		found, err := a.messages.Delete(c.Request.Context(), id)
		if err != nil {
			log.Printf("Error deleting message %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}

		log.Printf("Message %s deleted by admin from %s", id, hashIP(a.salt, c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		go a.cleanupVisitors(context.Background())
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	// Statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", hashIP(a.salt, c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
