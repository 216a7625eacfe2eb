package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errSMTPNotConfigured = errors.New("SMTP credentials not configured")
	errInvalidContact    = errors.New("invalid contact submission")
)

// maxMessageLength matches the form's maxlength, which counts characters.
const maxMessageLength = 5000

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Delivered bool      `json:"delivered"`
}

// Mailer delivers contact messages to the site owner.
type Mailer interface {
	Send(ctx context.Context, msg ContactMessage) error
}

// smtpMailer sends mail through an authenticated SMTP relay.
type smtpMailer struct {
	host, port string
	user, pass string
	to         string

	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPMailer(cfg *Config) *smtpMailer {
	return &smtpMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		to:   cfg.ToEmail,
		send: smtp.SendMail,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg ContactMessage) error {
	if m.user == "" || m.pass == "" {
		return errSMTPNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := m.send(m.host+":"+m.port, auth, m.user, []string{m.to}, m.compose(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (m *smtpMailer) compose(msg ContactMessage) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerValue(msg.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form (ref %s)
`, msg.Name, msg.Email, msg.Body, msg.ID)

	return []byte("To: " + m.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.user + "\r\n" +
		"Reply-To: " + headerValue(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerValue strips line breaks so user input cannot add headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// parseContact validates and normalises a submission.
func parseContact(name, email, message string) (ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	switch {
	case name == "" || email == "" || message == "":
		return ContactMessage{}, fmt.Errorf("%w: all fields are required", errInvalidContact)
	case utf8.RuneCountInString(message) > maxMessageLength:
		return ContactMessage{}, fmt.Errorf("%w: message too long", errInvalidContact)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ContactMessage{}, fmt.Errorf("%w: bad email address", errInvalidContact)
	}

	return ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Body:      message,
		CreatedAt: time.Now().UTC(),
	}, nil
}

type messageStore struct {
	db *sql.DB
}

func (s *messageStore) Save(ctx context.Context, m ContactMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, name, email, body, created_at, delivered)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Email, m.Body, m.CreatedAt, m.Delivered)
	if err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

func (s *messageStore) MarkDelivered(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE messages SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark message %s delivered: %w", id, err)
	}
	return nil
}

func (s *messageStore) Recent(ctx context.Context, limit int) ([]ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, body, created_at, delivered
		FROM messages
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []ContactMessage
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Body, &m.CreatedAt, &m.Delivered); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// Delete removes a message and reports whether it existed.
func (s *messageStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete message %s: %w", id, err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

func (a *app) setupContactRoutes(r *gin.Engine) {
	// HTMX contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	r.POST("/contact", a.handleContact)
}

// handleContact answers with HTML fragments; HTMX swaps them in place, so
// failures still use 200.
func (a *app) handleContact(c *gin.Context) {
	msg, err := parseContact(c.PostForm("fullName"), c.PostForm("email"), c.PostForm("message"))
	if err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}

	ctx := c.Request.Context()
	if err := a.messages.Save(ctx, msg); err != nil {
		log.Printf("Error storing contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	if err := a.mailer.Send(ctx, msg); err != nil {
		log.Printf("Error sending email for message %s: %v", msg.ID, err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}
	if err := a.messages.MarkDelivered(ctx, msg.ID); err != nil {
		log.Printf("Error updating message %s: %v", msg.ID, err)
	}

	log.Printf("Contact message %s delivered from %s", msg.ID, hashIP(a.salt, c.ClientIP()))
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
