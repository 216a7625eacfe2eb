package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseContact(t *testing.T) {
	tests := []struct {
		name    string
		in      [3]string
		wantErr bool
	}{
		{"valid", [3]string{" Ada ", "ada@example.com", "Hello there"}, false},
		{"missing name", [3]string{"", "ada@example.com", "hi"}, true},
		{"missing message", [3]string{"Ada", "ada@example.com", "   "}, true},
		{"bad email", [3]string{"Ada", "not-an-email", "hi"}, true},
		{"display name email", [3]string{"Ada", "Ada <ada@example.com>", "hi"}, true},
		{"too long", [3]string{"Ada", "ada@example.com", strings.Repeat("x", maxMessageLength+1)}, true},
		{"multibyte at limit", [3]string{"Ada", "ada@example.com", strings.Repeat("न", maxMessageLength)}, false},
		{"multibyte over limit", [3]string{"Ada", "ada@example.com", strings.Repeat("न", maxMessageLength+1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := parseContact(tt.in[0], tt.in[1], tt.in[2])
			if tt.wantErr {
				require.ErrorIs(t, err, errInvalidContact)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Ada", msg.Name)
			assert.Len(t, msg.ID, 36)
			assert.False(t, msg.Delivered)
		})
	}
}

func TestSMTPMailerSend(t *testing.T) {
	cfg := testConfig(t)
	cfg.SMTPUser = "site@example.com"
	cfg.SMTPPass = "pw"

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m := newSMTPMailer(cfg)
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	msg := ContactMessage{
		ID:    "3f1c",
		Name:  "Eve\r\nBcc: victim@example.com",
		Email: "eve@example.com\r\nX-Injected: 1",
		Body:  "hello",
	}
	require.NoError(t, m.Send(context.Background(), msg))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "site@example.com", gotFrom)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)

	headers, body, ok := strings.Cut(string(gotMsg), "\r\n\r\n")
	require.True(t, ok)
	lines := strings.Split(headers, "\r\n")
	assert.Equal(t, []string{
		"To: owner@example.com",
		"Subject: Portfolio Contact: EveBcc: victim@example.com",
		"From: site@example.com",
		"Reply-To: eve@example.comX-Injected: 1",
	}, lines)
	assert.Contains(t, body, "hello")
	assert.Contains(t, body, "(ref 3f1c)")
}

func TestSMTPMailerRequiresCredentials(t *testing.T) {
	m := newSMTPMailer(testConfig(t))
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	assert.ErrorIs(t, m.Send(context.Background(), ContactMessage{}), errSMTPNotConfigured)
}

func TestSMTPMailerWrapsSendError(t *testing.T) {
	cfg := testConfig(t)
	cfg.SMTPUser, cfg.SMTPPass = "u", "p"
	boom := errors.New("connection refused")

	m := newSMTPMailer(cfg)
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }
	assert.ErrorIs(t, m.Send(context.Background(), ContactMessage{}), boom)
}

func TestContactForm(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t))
	w := do(t, a.routes(), httptest.NewRequest(http.MethodGet, "/contact-form", nil))

	require.Equal(t, http.StatusOK, w.Code)
	doc := parseHTML(t, w.Body.String())
	forms := findAll(doc, element("form", "hx-post", "/contact"))
	require.Len(t, forms, 1)
	for _, name := range []string{"fullName", "email"} {
		assert.Len(t, findAll(forms[0], element("input", "name", name)), 1, name)
	}
	assert.Len(t, findAll(forms[0], element("textarea", "name", "message")), 1)
}

func TestContactSubmit(t *testing.T) {
	form := url.Values{
		"fullName": {"Ada Lovelace"},
		"email":    {"ada@example.com"},
		"message":  {"Let's talk about Kafka."},
	}

	t.Run("delivered", func(t *testing.T) {
		a, fm := newTestApp(t, testConfig(t))
		w := do(t, a.routes(), postForm("/contact", form))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Thank you for your message!")
		require.Len(t, fm.sent, 1)
		assert.Equal(t, "Ada Lovelace", fm.sent[0].Name)

		msgs, err := a.messages.Recent(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, fm.sent[0].ID, msgs[0].ID)
		assert.True(t, msgs[0].Delivered)
		assert.Equal(t, "Let's talk about Kafka.", msgs[0].Body)
	})

	t.Run("mail failure keeps message", func(t *testing.T) {
		a, fm := newTestApp(t, testConfig(t))
		fm.err = errSMTPNotConfigured
		w := do(t, a.routes(), postForm("/contact", form))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "there was an error sending your message")

		msgs, err := a.messages.Recent(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.False(t, msgs[0].Delivered)
	})

	t.Run("invalid", func(t *testing.T) {
		a, fm := newTestApp(t, testConfig(t))
		w := do(t, a.routes(), postForm("/contact", url.Values{"fullName": {"Ada"}}))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `role="alert"`)
		assert.Empty(t, fm.sent)

		msgs, err := a.messages.Recent(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, msgs)
	})
}

func TestMessageStore(t *testing.T) {
	a, _ := newTestApp(t, testConfig(t))
	ctx := context.Background()
	s := a.messages

	older := ContactMessage{ID: "a", Name: "A", Email: "a@x.io", Body: "one", CreatedAt: fixedNow.Add(-time.Hour)}
	newer := ContactMessage{ID: "b", Name: "B", Email: "b@x.io", Body: "two", CreatedAt: fixedNow}
	require.NoError(t, s.Save(ctx, older))
	require.NoError(t, s.Save(ctx, newer))
	require.NoError(t, s.MarkDelivered(ctx, "a"))

	msgs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "b", msgs[0].ID)
	assert.False(t, msgs[0].Delivered)
	assert.True(t, msgs[1].Delivered)
	assert.True(t, msgs[1].CreatedAt.Equal(older.CreatedAt))

	found, err := s.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)
}
