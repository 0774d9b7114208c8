// Package session keeps the logged-in user's redacted snapshot in a
// server-side session addressed by an opaque cookie token.
package session

import (
	"fmt"
	"time"

	"bikinibottom/internal/models"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	// DefaultCookieName names the session cookie when Config leaves it empty.
	DefaultCookieName = "bb_session"
	// DefaultTTL is the absolute lifetime of a session.
	DefaultTTL = 24 * time.Hour

	keyUser     = "user"
	keyIssuedAt = "issued_at"
)

// Config holds the session settings.
type Config struct {
	CookieName   string
	TTL          time.Duration
	CookieSecure bool
	// Storage defaults to fiber's in-memory storage when nil.
	Storage fiber.Storage
}

// Manager issues, reads, refreshes and destroys sessions.
type Manager struct {
	store *fibersession.Store
	ttl   time.Duration
	now   func() time.Time
}

// NewManager creates a Manager backed by a fiber session store.
func NewManager(cfg Config) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	store := fibersession.New(fibersession.Config{
		Expiration:     cfg.TTL,
		Storage:        cfg.Storage,
		KeyLookup:      "cookie:" + cfg.CookieName,
		CookiePath:     "/",
		CookieSecure:   cfg.CookieSecure,
		CookieHTTPOnly: true,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		KeyGenerator:   uuid.NewString,
	})
	store.RegisterType(models.PublicUser{})

	return &Manager{
		store: store,
		ttl:   cfg.TTL,
		now:   time.Now,
	}
}

// Login starts a new session for user under a fresh token.
func (m *Manager) Login(c *fiber.Ctx, user models.PublicUser) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Regenerate(); err != nil {
		return fmt.Errorf("failed to regenerate session: %w", err)
	}
	sess.Set(keyUser, user)
	sess.Set(keyIssuedAt, m.now().Unix())
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Current returns the user held by the request's session, or nil when the
// request carries no live session. Expired sessions are destroyed.
func (m *Manager) Current(c *fiber.Ctx) (*models.PublicUser, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess.Fresh() {
		return nil, nil
	}

	user, ok := sess.Get(keyUser).(models.PublicUser)
	if !ok {
		return nil, nil
	}
	if m.remaining(sess) <= 0 {
		if err := sess.Destroy(); err != nil {
			return nil, fmt.Errorf("failed to destroy expired session: %w", err)
		}
		return nil, nil
	}
	return &user, nil
}

// Refresh overwrites the session's snapshot without extending its lifetime.
// It does nothing when the request has no live session.
func (m *Manager) Refresh(c *fiber.Ctx, user models.PublicUser) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if sess.Fresh() {
		return nil
	}
	left := m.remaining(sess)
	if left <= 0 {
		return sess.Destroy()
	}
	sess.Set(keyUser, user)
	sess.SetExpiry(left)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Destroy removes the session and clears the cookie. It succeeds when there
// was no session.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if err := sess.Destroy(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (m *Manager) remaining(sess *fibersession.Session) time.Duration {
	issuedAt, ok := sess.Get(keyIssuedAt).(int64)
	if !ok {
		return 0
	}
	return time.Unix(issuedAt, 0).Add(m.ttl).Sub(m.now())
}
