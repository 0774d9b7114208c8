package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bikinibottom/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(m *Manager) *fiber.App {
	app := fiber.New()
	app.Get("/login", func(c *fiber.Ctx) error {
		return m.Login(c, models.PublicUser{ID: 1, Username: "spongebob", JellyfishCount: 42})
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		user, err := m.Current(c)
		if err != nil {
			return err
		}
		if user == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.JSON(user)
	})
	app.Get("/refresh", func(c *fiber.Ctx) error {
		return m.Refresh(c, models.PublicUser{ID: 1, Username: "spongebob", JellyfishCount: 43})
	})
	app.Get("/logout", func(c *fiber.Ctx) error {
		return m.Destroy(c)
	})
	return app
}

func doGet(t *testing.T, app *fiber.App, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == DefaultCookieName {
			return c
		}
	}
	return nil
}

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager(Config{})
	app := newTestApp(m)

	// no cookie, no session
	resp := doGet(t, app, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))

	resp = doGet(t, app, "/login", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)

	resp = doGet(t, app, "/me", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user models.PublicUser
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	resp.Body.Close()
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, 42, user.JellyfishCount)

	resp = doGet(t, app, "/refresh", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doGet(t, app, "/me", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	resp.Body.Close()
	assert.Equal(t, 43, user.JellyfishCount)

	resp = doGet(t, app, "/logout", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the old token no longer maps to anything
	resp = doGet(t, app, "/me", cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestManager_UnknownTokenIsUnauthenticated(t *testing.T) {
	m := NewManager(Config{})
	app := newTestApp(m)

	resp := doGet(t, app, "/me", &http.Cookie{Name: DefaultCookieName, Value: "made-up-token"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestManager_LoginIssuesNewToken(t *testing.T) {
	m := NewManager(Config{})
	app := newTestApp(m)

	first := sessionCookie(doGet(t, app, "/login", nil))
	require.NotNil(t, first)
	second := sessionCookie(doGet(t, app, "/login", first))
	require.NotNil(t, second)
	assert.NotEqual(t, first.Value, second.Value)

	resp := doGet(t, app, "/me", first)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestManager_AbsoluteExpiry(t *testing.T) {
	m := NewManager(Config{TTL: time.Hour})
	start := time.Now()
	m.now = func() time.Time { return start }
	app := newTestApp(m)

	cookie := sessionCookie(doGet(t, app, "/login", nil))
	require.NotNil(t, cookie)

	// activity does not extend the lifetime
	m.now = func() time.Time { return start.Add(50 * time.Minute) }
	require.Equal(t, http.StatusOK, doGet(t, app, "/refresh", cookie).StatusCode)
	require.Equal(t, http.StatusOK, doGet(t, app, "/me", cookie).StatusCode)

	m.now = func() time.Time { return start.Add(61 * time.Minute) }
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/me", cookie).StatusCode)

	// and it stays gone once destroyed
	m.now = func() time.Time { return start }
	assert.Equal(t, http.StatusUnauthorized, doGet(t, app, "/me", cookie).StatusCode)
}

func TestManager_DestroyWithoutSession(t *testing.T) {
	m := NewManager(Config{})
	app := newTestApp(m)

	resp := doGet(t, app, "/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
