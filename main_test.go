package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikinibottom/internal/config"
	"bikinibottom/internal/database"
	"bikinibottom/internal/models"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	v := viper.New()
	v.Set("DATABASE_DSN", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	return cfg
}

func TestSetupApp_SeedsAndServes(t *testing.T) {
	cfg := newTestConfig(t)
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	require.NoError(t, err)
	defer database.Close(db)

	app, err := setupApp(cfg, db, nil, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	// health check
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// landing page
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Welcome to Bikini Bottom Portal")

	// a seeded resident can log in
	form := url.Values{"username": {"spongebob"}, "password": {"pineapple123"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/profile?success="))

	req = httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("Accept", "application/json")
	for _, c := range resp.Cookies() {
		req.AddCookie(c)
	}
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "SpongeBob SquarePants", profile["full_name"])
	assert.Equal(t, float64(42), profile["jellyfish_count"])
	assert.NotContains(t, profile, "password")
}

func TestSetupApp_SeedRunsOnce(t *testing.T) {
	cfg := newTestConfig(t)
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	require.NoError(t, err)
	defer database.Close(db)

	_, err = setupApp(cfg, db, nil, nil)
	require.NoError(t, err)
	_, err = setupApp(cfg, db, nil, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
