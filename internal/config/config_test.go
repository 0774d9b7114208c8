package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "bikini_bottom.db", cfg.DatabaseDSN)
	assert.Equal(t, "bb_session", cfg.SessionCookieName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.SessionCookieSecure)
	assert.Empty(t, cfg.SessionRedisURL)
	assert.Empty(t, cfg.RabbitMQURL)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("APP_PORT", ":8081")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "host=127.0.0.1 user=postgres dbname=bikinibottom sslmode=disable")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("SESSION_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SessionCookieSecure)
	assert.Equal(t, "redis://localhost:6379/0", cfg.SessionRedisURL)
}

func TestFromViper_Invalid(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	_, err := FromViper(viper.New())
	assert.ErrorContains(t, err, "DATABASE_DRIVER")

	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SESSION_TTL", "0s")
	_, err = FromViper(viper.New())
	assert.ErrorContains(t, err, "SESSION_TTL")
}
