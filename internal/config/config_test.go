package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DefaultTimezone, cfg.Location.String())
	assert.Equal(t, DefaultDailyAt, cfg.DailyAt)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, DefaultPopular, cfg.PopularLimit)
	assert.False(t, cfg.AdminEnabled())
	assert.False(t, cfg.TelegramEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"VITE_DATABASE_URL":  "postgres://u:p@host/db",
		"PORT":               "9090",
		"ADMIN_PASSWORD":     "tanpinar",
		"TIMEZONE":           "UTC",
		"DAILY_AT":           "07:30",
		"TELEGRAM_BOT_TOKEN": "token",
		"TELEGRAM_CHAT_ID":   "-100123",
		"LOG_LEVEL":          "debug",
		"POPULAR_LIMIT":      "10",
	}))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@host/db", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.AdminEnabled())
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "07:30", cfg.DailyAt)
	assert.Equal(t, int64(-100123), cfg.TelegramChat)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 10, cfg.PopularLimit)
}

func TestFromEnvPrefersDatabaseURL(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DATABASE_URL":      "postgres://primary/db",
		"VITE_DATABASE_URL": "postgres://fallback/db",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://primary/db", cfg.DatabaseURL)
}

func TestFromEnvInvalid(t *testing.T) {
	for name, m := range map[string]map[string]string{
		"port":     {"PORT": "abc"},
		"range":    {"PORT": "70000"},
		"timezone": {"TIMEZONE": "Mars/Olympus"},
		"daily":    {"DAILY_AT": "25h"},
		"chat":     {"TELEGRAM_CHAT_ID": "channel"},
		"level":    {"LOG_LEVEL": "loud"},
		"popular":  {"POPULAR_LIMIT": "0"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(env(m))
			assert.Error(t, err)
		})
	}
}
