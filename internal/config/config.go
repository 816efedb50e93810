package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Defaults used when the environment leaves a setting empty.
const (
	DefaultDatabaseURL = "sqlite3://data/sozluk.db"
	DefaultPort        = 8080
	DefaultTimezone    = "Europe/Istanbul"
	DefaultDailyAt     = "00:05"
	DefaultPopular     = 5
)

// Config holds the application settings.
type Config struct {
	DatabaseURL   string
	Port          int
	AdminPassword string
	Location      *time.Location
	DailyAt       string
	TelegramToken string
	TelegramChat  int64
	PopularLimit  int
	LogLevel      logrus.Level
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL:   firstNonEmpty(getenv("DATABASE_URL"), getenv("VITE_DATABASE_URL"), DefaultDatabaseURL),
		Port:          DefaultPort,
		AdminPassword: getenv("ADMIN_PASSWORD"),
		DailyAt:       firstNonEmpty(getenv("DAILY_AT"), DefaultDailyAt),
		TelegramToken: getenv("TELEGRAM_BOT_TOKEN"),
		PopularLimit:  DefaultPopular,
		LogLevel:      logrus.InfoLevel,
	}

	if p := getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", p)
		}
		cfg.Port = port
	}

	loc, err := time.LoadLocation(firstNonEmpty(getenv("TIMEZONE"), DefaultTimezone))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if _, err := time.Parse("15:04", cfg.DailyAt); err != nil {
		return nil, fmt.Errorf("invalid DAILY_AT %q, expected HH:MM", cfg.DailyAt)
	}

	if chat := getenv("TELEGRAM_CHAT_ID"); chat != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(chat), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q", chat)
		}
		cfg.TelegramChat = id
	}

	if v := getenv("POPULAR_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid POPULAR_LIMIT %q", v)
		}
		cfg.PopularLimit = n
	}

	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

// AdminEnabled reports whether admin routes can be unlocked.
func (c *Config) AdminEnabled() bool {
	return c.AdminPassword != ""
}

// TelegramEnabled reports whether the daily word should be posted to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChat != 0
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
