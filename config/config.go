// Package config loads notifier configuration from environment variables.
// Values are read once at program start into immutable structs; the CLIs
// validate eagerly and never touch the network on bad configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mazway/psi-notify/pkg/timeutil"
)

// Config holds all notifier configuration.
type Config struct {
	// Shared settings
	App AppConfig

	// SMTP session
	SMTP SMTPConfig

	// Email addressing
	Email EmailConfig

	// Telegram Bot
	Telegram TelegramConfig
}

// AppConfig holds settings shared by both notifiers.
type AppConfig struct {
	// Timezone for report timestamps (default: Asia/Jakarta)
	Timezone string
	Location *time.Location

	// ZoneResolved is false when Timezone was unknown and a fallback won.
	ZoneResolved bool
}

// SMTPConfig holds the SMTP session settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// EmailConfig holds sender and recipient addresses.
type EmailConfig struct {
	From       string
	Recipients []string
}

// TelegramConfig holds Telegram Bot settings.
type TelegramConfig struct {
	// Bot token from @BotFather
	Token string

	// Target chat or channel ID
	ChatID string

	// BaseURL overrides the Bot API endpoint (tests, proxies)
	BaseURL string

	// Timeout for the single sendMessage call
	Timeout time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	tz := getEnv("TZ", timeutil.DefaultZone)
	loc, ok := timeutil.Resolve(tz)

	return &Config{
		App: AppConfig{
			Timezone:     tz,
			Location:     loc,
			ZoneResolved: ok,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
		},
		Email: EmailConfig{
			From:       getEnv("EMAIL_FROM", ""),
			Recipients: SplitRecipients(getEnv("EMAIL_TO", "")),
		},
		Telegram: TelegramConfig{
			Token:   getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:  getEnv("TELEGRAM_CHAT_ID", ""),
			BaseURL: getEnv("TELEGRAM_API_URL", ""),
			Timeout: getEnvDuration("TELEGRAM_TIMEOUT", 20*time.Second),
		},
	}
}

// SplitRecipients parses a comma-separated address list, trimming
// whitespace and dropping empty entries. Order and duplicates are kept.
func SplitRecipients(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ValidateEmail checks everything the email notifier needs before dialing.
func (c *Config) ValidateEmail() error {
	var errs []string

	if c.SMTP.Host == "" {
		errs = append(errs, "SMTP_HOST is required")
	}
	if c.Email.From == "" {
		errs = append(errs, "EMAIL_FROM is required")
	}
	if len(c.Email.Recipients) == 0 {
		errs = append(errs, "no recipients: set EMAIL_TO or pass --to")
	}

	if len(errs) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidateTelegram checks everything the Telegram notifier needs before
// the API call.
func (c *Config) ValidateTelegram() error {
	var errs []string

	if c.Telegram.Token == "" {
		errs = append(errs, "TELEGRAM_BOT_TOKEN is required")
	}
	if c.Telegram.ChatID == "" {
		errs = append(errs, "TELEGRAM_CHAT_ID is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("missing configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
