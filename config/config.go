package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration read at startup. Upload and
// rate-limit settings are handled by their own packages.
type Config struct {
	AppEnv         string
	ServerAddr     string
	DatabaseURL    string
	JWTSecret      string
	TrustedProxies []string
	AdminEmails    []string
	MigrationsPath string

	ReminderPollInterval time.Duration
	ReminderBatchSize    int
}

// Load reads configuration from environment variables, with an optional .env
// file for local development.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app_env", "production")
	v.SetDefault("server_addr", ":8080")
	v.SetDefault("migrations_path", "file://migrations")
	v.SetDefault("reminder_poll_interval", time.Minute)
	v.SetDefault("reminder_batch_size", 100)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		// Missing .env is fine; everything can come from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !strings.Contains(err.Error(), "no such file") {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv:               v.GetString("app_env"),
		ServerAddr:           v.GetString("server_addr"),
		DatabaseURL:          v.GetString("database_url"),
		JWTSecret:            v.GetString("jwt_secret"),
		TrustedProxies:       splitList(v.GetString("trusted_proxies")),
		AdminEmails:          splitList(v.GetString("admin_emails")),
		MigrationsPath:       v.GetString("migrations_path"),
		ReminderPollInterval: v.GetDuration("reminder_poll_interval"),
		ReminderBatchSize:    v.GetInt("reminder_batch_size"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be set and at least 32 characters")
	}

	return cfg, nil
}

// IsAdmin reports whether the email is on the administrator allow-list.
func (c *Config) IsAdmin(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
