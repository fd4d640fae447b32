// Package config reads runtime settings from the environment.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ApplyMode selects how the apply panel behaves.
type ApplyMode string

const (
	// ApplyModeForm writes applications to the document store.
	ApplyModeForm ApplyMode = "form"
	// ApplyModeContact only shows the operator's contact address.
	ApplyModeContact ApplyMode = "contact"
)

// SMTPConfig holds the outbound mail transport.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

// Configured reports whether every transport credential is present.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Port != 0 && c.User != "" && c.Pass != ""
}

// StoreConfig is the document store location. It may be supplied as a
// single document through STORE_CONFIG or STORE_CONFIG_FILE.
type StoreConfig struct {
	URI      string `json:"uri" yaml:"uri"`
	Database string `json:"database" yaml:"database"`
	AppID    string `json:"appId" yaml:"appId"`
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                         string
	Environment                  string
	LogLevel                     string
	Store                        StoreConfig
	Timeout                      time.Duration
	AllowedOrigins               []string
	SessionSecret                []byte
	SessionSecretGenerated       bool
	SessionTTL                   time.Duration
	ApplyMode                    ApplyMode
	ContactEmail                 string
	SMTP                         SMTPConfig
	TelegramBotToken             string
	TelegramChatID               int64
	RedisAddr                    string
	RedisPassword                string
	MeilisearchHost              string
	MeilisearchAPIKey            string
	NotifyRetrySpec              string
	AdminPollInterval            time.Duration
	SiteBaseURL                  string
	FailedNotificationCollection string

	// Warnings collects non-fatal problems found while loading.
	Warnings []string
}

// StoreConfigured reports whether the application store can be reached.
func (c Config) StoreConfigured() bool {
	return c.Store.URI != ""
}

// ApplicationsCollection is the namespaced collection holding submissions.
func (c Config) ApplicationsCollection() string {
	return fmt.Sprintf("artifacts.%s.public.data.applications", c.Store.AppID)
}

// Load reads a .env file when present, then the environment, and returns a
// fully populated Config. Missing optional settings leave their feature
// inert and are reported in Warnings.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:        envOrDefault("HTTP_ADDR", ":8080"),
		Environment: envOrDefault("APP_ENV", "development"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		Store: StoreConfig{
			URI:      strings.TrimSpace(os.Getenv("MONGO_URI")),
			Database: envOrDefault("MONGO_DB", "livinglux"),
			AppID:    envOrDefault("APP_ID", "default-app-id"),
		},
		Timeout:                      durationOrDefault("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		AllowedOrigins:               parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		SessionTTL:                   durationOrDefault("SESSION_TTL", 24*time.Hour),
		ContactEmail:                 envOrDefault("CONTACT_EMAIL", "info@livinglux.lu"),
		TelegramBotToken:             strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		RedisAddr:                    strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:                os.Getenv("REDIS_PASSWORD"),
		MeilisearchHost:              strings.TrimSpace(os.Getenv("MEILISEARCH_HOST")),
		MeilisearchAPIKey:            os.Getenv("MEILISEARCH_API_KEY"),
		NotifyRetrySpec:              envOrDefault("NOTIFY_RETRY_SPEC", "@every 10m"),
		AdminPollInterval:            durationOrDefault("ADMIN_POLL_INTERVAL", 5*time.Second),
		SiteBaseURL:                  strings.TrimRight(strings.TrimSpace(os.Getenv("SITE_BASE_URL")), "/"),
		FailedNotificationCollection: envOrDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications"),
	}

	if err := cfg.applyStoreDocument(); err != nil {
		return Config{}, err
	}
	if !cfg.StoreConfigured() {
		cfg.warn("MONGO_URI is not set; application submission and admin review are disabled")
	}

	switch mode := ApplyMode(strings.ToLower(envOrDefault("APPLY_MODE", string(ApplyModeForm)))); mode {
	case ApplyModeForm, ApplyModeContact:
		cfg.ApplyMode = mode
	default:
		cfg.warn(fmt.Sprintf("unknown APPLY_MODE %q; using form", mode))
		cfg.ApplyMode = ApplyModeForm
	}

	if secret := strings.TrimSpace(os.Getenv("SESSION_SECRET")); secret != "" {
		cfg.SessionSecret = []byte(secret)
	} else {
		generated, err := randomSecret()
		if err != nil {
			return Config{}, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = generated
		cfg.SessionSecretGenerated = true
		cfg.warn("SESSION_SECRET is not set; sessions will not survive a restart")
	}

	cfg.SMTP = SMTPConfig{
		Host: strings.TrimSpace(os.Getenv("SMTP_HOST")),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: envOrDefault("FROM_EMAIL", "no-reply@livinglux.lu"),
		To:   envOrDefault("TO_EMAIL", "info@livinglux.lu"),
	}
	if raw := strings.TrimSpace(os.Getenv("SMTP_PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			cfg.warn(fmt.Sprintf("invalid SMTP_PORT %q", raw))
		} else {
			cfg.SMTP.Port = port
		}
	}
	if !cfg.SMTP.Configured() {
		cfg.warn("SMTP is not fully configured; outbound mail is disabled")
	}

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			cfg.warn(fmt.Sprintf("invalid TELEGRAM_CHAT_ID %q", raw))
		} else {
			cfg.TelegramChatID = chatID
		}
	}

	return cfg, nil
}

// applyStoreDocument overlays STORE_CONFIG (inline JSON) or
// STORE_CONFIG_FILE (YAML or JSON) onto the store settings.
func (c *Config) applyStoreDocument() error {
	var (
		doc    StoreConfig
		source string
	)
	if raw := strings.TrimSpace(os.Getenv("STORE_CONFIG")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			c.warn(fmt.Sprintf("STORE_CONFIG is not valid JSON: %v", err))
			return nil
		}
		source = "STORE_CONFIG"
	} else if path := strings.TrimSpace(os.Getenv("STORE_CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read store config %s: %w", path, err)
		}
		// YAML is a superset of JSON, so one decoder handles both.
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse store config %s: %w", path, err)
		}
		source = path
	} else {
		return nil
	}

	if doc.URI != "" {
		c.Store.URI = doc.URI
	}
	if doc.Database != "" {
		c.Store.Database = doc.Database
	}
	if doc.AppID != "" {
		c.Store.AppID = doc.AppID
	}
	if doc.URI == "" {
		c.warn(fmt.Sprintf("%s has no uri", source))
	}
	return nil
}

func (c *Config) warn(msg string) {
	c.Warnings = append(c.Warnings, msg)
}

func randomSecret() ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return []byte(hex.EncodeToString(buf)), nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
