package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is loaded from the environment (optionally seeded by a .env file in
// main). Every field has a default suitable for local development except the
// admin secret, which main refuses to run without.
type Config struct {
	Addr        string
	LogLevel    string
	CORSOrigins []string

	// Store selects persistence: "file" (default) or "postgres".
	Store    string
	DataFile string

	AdminSecret    string
	AdminJWTSecret string

	MaxUploadBytes int64

	Pg   Pg
	SMTP SMTP
}

type Pg struct {
	User     string
	Password string
	Host     string
	Port     string
	Dbname   string
}

// SMTP configures the contact-notification mailer. Disabled when Host or
// Recipient is empty.
type SMTP struct {
	Host      string
	Port      string
	Username  string
	Password  string
	Sender    string
	Recipient string
}

func Load() *Config {
	cfg := &Config{
		Addr:           getenv("ADDR", ":8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		CORSOrigins:    splitList(getenv("CORS_ORIGINS", "*")),
		Store:          getenv("STORE", "file"),
		DataFile:       getenv("DATA_FILE", "data.json"),
		AdminSecret:    os.Getenv("ADMIN_SECRET"),
		AdminJWTSecret: os.Getenv("ADMIN_JWT_SECRET"),
		MaxUploadBytes: getenvInt64("MAX_UPLOAD_BYTES", 5<<20),
		Pg: Pg{
			User:     strings.TrimSpace(os.Getenv("user")),
			Password: strings.TrimSpace(os.Getenv("password")),
			Host:     strings.TrimSpace(os.Getenv("host")),
			Port:     strings.TrimSpace(os.Getenv("port")),
			Dbname:   strings.TrimSpace(os.Getenv("dbname")),
		},
		SMTP: SMTP{
			Host:      os.Getenv("SMTP_HOST"),
			Port:      getenv("SMTP_PORT", "587"),
			Username:  os.Getenv("SMTP_USERNAME"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			Sender:    getenv("SMTP_SENDER", "Gram Panchayat"),
			Recipient: os.Getenv("CONTACT_RECIPIENT"),
		},
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
