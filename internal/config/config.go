// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// DB
	DBDriver  string // "postgres" or "sqlite"
	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string
	DBPath    string // sqlite only

	// RAWG catalog API
	RawgAPIURL string
	RawgAPIKey string
	MatureTags []string

	// Sync
	SyncEnabled bool

	// SMTP (release emails; disabled when host is empty)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	SMTPFromName string

	// Auth
	SessionTTLHours   int
	RememberMeTTLDays int

	// CORS
	AllowedOrigins string
}

func Load() *Config {
	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load() // optional .env for local
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	matureTags := strings.Split(getEnv("RAWG_MATURE_TAGS", "nsfw"), ",")
	for i := range matureTags {
		matureTags[i] = strings.TrimSpace(matureTags[i])
	}

	return &Config{
		ServerPort: port,

		DBDriver:  getEnv("DB_DRIVER", "postgres"),
		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    getEnv("DB_PASS", "postgres"),
		DBName:    getEnv("DB_NAME", "game_tracker_db"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),
		DBPath:    getEnv("DB_PATH", "data/game_tracker.db"),

		RawgAPIURL: getEnv("RAWG_API_URL", "https://api.rawg.io/api"),
		RawgAPIKey: os.Getenv("RAWG_API_KEY"),
		MatureTags: matureTags,

		SyncEnabled: getEnv("SYNC_ENABLED", "true") == "true",

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "Game Release Tracker"),

		SessionTTLHours:   getEnvInt("SESSION_TTL_HOURS", 24),
		RememberMeTTLDays: getEnvInt("REMEMBER_ME_TTL_DAYS", 30),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
