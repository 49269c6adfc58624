package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/labstack/gommon/random"
)

// Config contains all runtime configuration for the service. It is loaded
// once in main and injected into the components that need it; nothing else
// reads the environment.
type Config struct {
	Port        int
	DatabaseURL string
	DBMaxConns  int

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string

	// Base URL prefixed to invite codes when building self-service join links.
	InviteLinkBase string

	// Daraja (M-Pesa) credentials. The shipped client is a stub but the
	// credentials are threaded through so a real integration slots in.
	DarajaConsumerKey    string
	DarajaConsumerSecret string
	DarajaShortCode      string
	DarajaCallbackURL    string

	// Contact form recipient and mail credentials.
	ContactRecipient string
	MailUser         string
	MailPassword     string
}

// Load reads configuration from environment variables with development
// defaults. DATABASE_URL is the only hard requirement.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getInt("PORT", 8080),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  getInt("DB_MAX_CONNS", 10),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 30*24*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		MinioBucket:    getEnv("MINIO_BUCKET", "rentora-uploads"),

		InviteLinkBase: getEnv("INVITE_LINK_BASE", "http://localhost:5173/join"),

		DarajaConsumerKey:    os.Getenv("DARAJA_CONSUMER_KEY"),
		DarajaConsumerSecret: os.Getenv("DARAJA_CONSUMER_SECRET"),
		DarajaShortCode:      getEnv("DARAJA_SHORT_CODE", "174379"),
		DarajaCallbackURL:    getEnv("DARAJA_CALLBACK_URL", "http://localhost:8080/api/webhooks/daraja"),

		ContactRecipient: getEnv("CONTACT_RECIPIENT", "support@rentora.local"),
		MailUser:         os.Getenv("EMAIL_USER"),
		MailPassword:     os.Getenv("EMAIL_PASS"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.JWTSecret == "" {
		// Dev fallback only: tokens do not survive a restart.
		cfg.JWTSecret = random.String(32)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
