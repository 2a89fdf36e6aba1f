package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DBHost string
	DBUser string
	DBPass string
	DBName string
	DBPort string

	RedisURL string

	JWTSecret string
	JWTTTL    time.Duration

	LeaderboardSize     int
	RateLimitSubmit     time.Duration
	RankingSyncInterval time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: os.Getenv("DB_PASS"),
		DBName: getEnv("DB_NAME", "scoreboard"),
		DBPort: getEnv("DB_PORT", "5432"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),
	}

	ttlMinutes, err := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_MINUTES: %w", err)
	}
	cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute

	cfg.LeaderboardSize, err = strconv.Atoi(getEnv("LEADERBOARD_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_SIZE: %w", err)
	}

	cfg.RateLimitSubmit, err = time.ParseDuration(getEnv("RATE_LIMIT_SUBMIT", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_SUBMIT: %w", err)
	}

	cfg.RankingSyncInterval, err = time.ParseDuration(getEnv("RANKING_SYNC_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RANKING_SYNC_INTERVAL: %w", err)
	}

	return cfg, nil
}

// DSN builds the Postgres connection string for GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort,
	)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
