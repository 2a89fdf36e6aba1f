package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 100, cfg.LeaderboardSize)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Minute, cfg.RankingSyncInterval)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LEADERBOARD_SIZE", "25")
	t.Setenv("JWT_TTL_MINUTES", "5")
	t.Setenv("RATE_LIMIT_SUBMIT", "250ms")
	t.Setenv("DB_NAME", "scoreboard_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 25, cfg.LeaderboardSize)
	assert.Equal(t, 5*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimitSubmit)
	assert.Contains(t, cfg.DSN(), "dbname=scoreboard_test")
}

func TestLoadRejectsInvalidDurations(t *testing.T) {
	t.Setenv("RATE_LIMIT_SUBMIT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}
