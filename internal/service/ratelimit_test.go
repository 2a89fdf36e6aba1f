package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAndSetRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	userID := uuid.New()

	allowed, err := CheckAndSetRateLimit(ctx, client, userID, "submit_score", time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = CheckAndSetRateLimit(ctx, client, userID, "submit_score", time.Second)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Other users and other actions are unaffected.
	allowed, err = CheckAndSetRateLimit(ctx, client, uuid.New(), "submit_score", time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)

	mr.FastForward(2 * time.Second)

	allowed, err = CheckAndSetRateLimit(ctx, client, userID, "submit_score", time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckAndSetRateLimitWithoutRedis(t *testing.T) {
	allowed, err := CheckAndSetRateLimit(context.Background(), nil, uuid.New(), "submit_score", time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)
}
