package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arenaplay/scoreboard/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

// LeaderboardKey is the sorted set holding the single global ranking space.
const LeaderboardKey = "global_leaderboard"

// RankedEntry is one member of the leaderboard with its 1-based rank.
type RankedEntry struct {
	Rank   int
	UserID string
	Score  int
}

// Standing is a single member's rank and score.
type Standing struct {
	Rank  int
	Score int
}

// RankingCache keeps users ordered by score so rank and top-N queries never
// scan the authoritative store. The Redis implementation rides on a sorted
// set, which answers both in logarithmic time.
//
// The cache holds nothing but user id and score; display attributes are
// always re-fetched from the user store at query time.
type RankingCache interface {
	Upsert(ctx context.Context, userID string, score int) error
	// TopN returns up to count entries, highest score first. count <= 0
	// yields an empty result. Tie order between equal scores is stable but
	// implementation-defined.
	TopN(ctx context.Context, count int) ([]RankedEntry, error)
	// RankAndScore returns nil (not an error) when the user has no entry,
	// i.e. has never submitted a score.
	RankAndScore(ctx context.Context, userID string) (*Standing, error)
}

type redisRankingCache struct {
	rdb *redis.Client
	key string
}

// NewRankingCache wraps a Redis client. A nil client is tolerated: upserts
// and queries then fail with apperror.ErrCacheUnavailable and the caller
// decides how to degrade.
func NewRankingCache(rdb *redis.Client) RankingCache {
	return &redisRankingCache{rdb: rdb, key: LeaderboardKey}
}

func (c *redisRankingCache) Upsert(ctx context.Context, userID string, score int) error {
	if c.rdb == nil {
		return apperror.ErrCacheUnavailable
	}

	err := c.rdb.ZAdd(ctx, c.key, redis.Z{
		Score:  float64(score),
		Member: userID,
	}).Err()
	if err != nil {
		return fmt.Errorf("%w: zadd: %v", apperror.ErrCacheUnavailable, err)
	}
	return nil
}

func (c *redisRankingCache) TopN(ctx context.Context, count int) ([]RankedEntry, error) {
	if count <= 0 {
		return []RankedEntry{}, nil
	}
	if c.rdb == nil {
		return nil, apperror.ErrCacheUnavailable
	}

	members, err := c.rdb.ZRevRangeWithScores(ctx, c.key, 0, int64(count-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: zrevrange: %v", apperror.ErrCacheUnavailable, err)
	}

	entries := make([]RankedEntry, 0, len(members))
	for i, member := range members {
		userID, _ := member.Member.(string)
		entries = append(entries, RankedEntry{
			Rank:   i + 1,
			UserID: userID,
			Score:  int(member.Score),
		})
	}
	return entries, nil
}

func (c *redisRankingCache) RankAndScore(ctx context.Context, userID string) (*Standing, error) {
	if c.rdb == nil {
		return nil, apperror.ErrCacheUnavailable
	}

	rank, err := c.rdb.ZRevRank(ctx, c.key, userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: zrevrank: %v", apperror.ErrCacheUnavailable, err)
	}

	score, err := c.rdb.ZScore(ctx, c.key, userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// Member removed between the two calls.
			return nil, nil
		}
		return nil, fmt.Errorf("%w: zscore: %v", apperror.ErrCacheUnavailable, err)
	}

	return &Standing{
		Rank:  int(rank) + 1,
		Score: int(score),
	}, nil
}
