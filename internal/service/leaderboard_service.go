package service

import (
	"context"
	"fmt"

	"github.com/arenaplay/scoreboard/internal/dto"
	"github.com/arenaplay/scoreboard/internal/repository"
	"github.com/google/uuid"
)

// Placeholder attributes for ranked users whose row has vanished from the
// authoritative store (deleted after being cached). One missing user must
// not fail the whole leaderboard.
const (
	unknownUsername  = "Unknown User"
	unknownFirstName = ""
)

// RequesterInfo identifies the authenticated caller of GetLeaderboard.
// Username and FirstName come from the caller's token claims, so the
// requester entry never costs an extra attribute fetch.
type RequesterInfo struct {
	ID        uuid.UUID
	Username  string
	FirstName string
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, requester *RequesterInfo) (*dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	ranking repository.RankingCache
	users   repository.UserRepository
	size    int
}

func NewLeaderboardService(ranking repository.RankingCache, users repository.UserRepository, size int) LeaderboardService {
	if size <= 0 {
		size = 100
	}
	return &leaderboardService{
		ranking: ranking,
		users:   users,
		size:    size,
	}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, requester *RequesterInfo) (*dto.LeaderboardResponse, error) {
	ranked, err := s.ranking.TopN(ctx, s.size)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(ranked))
	for _, entry := range ranked {
		id, err := uuid.Parse(entry.UserID)
		if err != nil {
			return nil, fmt.Errorf("corrupt ranking cache member %q: %w", entry.UserID, err)
		}
		ids = append(ids, id)
	}

	// One batched query for exactly the ids in the top list.
	attrs, err := s.users.GetAttributes(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard attributes: %w", err)
	}

	entries := make([]dto.LeaderboardEntry, 0, len(ranked))
	for i, entry := range ranked {
		username, firstName := unknownUsername, unknownFirstName
		if a, ok := attrs[ids[i]]; ok {
			username, firstName = a.Username, a.FirstName
		}
		entries = append(entries, dto.LeaderboardEntry{
			Rank:      entry.Rank,
			UserID:    entry.UserID,
			Username:  username,
			FirstName: firstName,
			Score:     entry.Score,
		})
	}

	response := &dto.LeaderboardResponse{
		GlobalLeaderboard: entries,
	}

	if requester != nil {
		standing, err := s.ranking.RankAndScore(ctx, requester.ID.String())
		if err != nil {
			return nil, err
		}
		if standing != nil {
			response.CurrentUserRank = &dto.LeaderboardEntry{
				Rank:      standing.Rank,
				UserID:    requester.ID.String(),
				Username:  requester.Username,
				FirstName: requester.FirstName,
				Score:     standing.Score,
			}
		}
	}

	return response, nil
}
