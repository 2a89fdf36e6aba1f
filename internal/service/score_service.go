package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/arenaplay/scoreboard/internal/dto"
	"github.com/arenaplay/scoreboard/internal/model"
	"github.com/arenaplay/scoreboard/internal/repository"
	"github.com/arenaplay/scoreboard/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultGameLevel = "default_game"

// recomputeKey marks a context in which a recomputation is already running.
// The flag lives on the context so it is scoped to one execution path and
// vanishes on return, with no release step to forget; it replaces the usual
// thread-local guard against a store hook retriggering the handler.
//
// The guard is per-context, not per-user: two genuinely concurrent
// submissions for the same player can both read the pre-update sum and the
// later write wins, leaving the total short until the next submission
// recomputes it. Accepted race; a per-user lock or transactional increment
// would be the upgrade path.
type recomputeKey struct{}

func markRecomputing(ctx context.Context) context.Context {
	return context.WithValue(ctx, recomputeKey{}, true)
}

func isRecomputing(ctx context.Context) bool {
	held, _ := ctx.Value(recomputeKey{}).(bool)
	return held
}

// ScoreService accepts score submissions and keeps each player's
// authoritative total and ranking cache entry in sync with the ledger.
type ScoreService interface {
	SubmitScore(ctx context.Context, playerID uuid.UUID, input dto.SubmitScoreInput) (*model.ScoreSubmission, error)
	// OnSubmissionCreated must be called exactly once per durably appended
	// submission. It recomputes the player's total from the full ledger,
	// writes it to the user row, and propagates it to the ranking cache.
	OnSubmissionCreated(ctx context.Context, submission *model.ScoreSubmission) error
	GetPlayerSubmissions(ctx context.Context, playerID uuid.UUID, limit int) ([]model.ScoreSubmission, error)
	SyncRankingCache(ctx context.Context) error
	StartRankingSyncWorker(ctx context.Context)
}

type scoreService struct {
	submissions repository.SubmissionRepository
	users       repository.UserRepository
	ranking     repository.RankingCache
	rdb         *redis.Client
	cfg         ScoreConfig
}

type ScoreConfig struct {
	RateLimitSubmit     time.Duration
	RankingSyncInterval time.Duration
}

func NewScoreService(
	submissions repository.SubmissionRepository,
	users repository.UserRepository,
	ranking repository.RankingCache,
	rdb *redis.Client,
	cfg ScoreConfig,
) ScoreService {
	return &scoreService{
		submissions: submissions,
		users:       users,
		ranking:     ranking,
		rdb:         rdb,
		cfg:         cfg,
	}
}

func (s *scoreService) SubmitScore(ctx context.Context, playerID uuid.UUID, input dto.SubmitScoreInput) (*model.ScoreSubmission, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, playerID, "submit_score", s.cfg.RateLimitSubmit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	gameLevel := input.GameLevel
	if gameLevel == "" {
		gameLevel = defaultGameLevel
	}

	submission := &model.ScoreSubmission{
		PlayerID:  playerID,
		Score:     input.Score,
		GameLevel: gameLevel,
	}

	if err := s.submissions.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("append submission: %w", err)
	}

	// The submission is durable at this point, so an aggregation failure
	// does not reject it; the next submission recomputes from the full
	// ledger and repairs whatever this pass left behind.
	if err := s.OnSubmissionCreated(ctx, submission); err != nil {
		log.Printf("aggregation failed for player %s (will self-heal on next submission): %v", playerID, err)
	}

	return submission, nil
}

func (s *scoreService) OnSubmissionCreated(ctx context.Context, submission *model.ScoreSubmission) error {
	if isRecomputing(ctx) {
		return nil
	}
	ctx = markRecomputing(ctx)

	// Full recomputation from the ledger, not an incremental add. It costs
	// a SUM over the player's history but makes every trigger self-healing
	// against earlier drift.
	newTotal, err := s.submissions.SumScores(ctx, submission.PlayerID)
	if err != nil {
		return fmt.Errorf("recompute total for player %s: %w", submission.PlayerID, err)
	}

	if err := s.users.UpdateTotalScore(ctx, submission.PlayerID, newTotal); err != nil {
		// Fail before propagate: the cache keeps its previous entry rather
		// than getting ahead of the authoritative store.
		return fmt.Errorf("update total for player %s: %w", submission.PlayerID, err)
	}

	if err := s.ranking.Upsert(ctx, submission.PlayerID.String(), newTotal); err != nil {
		// The authoritative total already advanced; the cache entry is
		// stale until the next trigger overwrites it.
		log.Printf("ranking cache upsert failed for player %s: %v", submission.PlayerID, err)
		return nil
	}

	log.Printf("leaderboard updated: player %s total score is now %d", submission.PlayerID, newTotal)
	return nil
}

func (s *scoreService) GetPlayerSubmissions(ctx context.Context, playerID uuid.UUID, limit int) ([]model.ScoreSubmission, error) {
	return s.submissions.FindByPlayer(ctx, playerID, limit)
}

// SyncRankingCache re-upserts every user's authoritative total into the
// sorted set. It heals a cold or flushed cache without waiting for each
// player's next submission.
func (s *scoreService) SyncRankingCache(ctx context.Context) error {
	totals, err := s.users.ListTotals(ctx)
	if err != nil {
		return fmt.Errorf("list totals: %w", err)
	}

	for _, t := range totals {
		if err := s.ranking.Upsert(ctx, t.ID.String(), t.TotalScore); err != nil {
			return fmt.Errorf("upsert player %s: %w", t.ID, err)
		}
	}

	log.Printf("ranking cache synced for %d players", len(totals))
	return nil
}

func (s *scoreService) StartRankingSyncWorker(ctx context.Context) {
	if err := s.SyncRankingCache(ctx); err != nil {
		log.Printf("initial ranking cache sync failed: %v", err)
	}

	interval := s.cfg.RankingSyncInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.SyncRankingCache(ctx); err != nil {
				log.Printf("ranking cache sync failed: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
