package repository

import (
	"context"

	"github.com/arenaplay/scoreboard/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionRepository is the append-only score ledger. Submissions are the
// source of truth for player totals; nothing here updates or deletes rows.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.ScoreSubmission) error
	SumScores(ctx context.Context, playerID uuid.UUID) (int, error)
	FindByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]model.ScoreSubmission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.ScoreSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepository) SumScores(ctx context.Context, playerID uuid.UUID) (int, error) {
	var total int
	err := r.db.WithContext(ctx).
		Model(&model.ScoreSubmission{}).
		Select("COALESCE(SUM(score), 0)").
		Where("player_id = ?", playerID).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *submissionRepository) FindByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]model.ScoreSubmission, error) {
	var submissions []model.ScoreSubmission
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("score DESC, created_at ASC").
		Limit(limit).
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}
