package repository

import (
	"context"

	"github.com/arenaplay/scoreboard/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerAttributes is the display projection of a user, fetched in batch
// for leaderboard rendering.
type PlayerAttributes struct {
	ID        uuid.UUID
	Username  string
	FirstName string
}

// PlayerTotal pairs a user with their authoritative total, used when
// rebuilding the ranking cache from the database.
type PlayerTotal struct {
	ID         uuid.UUID
	TotalScore int
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// UpdateTotalScore writes only the total_score column of one row.
	// It must stay a targeted column write: GORM hooks on User are skipped,
	// so the recomputation that calls it can never retrigger itself through
	// a model callback.
	UpdateTotalScore(ctx context.Context, id uuid.UUID, total int) error
	// GetAttributes batch-fetches display attributes for the given ids in a
	// single query.
	GetAttributes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]PlayerAttributes, error)
	ListTotals(ctx context.Context) ([]PlayerTotal, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateTotalScore(ctx context.Context, id uuid.UUID, total int) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumn("total_score", total).Error
}

func (r *userRepository) GetAttributes(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]PlayerAttributes, error) {
	attrs := make(map[uuid.UUID]PlayerAttributes, len(ids))
	if len(ids) == 0 {
		return attrs, nil
	}

	var rows []PlayerAttributes
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("id", "username", "first_name").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		attrs[row.ID] = row
	}
	return attrs, nil
}

func (r *userRepository) ListTotals(ctx context.Context) ([]PlayerTotal, error) {
	var totals []PlayerTotal
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("id", "total_score").
		Find(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
