package model

import (
	"time"

	"github.com/google/uuid"
)

// ScoreSubmission is one score event in the append-only ledger. Rows are
// created on submission and never mutated; totals are always recomputed
// from the full history.
type ScoreSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PlayerID  uuid.UUID `gorm:"type:uuid;index;not null" json:"player_id"`
	Player    User      `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE" json:"-"`
	Score     int       `gorm:"not null" json:"score"`
	GameLevel string    `gorm:"size:50;not null;default:'default_game'" json:"game_level"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
