package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the authoritative player record. TotalScore is a denormalized
// cache of the sum of all the player's submissions; it is only ever written
// by the score service's recomputation, never by request handlers.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FirstName    string    `gorm:"size:50" json:"first_name"`
	LastName     string    `gorm:"size:50" json:"last_name"`
	PhoneNumber  *string   `gorm:"size:15" json:"phone_number,omitempty"`
	TotalScore   int       `gorm:"not null;default:0" json:"total_score"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Submissions []ScoreSubmission `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
