package dto

// SubmitScoreInput only carries score and game level; the player and
// timestamp are set server-side.
type SubmitScoreInput struct {
	Score     int    `json:"score" binding:"required,gt=0"`
	GameLevel string `json:"game_level"`
}
