package dto

// LeaderboardEntry is one display-ready leaderboard row: ranking data from
// the cache merged with attributes from the user store.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"` // 1-based
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	Score     int    `json:"score"`
}

// LeaderboardResponse carries the top entries plus the requesting user's own
// standing. CurrentUserRank is null for anonymous requests and for users who
// have never submitted a score; it may duplicate a top entry when the
// requester is also in the top list.
type LeaderboardResponse struct {
	GlobalLeaderboard []LeaderboardEntry `json:"global_leaderboard"`
	CurrentUserRank   *LeaderboardEntry  `json:"current_user_rank"`
}
