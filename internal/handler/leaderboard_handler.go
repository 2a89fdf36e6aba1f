package handler

import (
	"net/http"

	"github.com/arenaplay/scoreboard/internal/service"
	"github.com/arenaplay/scoreboard/pkg/response"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	service service.LeaderboardService
}

func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// GetLeaderboard returns the global top list. Authenticated callers also
// receive their own rank entry; their display attributes come from the
// token claims set by the optional auth middleware.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var requester *service.RequesterInfo
	if userID, err := response.GetUserID(c); err == nil {
		requester = &service.RequesterInfo{
			ID:        userID,
			Username:  response.GetClaimString(c, "username"),
			FirstName: response.GetClaimString(c, "first_name"),
		}
	}

	leaderboard, err := h.service.GetLeaderboard(c.Request.Context(), requester)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}
