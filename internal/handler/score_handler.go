package handler

import (
	"net/http"
	"strconv"

	"github.com/arenaplay/scoreboard/internal/dto"
	"github.com/arenaplay/scoreboard/internal/service"
	"github.com/arenaplay/scoreboard/pkg/response"
	"github.com/arenaplay/scoreboard/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	service service.ScoreService
}

func NewScoreHandler(service service.ScoreService) *ScoreHandler {
	return &ScoreHandler{service: service}
}

// SubmitScore accepts a new score for the authenticated player.
func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	playerID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.SubmitScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	submission, err := h.service.SubmitScore(c.Request.Context(), playerID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": submission})
}

// GetMySubmissions lists the caller's own submissions, best score first.
func (h *ScoreHandler) GetMySubmissions(c *gin.Context) {
	playerID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	submissions, err := h.service.GetPlayerSubmissions(c.Request.Context(), playerID, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": submissions})
}
