package handler

import (
	"net/http"
	"strconv"

	"achiever/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	scores *service.ScoreService
	rating *service.RatingService
	tasks  *service.TaskService
}

func NewStatsHandler(scores *service.ScoreService, rating *service.RatingService, tasks *service.TaskService) *StatsHandler {
	return &StatsHandler{scores: scores, rating: rating, tasks: tasks}
}

// GET /api/stats/daily/:date
//
// Materializes due daily habits for the date, then recomputes the score and
// rating. Recomputation is idempotent, so refreshing this endpoint never
// inflates the rating.
func (h *StatsHandler) Daily(c *gin.Context) {
	owner := ownerID(c)
	date := c.Param("date")

	if err := h.tasks.MaterializeDailies(c.Request.Context(), owner, date); err != nil {
		fail(c, err, "failed to calculate daily score")
		return
	}
	stats, err := h.scores.ComputeDaily(c.Request.Context(), owner, date)
	if err != nil {
		fail(c, err, "failed to calculate daily score")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/stats/rating/current
func (h *StatsHandler) CurrentRating(c *gin.Context) {
	rating, err := h.rating.Current(c.Request.Context(), ownerID(c))
	if err != nil {
		fail(c, err, "failed to fetch rating")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": rating})
}

// GET /api/stats/rating/history?days=30
func (h *StatsHandler) RatingHistory(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	entries, err := h.rating.History(c.Request.Context(), ownerID(c), days)
	if err != nil {
		fail(c, err, "failed to fetch rating history")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /api/leaderboard
func (h *StatsHandler) Leaderboard(c *gin.Context) {
	board, err := h.rating.Leaderboard(c.Request.Context())
	if err != nil {
		fail(c, err, "failed to fetch leaderboard")
		return
	}
	c.JSON(http.StatusOK, board)
}
