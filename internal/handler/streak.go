package handler

import (
	"net/http"
	"strconv"

	"achiever/internal/model"
	"achiever/internal/service"

	"github.com/gin-gonic/gin"
)

type StreakHandler struct {
	streaks *service.StreakService
}

func NewStreakHandler(streaks *service.StreakService) *StreakHandler {
	return &StreakHandler{streaks: streaks}
}

// GET /api/streaks
func (h *StreakHandler) List(c *gin.Context) {
	streaks, err := h.streaks.ActiveStreaks(c.Request.Context(), ownerID(c))
	if err != nil {
		fail(c, err, "failed to fetch streaks")
		return
	}
	if streaks == nil {
		streaks = []model.Streak{}
	}
	c.JSON(http.StatusOK, streaks)
}

// POST /api/streaks/check-in
func (h *StreakHandler) CheckIn(c *gin.Context) {
	var req model.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	streak, err := h.streaks.CheckIn(c.Request.Context(), ownerID(c), req.HabitTitle)
	if err != nil {
		fail(c, err, "failed to check in streak")
		return
	}
	c.JSON(http.StatusOK, streak)
}

// POST /api/streaks/:id/break
func (h *StreakHandler) Break(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.streaks.Break(c.Request.Context(), ownerID(c), id); err != nil {
		fail(c, err, "failed to break streak")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "streak broken, start again tomorrow"})
}

// GET /api/cookie-jar
func (h *StreakHandler) CookieJar(c *gin.Context) {
	jar, err := h.streaks.CookieJar(c.Request.Context(), ownerID(c))
	if err != nil {
		fail(c, err, "failed to fetch cookie jar")
		return
	}
	c.JSON(http.StatusOK, jar)
}

// POST /api/cookie-jar
func (h *StreakHandler) AddAward(c *gin.Context) {
	var req model.CreateAwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	award, err := h.streaks.AddAward(c.Request.Context(), ownerID(c), req)
	if err != nil {
		fail(c, err, "failed to add to cookie jar")
		return
	}
	c.JSON(http.StatusCreated, award)
}
