package handler

import (
	"errors"
	"net/http"

	"achiever/internal/logger"
	"achiever/internal/service"
	"achiever/internal/store"

	"github.com/gin-gonic/gin"
)

// fail maps service errors onto HTTP statuses: validation 400, missing owned
// records 404, everything else a generic 500 so store details stay internal.
func fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		logger.Error(msg, "err", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

func ownerID(c *gin.Context) int {
	return c.GetInt("user_id")
}
