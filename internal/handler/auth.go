package handler

import (
	"net/http"

	"achiever/internal/logger"
	"achiever/internal/middleware"
	"achiever/internal/model"
	"achiever/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *service.AuthService
	secret []byte
}

func NewAuthHandler(auth *service.AuthService, secret []byte) *AuthHandler {
	return &AuthHandler{auth: auth, secret: secret}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	logger.Info("login.ok", "uid", u.ID, "name", u.Name)

	token, err := middleware.IssueToken(h.secret, u.ID, u.Name)
	if err != nil {
		fail(c, err, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{Token: token, User: *u})
}
