package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velmor/go-auth-api/internal/logger"
	"github.com/velmor/go-auth-api/internal/services"
)

// handleServiceError переводит ошибки сервисного слоя в HTTP-статусы.
func handleServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, services.ErrInvalidProfile):
		// Для OAuth-потока непригодный профиль — это неудачная аутентификация.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google authentication failed"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		logger.Error("unexpected service error", logger.ErrorField(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
