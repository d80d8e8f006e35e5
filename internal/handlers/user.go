package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velmor/go-auth-api/internal/handlers/dto"
	"github.com/velmor/go-auth-api/internal/models"
	"github.com/velmor/go-auth-api/internal/services"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// CreateUser создаёт пользователя без выдачи токена — в отличие от
// /auth/register клиент дальше логинится сам
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(c.Request.Context(), services.CreateUserRequest{
		Username: req.Username,
		Fullname: req.Fullname,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user.Public())
}

// ListUsers возвращает всех пользователей в публичном представлении
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := make([]models.PublicUser, len(users))
	for i := range users {
		result[i] = users[i].Public()
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}

// GetUser возвращает пользователя по ID
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// UpdateUser обновляет только переданные поля профиля
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("id"), services.UpdateUserRequest{
		Username: req.Username,
		Fullname: req.Fullname,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}

// DeleteUser удаляет пользователя по ID
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
