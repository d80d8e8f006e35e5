package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velmor/go-auth-api/internal/handlers/dto"
	"github.com/velmor/go-auth-api/internal/logger"
	"github.com/velmor/go-auth-api/internal/middleware"
	"github.com/velmor/go-auth-api/internal/oauth"
	"github.com/velmor/go-auth-api/internal/services"
)

type AuthHandler struct {
	auth        *services.AuthService
	google      *oauth.GoogleProvider // nil, когда Google-логин выключен
	states      *oauth.StateStore
	frontendURL string
}

func NewAuthHandler(authSvc *services.AuthService, google *oauth.GoogleProvider, states *oauth.StateStore, frontendURL string) *AuthHandler {
	return &AuthHandler{auth: authSvc, google: google, states: states, frontendURL: frontendURL}
}

// Register создаёт пользователя и сразу выдаёт токен
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.auth.Register(c.Request.Context(), services.RegisterRequest{
		Username: req.Username,
		Fullname: req.Fullname,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login выдаёт JWT по локальным учётным данным
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), services.LoginRequest{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GoogleLogin уводит браузер на страницу согласия Google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "google login is disabled"})
		return
	}

	state, err := h.states.Issue(c.Request.Context())
	if err != nil {
		logger.Error("failed to issue oauth state", logger.ErrorField(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start google login"})
		return
	}

	c.Redirect(http.StatusFound, h.google.AuthCodeURL(state))
}

// GoogleCallback обменивает код авторизации на профиль и отправляет
// браузер на фронтенд с токеном в query-параметре. Токен проходит через
// адресную строку, поэтому фронтенд обязан сразу обменять его на сессию.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "google login is disabled"})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("google login rejected by provider", logger.String("error", errParam))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google authentication failed"})
		return
	}

	ok, err := h.states.Consume(c.Request.Context(), c.Query("state"))
	if err != nil {
		logger.Error("failed to consume oauth state", logger.ErrorField(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not finish google login"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired oauth state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	profile, err := h.google.FetchProfile(c.Request.Context(), code)
	if err != nil {
		logger.Warn("failed to fetch google profile", logger.ErrorField(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google authentication failed"})
		return
	}

	resp, err := h.auth.LoginWithGoogle(c.Request.Context(), profile)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL+"/auth/callback?token="+url.QueryEscape(resp.AccessToken))
}

// Me возвращает профиль владельца токена
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.auth.UserByID(c.Request.Context(), userID.String())
	if err != nil {
		// Токен валиден, но subject уже не существует — это 401;
		// остальное (например, отказ хранилища) — не проблема клиента.
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.Public())
}
