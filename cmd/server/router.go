package main

import (
	"github.com/gin-gonic/gin"

	"github.com/velmor/go-auth-api/internal/handlers"
	"github.com/velmor/go-auth-api/internal/middleware"
	"github.com/velmor/go-auth-api/pkg/auth"
)

// APIEndpoints — явная таблица маршрутов сервиса.
func APIEndpoints(r *gin.Engine, authH *handlers.AuthHandler, userH *handlers.UserHandler, jwtMgr *auth.JWTManager) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.GET("/google", authH.GoogleLogin)
		authGroup.GET("/google/callback", authH.GoogleCallback)
		authGroup.GET("/me", middleware.AuthMiddleware(jwtMgr), authH.Me)
	}

	// User CRUD endpoints; создание открыто, остальное под токеном
	r.POST("/users", userH.CreateUser)
	users := r.Group("/users", middleware.AuthMiddleware(jwtMgr))
	{
		users.GET("", userH.ListUsers)
		users.GET("/:id", userH.GetUser)
		users.PATCH("/:id", userH.UpdateUser)
		users.DELETE("/:id", userH.DeleteUser)
	}
}
