package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/velmor/go-auth-api/internal/config"
	"github.com/velmor/go-auth-api/internal/database"
	"github.com/velmor/go-auth-api/internal/handlers"
	"github.com/velmor/go-auth-api/internal/logger"
	"github.com/velmor/go-auth-api/internal/oauth"
	"github.com/velmor/go-auth-api/internal/services"
	"github.com/velmor/go-auth-api/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	AuthH      *handlers.AuthHandler
	UserH      *handlers.UserHandler
}

// NewServer — явная точка сборки: каждый компонент конструируется здесь
// и передаётся зависимостям через конструкторы.
func NewServer(cfg *config.Config) (*Server, error) {
	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("postgres connect failed: %w", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis connect failed: %w", err)
	}

	jwtMgr, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	userSvc := services.NewUserService(dbConn)
	authSvc := services.NewAuthService(userSvc, jwtMgr)

	// Google-логин включается явным флагом; без него маршруты отвечают 404.
	var google *oauth.GoogleProvider
	var states *oauth.StateStore
	if cfg.GoogleEnabled {
		google = oauth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL)
		states = oauth.NewStateStore(rdb, oauth.DefaultStateTTL)
		logger.Info("google login enabled", logger.String("callback", cfg.GoogleCallbackURL))
	} else {
		logger.Info("google login disabled")
	}

	authH := handlers.NewAuthHandler(authSvc, google, states, cfg.FrontendURL)
	userH := handlers.NewUserHandler(userSvc)

	router := gin.Default()
	APIEndpoints(router, authH, userH, jwtMgr)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		AuthH:      authH,
		UserH:      userH,
	}, nil
}

func (s *Server) Run(port string) error {
	logger.Info("server starting", logger.String("port", port))
	return s.Router.Run(":" + port)
}
