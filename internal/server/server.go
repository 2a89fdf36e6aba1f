package server

import (
	"context"
	"strings"
	"time"

	"github.com/arenaplay/scoreboard/internal/config"
	"github.com/arenaplay/scoreboard/internal/handler"
	"github.com/arenaplay/scoreboard/internal/middleware"
	"github.com/arenaplay/scoreboard/internal/repository"
	"github.com/arenaplay/scoreboard/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	rankingCache := repository.NewRankingCache(redisClient)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := handler.NewAuthHandler(authSvc)

	scoreSvc := service.NewScoreService(submissionRepo, userRepo, rankingCache, redisClient, service.ScoreConfig{
		RateLimitSubmit:     cfg.RateLimitSubmit,
		RankingSyncInterval: cfg.RankingSyncInterval,
	})
	scoreHandler := handler.NewScoreHandler(scoreSvc)

	leaderboardSvc := service.NewLeaderboardService(rankingCache, userRepo, cfg.LeaderboardSize)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)

	if redisClient != nil {
		go scoreSvc.StartRankingSyncWorker(context.Background())
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Publicly readable; a valid token additionally yields the caller's
	// own rank entry.
	api.GET("/leaderboard", authMiddleware.OptionalAuth(), leaderboardHandler.GetLeaderboard)

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/scores", scoreHandler.SubmitScore)
		protected.GET("/scores/me", scoreHandler.GetMySubmissions)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
