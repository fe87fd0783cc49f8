package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/aman-churiwal/faucet-service/internal/config"
	"github.com/aman-churiwal/faucet-service/internal/handler"
	"github.com/aman-churiwal/faucet-service/internal/middleware"
	"github.com/aman-churiwal/faucet-service/internal/ratelimit"
	"github.com/aman-churiwal/faucet-service/internal/repository"
	"github.com/aman-churiwal/faucet-service/internal/service"
	"github.com/aman-churiwal/faucet-service/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	router           *gin.Engine
	config           *config.Config
	redis            *storage.RedisClient
	postgres         *storage.Postgres
	claimHandler     *handler.ClaimHandler
	authHandler      *handler.AuthHandler
	analyticsHandler *handler.AnalyticsHandler
	authService      *service.AuthService
	httpServer       *http.Server
}

func New(cfg *config.Config, redis *storage.RedisClient, postgres *storage.Postgres) *Server {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Claim pipeline
	gate := ratelimit.NewClaimGate(redis)
	turnstile := service.NewTurnstileVerifier(cfg.Turnstile)
	accounts := service.NewAccountResolver(cfg.Account)
	engine := service.NewEngineClient(cfg.Faucet)
	claimService := service.NewClaimService(cfg, gate, turnstile, accounts, engine)

	// Claim audit log
	claimLogRepo := repository.NewClaimLogRepository(postgres)
	recorder := service.NewClaimRecorder(claimLogRepo, 1000)

	// Admin console
	userRepo := repository.NewUserRepository(postgres)
	authService := service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiryHours)
	analyticsService := service.NewAnalyticsService(claimLogRepo)

	s := &Server{
		router:           router,
		config:           cfg,
		redis:            redis,
		postgres:         postgres,
		claimHandler:     handler.NewClaimHandler(claimService, recorder),
		authHandler:      handler.NewAuthHandler(authService),
		analyticsHandler: handler.NewAnalyticsHandler(analyticsService),
		authService:      authService,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.Logger())
	s.router.Use(middleware.CORS("*"))
	s.router.Use(middleware.Metrics())
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/api/testnet-faucet/claim", s.claimHandler.Claim)

	s.router.POST("/admin/login", s.authHandler.Login)

	admin := s.router.Group("/admin")
	admin.Use(middleware.RequireAuth(s.authService))
	{
		admin.POST("/users", s.authHandler.Register)
		admin.GET("/claims", s.analyticsHandler.GetLogs)
		admin.GET("/claims/summary", s.analyticsHandler.GetSummary)
		admin.DELETE("/claims", s.analyticsHandler.Cleanup)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	redisHealthy := true
	if err := s.redis.Ping(c.Request.Context()); err != nil {
		redisHealthy = false
		log.Printf("Redis health check failed: %v", err)
	}

	dbHealthy := true
	if err := s.postgres.Ping(c.Request.Context()); err != nil {
		dbHealthy = false
		log.Printf("Database health check failed: %v", err)
	}

	status := "healthy"
	statusCode := http.StatusOK

	if !redisHealthy || !dbHealthy {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":    status,
		"service":   "testnet-faucet",
		"faucet":    s.config.Faucet.IsConfigured(),
		"timestamp": time.Now().Unix(),
		"checks": gin.H{
			"redis":    redisHealthy,
			"database": dbHealthy,
		},
	})
}

func (s *Server) Run(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	log.Printf("Starting faucet service on %s", addr)
	log.Printf("Environment: %s", s.config.Server.Environment)

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
