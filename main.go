package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ayush-Rawat-9/Charter-Party/config"
	"github.com/Ayush-Rawat-9/Charter-Party/extract"
	"github.com/Ayush-Rawat-9/Charter-Party/genai"
	"github.com/Ayush-Rawat-9/Charter-Party/handler"
	"github.com/Ayush-Rawat-9/Charter-Party/middleware"
	"github.com/Ayush-Rawat-9/Charter-Party/pkg/logger"
	"github.com/Ayush-Rawat-9/Charter-Party/render"
	"github.com/Ayush-Rawat-9/Charter-Party/service"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize services
	artifacts, err := service.NewArtifactStore(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize artifact store", "error", err)
		os.Exit(1)
	}
	if err := artifacts.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure artifact bucket", "error", err)
		os.Exit(1)
	}

	store := service.NewSessionStore(&cfg.Store)
	generator := genai.NewClient(&cfg.GenAI)
	pipeline := service.NewPipeline(store, generator)
	renderer := render.NewRenderer(&cfg.Render)
	extractor := extract.NewExtractor(&cfg.Extractor)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	sessionHandler := handler.NewSessionHandler(store, pipeline)
	exportHandler := handler.NewExportHandler(pipeline, store, artifacts, renderer, extractor)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(corsMiddleware())
	router.Use(middleware.RateLimit(100, time.Minute))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"sessions":  store.Count(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/sessions", sessionHandler.Create)
		protected.GET("/sessions", sessionHandler.List)
		protected.DELETE("/sessions/:id", sessionHandler.Delete)

		protected.POST("/sessions/:id/merge", sessionHandler.Merge)
		protected.GET("/sessions/:id/document", sessionHandler.Document)
		protected.POST("/sessions/:id/risks", sessionHandler.AnalyzeRisk)
		protected.POST("/sessions/:id/compliance", sessionHandler.CheckCompliance)
		protected.POST("/sessions/:id/recommendations", sessionHandler.Recommend)
		protected.POST("/sessions/:id/recommendations/:clauseId/accept", sessionHandler.AcceptClause)
		protected.POST("/sessions/:id/recommendations/:clauseId/reject", sessionHandler.RejectClause)
		protected.GET("/sessions/:id/redline", sessionHandler.Redline)

		protected.POST("/sessions/:id/export", exportHandler.Export)
		protected.POST("/sessions/:id/upload", exportHandler.UploadExtract)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 180 * time.Second, // generation calls can run long
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
