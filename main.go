package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AIABHISHEK/task-management-api/config"
	"github.com/AIABHISHEK/task-management-api/controllers"
	"github.com/AIABHISHEK/task-management-api/middleware"
	"github.com/AIABHISHEK/task-management-api/routes"
	"github.com/AIABHISHEK/task-management-api/storage"
	"github.com/AIABHISHEK/task-management-api/utils"
)

func main() {
	logger, err := config.InitLogger()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	conf, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if conf.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, db, err := config.InitDB(ctx, conf)
	cancel()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	tokens := utils.NewJWTManager(conf.JWTSecret, utils.TokenTTL)

	userRepo := storage.NewUserRepo(db)
	taskRepo := storage.NewTaskRepo(db)
	subtaskRepo := storage.NewSubtaskRepo(db)

	authController := controllers.NewAuthController(userRepo, tokens, logger)
	taskController := controllers.NewTaskController(taskRepo, subtaskRepo, logger)
	subtaskController := controllers.NewSubtaskController(subtaskRepo, taskRepo, logger)

	if conf.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	middleware.SetupMiddleware(r, logger)
	routes.RegisterRoutes(r, tokens, authController, taskController, subtaskController)

	srv := &http.Server{
		Addr:    ":" + conf.ServerPort,
		Handler: r,
	}

	go func() {
		logger.Infow("server starting", "port", conf.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infow("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Errorw("mongodb disconnect failed", "error", err)
	}

	logger.Infow("server stopped")
}
