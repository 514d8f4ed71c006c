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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"todoapi/internal/api"
	"todoapi/internal/auth"
	"todoapi/internal/config"
	"todoapi/internal/db"
	"todoapi/internal/logging"
	"todoapi/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: failed to load: %v", err)
	}

	logger := logging.MustNewLogger(cfg.Logging)
	defer logger.Sync()

	ctx := context.Background()

	mongoStore, err := db.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logger.Fatal("mongo: failed to connect", zap.Error(err))
	}
	defer func() {
		if err := mongoStore.Close(context.Background()); err != nil {
			logger.Warn("mongo: close error", zap.Error(err))
		}
	}()

	if err := mongoStore.Ping(ctx); err != nil {
		logger.Fatal("mongo: ping failed", zap.Error(err))
	}
	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		logger.Fatal("mongo: ensure indexes", zap.Error(err))
	}

	codec, err := auth.NewTokenCodec(cfg.JWTSecret)
	if err != nil {
		logger.Fatal("failed to initialise token codec", zap.Error(err))
	}

	todos := store.NewTodoStore(mongoStore)
	users := store.NewUserStore(mongoStore, codec)

	router := setupRouter(todos, users, logger)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server crashed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped cleanly")
}

func setupRouter(todos api.TodoStore, users api.UserStore, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(api.RequestLogger(logger), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api.NewHandler(todos, users, logger).RegisterRoutes(router)

	return router
}
