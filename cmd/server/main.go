package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/user/pnmovie/internal/config"
	"github.com/user/pnmovie/internal/handler"
	"github.com/user/pnmovie/internal/middleware"
	"github.com/user/pnmovie/internal/repository"
	"github.com/user/pnmovie/internal/router"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	// Load configuration
	cfg := config.Load()

	// Connect to MongoDB
	client, err := repository.InitMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connection failed: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(cfg.MongoDB)
	repos := repository.NewRepositories(db, cfg.MoviesFile)

	// Username uniqueness is enforced by the store
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repos.User.EnsureIndexes(indexCtx); err != nil {
		log.Printf("ensure user indexes: %v", err)
	}
	cancelIndex()

	// Gin engine
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	h := handler.NewHandler(repos, cfg)
	router.RegisterRoutes(r, h)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start the server in a goroutine so we can listen for signals
	go func() {
		log.Printf("server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for interrupt for a graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shut down:", err)
	}

	log.Println("server exited")
}
