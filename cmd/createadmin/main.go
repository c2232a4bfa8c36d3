package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/user/pnmovie/internal/config"
	"github.com/user/pnmovie/internal/repository"
)

// Seeds the first admin account. Registration only ever creates "user"
// accounts, so a fresh deployment runs this once before using any admin
// route.
func main() {
	username := flag.String("username", "admin", "admin account name")
	password := flag.String("password", "123456", "initial password, change it after the first login")
	email := flag.String("email", "admin@yourdomain.com", "admin email")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}
	cfg := config.Load()

	client, err := repository.InitMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongodb connection failed: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := repository.NewUserRepository(client.Database(cfg.MongoDB))
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Printf("ensure user indexes: %v", err)
	}

	existing, err := users.FindByUsername(ctx, *username)
	if err != nil {
		log.Fatalf("lookup failed: %v", err)
	}
	if existing != nil {
		log.Fatalf("tài khoản %q đã tồn tại", *username)
	}

	if _, err := users.CreateAdmin(ctx, *username, *password, *email); err != nil {
		log.Fatalf("tạo admin thất bại: %v", err)
	}
	log.Println("Tạo admin thành công!")
}
