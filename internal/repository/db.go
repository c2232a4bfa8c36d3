package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo connects to MongoDB and verifies the connection.
func InitMongo(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// Repositories aggregates all stores used by the handlers.
type Repositories struct {
	User       *UserRepository
	Movie      *MovieRepository
	Favorite   *ListRepository
	WatchLater *ListRepository
	Review     *ReviewRepository
	Category   *CategoryRepository
	OTP        *OTPRepository
}

// NewRepositories wires every store against the given database. The movie
// catalog is file-backed and only needs a path.
func NewRepositories(db *mongo.Database, moviesFile string) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Movie:      NewMovieRepository(moviesFile),
		Favorite:   NewListRepository(db, "favorites"),
		WatchLater: NewListRepository(db, "watchlater"),
		Review:     NewReviewRepository(db),
		Category:   NewCategoryRepository(db),
		OTP:        NewOTPRepository(db),
	}
}
