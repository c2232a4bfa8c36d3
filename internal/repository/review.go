package repository

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/pnmovie/internal/model"
)

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection("reviews")}
}

// Create inserts a review document. Reviews are never mutated or deleted.
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	review.CreatedAt = time.Now().UTC()
	_, err := r.col.InsertOne(ctx, review)
	return err
}

// ListByMovie returns all reviews for a movie, newest first.
func (r *ReviewRepository) ListByMovie(ctx context.Context, movieID string) ([]model.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"movie_id": movieID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var reviews []model.Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// Summary aggregates count and average rating for a movie. A movie with no
// reviews yields {avgRating: 0, count: 0}.
func (r *ReviewRepository) Summary(ctx context.Context, movieID string) (model.ReviewSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"movie_id": movieID}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$movie_id",
			"avgRating": bson.M{"$avg": "$rating"},
			"count":     bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return model.ReviewSummary{}, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		AvgRating float64 `bson:"avgRating"`
		Count     int32   `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return model.ReviewSummary{}, err
	}
	if len(rows) == 0 {
		return model.ReviewSummary{}, nil
	}
	return model.ReviewSummary{
		AvgRating: Round1(rows[0].AvgRating),
		Count:     int(rows[0].Count),
	}, nil
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
