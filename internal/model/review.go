package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is a user review document. Username is a snapshot of the
// submitter's display name at write time, not a live reference.
type Review struct {
	ID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	MovieID   string             `json:"-" bson:"movie_id"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Username  string             `json:"username" bson:"username"`
	Rating    float64            `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"-" bson:"created_at"`
}

// ReviewSummary is the on-demand aggregate for a movie's reviews.
type ReviewSummary struct {
	AvgRating float64 `json:"avgRating"`
	Count     int     `json:"count"`
}

// Category is an admin-managed genre/category entry.
type Category struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}
