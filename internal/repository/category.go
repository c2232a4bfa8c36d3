package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/user/pnmovie/internal/model"
)

// ErrDuplicateName is returned when a category name is already taken.
var ErrDuplicateName = errors.New("category name already exists")

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection("categories")}
}

// ListAll returns every category.
func (r *CategoryRepository) ListAll(ctx context.Context) ([]model.Category, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var cats []model.Category
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Create inserts a category, rejecting duplicate names.
func (r *CategoryRepository) Create(ctx context.Context, name string) error {
	count, err := r.col.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateName
	}
	_, err = r.col.InsertOne(ctx, bson.M{"name": name})
	return err
}

// Update renames a category. Reports whether a document matched.
func (r *CategoryRepository) Update(ctx context.Context, id, name string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid id: %w", err)
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes a category. Reports whether a document existed.
func (r *CategoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid id: %w", err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
