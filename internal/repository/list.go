package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/pnmovie/internal/model"
)

// ListRepository backs a per-user movie list (favorites or watch-later).
// Each user owns one document keyed by username with a set-semantics
// "movies" array of {id, source} pairs.
type ListRepository struct {
	col *mongo.Collection
}

func NewListRepository(db *mongo.Database, collection string) *ListRepository {
	return &ListRepository{col: db.Collection(collection)}
}

// Add inserts the entry into the user's list. $addToSet keeps the operation
// idempotent for duplicate (id, source) pairs.
func (r *ListRepository) Add(ctx context.Context, username string, entry model.ListEntry) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$addToSet": bson.M{"movies": entry}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Remove pulls the exact (id, source) pair. Removing a non-member is a
// no-op, not an error.
func (r *ListRepository) Remove(ctx context.Context, username string, entry model.ListEntry) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$pull": bson.M{"movies": bson.M{"id": entry.ID, "source": entry.Source}}},
	)
	return err
}

// Get returns the user's list with every element normalized to the
// composite shape.
func (r *ListRepository) Get(ctx context.Context, username string) ([]model.ListEntry, error) {
	var doc struct {
		Movies []interface{} `bson:"movies"`
	}
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []model.ListEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return normalizeEntries(doc.Movies), nil
}

// normalizeEntries resolves the legacy dual representation: a bare id
// string implies source "local"; composite documents pass through.
func normalizeEntries(raw []interface{}) []model.ListEntry {
	entries := make([]model.ListEntry, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			entries = append(entries, model.ListEntry{ID: v, Source: "local"})
		case primitive.D:
			entry := entryFromMap(v.Map())
			if entry != nil {
				entries = append(entries, *entry)
			}
		case primitive.M:
			entry := entryFromMap(v)
			if entry != nil {
				entries = append(entries, *entry)
			}
		}
	}
	return entries
}

func entryFromMap(m primitive.M) *model.ListEntry {
	id, okID := m["id"].(string)
	source, okSource := m["source"].(string)
	if !okID || !okSource {
		return nil
	}
	return &model.ListEntry{ID: id, Source: source}
}
