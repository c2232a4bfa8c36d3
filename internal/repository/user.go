package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/pnmovie/internal/model"
)

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// EnsureIndexes creates the unique username index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create registers a new account with a bcrypt-hashed password.
func (r *UserRepository) Create(ctx context.Context, username, password, email, displayName, avatar, gender string) (*model.User, error) {
	return r.insert(ctx, &model.User{
		Username:    username,
		Email:       email,
		Role:        "user",
		DisplayName: displayName,
		Avatar:      avatar,
		Gender:      gender,
	}, password)
}

// CreateAdmin registers an account with the admin role. Used by the
// bootstrap tool; the API never assigns this role at registration.
func (r *UserRepository) CreateAdmin(ctx context.Context, username, password, email string) (*model.User, error) {
	return r.insert(ctx, &model.User{
		Username: username,
		Email:    email,
		Role:     "admin",
	}, password)
}

func (r *UserRepository) insert(ctx context.Context, user *model.User, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername returns the matching user, or nil when none exists.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the matching user, or nil when none exists.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (r *UserRepository) CheckPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// UpdateFields merges the given fields into the user document identified by
// username. Reports whether a document matched.
func (r *UserRepository) UpdateFields(ctx context.Context, username string, fields map[string]interface{}) (bool, error) {
	if len(fields) == 0 {
		return true, nil
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"username": username}, bson.M{"$set": fields})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// UpdatePasswordByEmail replaces the password hash for the given email.
func (r *UserRepository) UpdatePasswordByEmail(ctx context.Context, email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": string(hash)}})
	return err
}

// ListAll returns every user document with the password projected out and
// the object id rendered as a hex string.
func (r *UserRepository) ListAll(ctx context.Context) ([]bson.M, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []bson.M
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		if oid, ok := u["_id"].(primitive.ObjectID); ok {
			u["_id"] = oid.Hex()
		}
	}
	return users, nil
}

// Delete removes the user by username. Reports whether a document existed.
func (r *UserRepository) Delete(ctx context.Context, username string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
