package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/user/pnmovie/internal/model"
)

type OTPRepository struct {
	col *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{col: db.Collection("password_otps")}
}

// Upsert stores a fresh code for the email, replacing any prior unused one.
func (r *OTPRepository) Upsert(ctx context.Context, email, code string, expiredAt time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"otp": code, "expired_at": expiredAt}},
		options.Update().SetUpsert(true),
	)
	return err
}

// Find returns the live OTP record for the email, or nil when none exists.
func (r *OTPRepository) Find(ctx context.Context, email string) (*model.PasswordOTP, error) {
	var otp model.PasswordOTP
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&otp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

// Delete removes the OTP record after a successful reset (single use).
func (r *OTPRepository) Delete(ctx context.Context, email string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"email": email})
	return err
}
