package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account document in the "users" collection. The password hash
// is never serialized into a response.
type User struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password"`
	Email        string             `json:"email" bson:"email"`
	Role         string             `json:"role" bson:"role"`
	DisplayName  string             `json:"displayName" bson:"displayName"`
	Avatar       string             `json:"avatar" bson:"avatar"`
	Gender       string             `json:"gender" bson:"gender"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// PublicProfile is the profile shape returned to clients.
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"username":    u.Username,
		"email":       u.Email,
		"role":        u.Role,
		"displayName": u.DisplayName,
		"avatar":      u.Avatar,
		"gender":      u.Gender,
	}
}

// PasswordOTP is a one-time password-reset code, keyed by email. A new
// request for the same email replaces the previous code.
type PasswordOTP struct {
	Email     string    `bson:"email"`
	OTP       string    `bson:"otp"`
	ExpiredAt time.Time `bson:"expired_at"`
}
