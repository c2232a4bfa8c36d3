package handler

import (
	"context"
	"time"

	"github.com/user/pnmovie/internal/config"
	"github.com/user/pnmovie/internal/model"
	"github.com/user/pnmovie/internal/repository"
	"github.com/user/pnmovie/internal/service"
)

// OTPStore is the slice of the OTP repository the password-reset flow
// depends on.
type OTPStore interface {
	Upsert(ctx context.Context, email, code string, expiredAt time.Time) error
	Find(ctx context.Context, email string) (*model.PasswordOTP, error)
	Delete(ctx context.Context, email string) error
}

// ResetUserStore covers the user lookups the password-reset flow depends on.
type ResetUserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePasswordByEmail(ctx context.Context, email, newPassword string) error
}

// Handler holds every dependency the HTTP handlers need.
type Handler struct {
	Repos      *repository.Repositories
	Config     *config.Config
	TMDB       *service.TMDBService
	Mailer     *service.Mailer
	OTP        OTPStore
	ResetUsers ResetUserStore
}

// NewHandler wires the handler with its services.
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:      repos,
		Config:     cfg,
		TMDB:       service.NewTMDBService(cfg),
		Mailer:     service.NewMailer(cfg),
		OTP:        repos.OTP,
		ResetUsers: repos.User,
	}
}
