// Package auth is the identity boundary: registration, password login and
// access-token validation.
package auth

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/domain"
)

type userRepo interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, string, error)
}

// Service provides identity operations.
type Service struct {
	users userRepo
	jwt   jwtManager
	log   *slog.Logger
}

// NewService creates a new auth Service.
func NewService(log *slog.Logger, users userRepo, jwt jwtManager) *Service {
	return &Service{
		users: users,
		jwt:   jwt,
		log:   log.With("service", "auth"),
	}
}

// AuthResult is returned from Register and Login.
type AuthResult struct {
	User        *domain.User
	AccessToken string
}

// ValidateToken checks an access token and returns the authenticated user's
// id and role. Used by the auth middleware.
func (s *Service) ValidateToken(token string) (uuid.UUID, string, error) {
	userID, role, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, "", domain.ErrUnauthorized
	}
	return userID, role, nil
}

// Profile returns the authenticated user's record.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
