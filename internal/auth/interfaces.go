package auth

import (
	"context"

	"github.com/hugh/birthday-reminder/internal/database/models"
)

// Authenticator defines the account lifecycle operations exposed over HTTP.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) error
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	Verify(ctx context.Context, transaction string) (string, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	GenerateToken(userID uint, name string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// VerificationMailer delivers the account activation link.
type VerificationMailer interface {
	SendVerification(ctx context.Context, to, name, transaction string) error
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ TokenService  = (*JWTService)(nil)
)
