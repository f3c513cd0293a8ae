package ports

import (
	"context"

	"github.com/furniture-store/storefront/internal/core/domain"
)

// CreateUserInput carries the fields an admin supplies for a new account.
type CreateUserInput struct {
	Email    string
	Password string
	Name     string
	Type     domain.UserType
}

// LoginResult is returned by a successful authentication.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentSession(ctx context.Context, sessionID string) (*domain.Session, error)
	CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error)
}
