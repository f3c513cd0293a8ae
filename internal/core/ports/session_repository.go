package ports

import (
	"context"

	"github.com/furniture-store/storefront/internal/core/domain"
)

// SessionRepository persists the session of each authenticated user.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	// Find returns domain.ErrSessionNotFound when no session has id.
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
