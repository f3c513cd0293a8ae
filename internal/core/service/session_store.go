package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

const sessionKeyPrefix = "furniture_store_user:"

// SessionStore keeps sessions in the local fallback store, one key per
// session. Keys expire together with the session.
type SessionStore struct {
	kv  ports.FallbackStore
	now func() time.Time
}

func NewSessionStore(kv ports.FallbackStore) *SessionStore {
	return &SessionStore{kv: kv, now: time.Now}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	key := sessionKeyPrefix + session.ID
	if session.ExpiresAt.IsZero() {
		return s.kv.Set(ctx, key, raw)
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("save session %s: %w", session.ID, domain.ErrSessionNotFound)
	}
	return s.kv.SetWithTTL(ctx, key, raw, ttl)
}

func (s *SessionStore) Find(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, domain.ErrSessionNotFound
	}
	raw, err := s.kv.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.Expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, sessionKeyPrefix+id)
}
