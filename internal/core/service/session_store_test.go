package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/furniture-store/storefront/internal/core/domain"
)

func TestSessionStore_ExpiredSessionIsGone(t *testing.T) {
	local := newMemLocal()
	store := NewSessionStore(local)
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	session := &domain.Session{ID: "s1", User: lojaUser, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := local.ttls[sessionKeyPrefix+"s1"]; got != time.Hour {
		t.Errorf("ttl = %v, want 1h", got)
	}
	if _, err := store.Find(ctx, "s1"); err != nil {
		t.Fatalf("Find: %v", err)
	}

	now = now.Add(time.Hour)
	if _, err := store.Find(ctx, "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}

func TestSessionStore_RejectsLapsedSession(t *testing.T) {
	local := newMemLocal()
	store := NewSessionStore(local)
	past := time.Now().Add(-time.Minute)

	err := store.Save(context.Background(), &domain.Session{ID: "old", CreatedAt: past.Add(-time.Hour), ExpiresAt: past})
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
	if local.has(sessionKeyPrefix + "old") {
		t.Errorf("lapsed session must not be stored")
	}
}

func TestSessionStore_NoExpiryUsesPlainSet(t *testing.T) {
	local := newMemLocal()
	store := NewSessionStore(local)

	if err := store.Save(context.Background(), &domain.Session{ID: "s2", User: lojaUser}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := local.ttls[sessionKeyPrefix+"s2"]; ok {
		t.Errorf("session without expiry must not get a ttl")
	}
}
