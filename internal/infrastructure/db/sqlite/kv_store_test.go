package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/furniture-store/storefront/internal/core/domain"
)

func openTemp(t *testing.T) *KVStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "fallback.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestKVStore_MissingKey(t *testing.T) {
	store := openTemp(t)
	if _, err := store.Get(context.Background(), "furniture_store_products"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestKVStore_SetOverwritesValue(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	if err := store.Set(ctx, "github_token", []byte("first")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "github_token", []byte("second")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Get(ctx, "github_token")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("expected second, got %s", got)
	}
}

func TestKVStore_Delete(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	_ = store.Set(ctx, "k", []byte("v"))
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "absent"); err != nil {
		t.Errorf("deleting an absent key should succeed, got %v", err)
	}
	if err := store.Ping(ctx); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestKVStore_SetWithTTLExpires(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	if err := store.SetWithTTL(ctx, "furniture_store_user:s1", []byte("live"), time.Hour); err != nil {
		t.Fatalf("set live: %v", err)
	}
	if err := store.SetWithTTL(ctx, "furniture_store_user:s2", []byte("gone"), -time.Second); err != nil {
		t.Fatalf("set lapsed: %v", err)
	}

	if got, err := store.Get(ctx, "furniture_store_user:s1"); err != nil || string(got) != "live" {
		t.Errorf("expected live value, got %q %v", got, err)
	}
	if _, err := store.Get(ctx, "furniture_store_user:s2"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound for an expired key, got %v", err)
	}

	// A later write purges the expired row.
	if err := store.SetWithTTL(ctx, "furniture_store_user:s3", []byte("x"), time.Hour); err != nil {
		t.Fatalf("set: %v", err)
	}
	var n int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM kv WHERE key = ?`, "furniture_store_user:s2").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("expired row was not purged")
	}
}

func TestKVStore_SetClearsExpiry(t *testing.T) {
	store := openTemp(t)
	ctx := context.Background()

	_ = store.SetWithTTL(ctx, "k", []byte("v1"), -time.Second)
	if err := store.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, err := store.Get(ctx, "k"); err != nil || string(got) != "v2" {
		t.Errorf("expected v2 without expiry, got %q %v", got, err)
	}
}

func TestOpen_UpgradesTableWithoutExpiry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL, updated_at TIMESTAMP NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv VALUES ('github_token', 'abc', CURRENT_TIMESTAMP)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	store, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	if got, err := store.Get(context.Background(), "github_token"); err != nil || string(got) != "abc" {
		t.Errorf("expected existing value, got %q %v", got, err)
	}
	if err := store.SetWithTTL(context.Background(), "k", []byte("v"), time.Hour); err != nil {
		t.Errorf("SetWithTTL on upgraded table: %v", err)
	}
}
