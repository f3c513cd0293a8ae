package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/api/middleware"
	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/service"
)

var (
	adminUser = domain.User{ID: "admin-1", Email: "admin@furniture.com", Type: domain.UserTypeAdmin}
	lojaUser  = domain.User{ID: "loja-1", Email: "loja@furniture.com", Name: "Loja Demo", Type: domain.UserTypeStore}
)

// memKV is an in-memory fallback store.
type memKV struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemKV() *memKV { return &memKV{values: make(map[string][]byte)} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memKV) SetWithTTL(ctx context.Context, key string, value []byte, _ time.Duration) error {
	return m.Set(ctx, key, value)
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memKV) Ping(context.Context) error { return nil }

// newCatalog returns a seeded catalog backed only by an in-memory fallback
// store.
func newCatalog(t *testing.T) *service.CatalogService {
	t.Helper()
	store := service.NewStore(service.StoreConfig{Local: newMemKV()}, zerolog.Nop())
	catalog := service.NewCatalogService(store, zerolog.Nop())
	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context as the Auth middleware would leave
// it for user. A zero user leaves the context unauthenticated.
func newContext(e *echo.Echo, method, target, body string, user domain.User) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user.ID != "" {
		c.Set(middleware.KeySession, &domain.Session{ID: "session-" + user.ID, User: user})
		c.Set(middleware.KeyUser, user)
		c.Set(middleware.KeyRole, string(user.Type))
	}
	return c, rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}
