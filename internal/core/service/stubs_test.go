package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type memDoc struct {
	content []byte
	version int
}

// memRemote is a versioned document store with injectable failures.
type memRemote struct {
	mu       sync.Mutex
	docs     map[string]memDoc
	readErr  error
	writeErr error
	messages []string
}

func newMemRemote() *memRemote {
	return &memRemote{docs: make(map[string]memDoc)}
}

func (r *memRemote) Read(_ context.Context, path string) (*ports.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	d, ok := r.docs[path]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &ports.Document{Content: d.content, Version: strconv.Itoa(d.version)}, nil
}

func (r *memRemote) Write(_ context.Context, path string, content []byte, message, version string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return "", r.writeErr
	}
	d, exists := r.docs[path]
	if (version == "" && exists) || (version != "" && (!exists || strconv.Itoa(d.version) != version)) {
		return "", &domain.ConflictError{Path: path, ExpectedVersion: version}
	}
	next := d.version + 1
	r.docs[path] = memDoc{content: content, version: next}
	r.messages = append(r.messages, message)
	return strconv.Itoa(next), nil
}

func (r *memRemote) Delete(_ context.Context, path, _, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, path)
	return nil
}

func (r *memRemote) Ping(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readErr
}

// put stores content as if another client had written it.
func (r *memRemote) put(path string, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.docs[path]
	r.docs[path] = memDoc{content: []byte(content), version: d.version + 1}
}

func (r *memRemote) get(path string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[path]
	return string(d.content), ok
}

type memLocal struct {
	mu     sync.Mutex
	values map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newMemLocal() *memLocal {
	return &memLocal{values: make(map[string][]byte)}
}

func (l *memLocal) Get(_ context.Context, key string) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.getErr != nil {
		return nil, l.getErr
	}
	v, ok := l.values[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return v, nil
}

func (l *memLocal) Set(_ context.Context, key string, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.setErr != nil {
		return l.setErr
	}
	l.values[key] = value
	return nil
}

func (l *memLocal) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	l.mu.Lock()
	if l.ttls == nil {
		l.ttls = make(map[string]time.Duration)
	}
	l.ttls[key] = ttl
	l.mu.Unlock()
	return l.Set(ctx, key, value)
}

func (l *memLocal) Delete(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.values, key)
	return nil
}

func (l *memLocal) Ping(context.Context) error { return nil }

func (l *memLocal) has(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.values[key]
	return ok
}

type recordingMirror struct {
	mu   sync.Mutex
	keys []string
}

func (m *recordingMirror) Enqueue(key string, _ []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, key)
}

type stubIdempotency struct {
	keys       map[string]string
	reserveErr error
	released   []string
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Reserve(_ context.Context, key, orderID string) (string, bool, error) {
	if s.reserveErr != nil {
		return "", false, s.reserveErr
	}
	if existing, ok := s.keys[key]; ok {
		return existing, false, nil
	}
	s.keys[key] = orderID
	return orderID, true, nil
}

func (s *stubIdempotency) Release(_ context.Context, key string) error {
	delete(s.keys, key)
	s.released = append(s.released, key)
	return nil
}

const testDataDir = "docs/data"

func productsPath() string { return domain.CollectionProducts.Path(testDataDir) }
func usersPath() string { return domain.CollectionUsers.Path(testDataDir) }

func newTestStore(remote ports.DocumentStore, local ports.FallbackStore) *Store {
	return NewStore(StoreConfig{Remote: remote, Local: local, DataDir: testDataDir}, zerolog.Nop())
}

func newLoadedCatalog(t interface{ Fatalf(string, ...any) }, remote ports.DocumentStore, local ports.FallbackStore) (*Store, *CatalogService) {
	store := newTestStore(remote, local)
	catalog := NewCatalogService(store, zerolog.Nop())
	if err := catalog.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return store, catalog
}

func productInput(name string) ports.ProductInput {
	return ports.ProductInput{
		Name:       name,
		BasePrice:  100,
		CategoryID: "cat-5",
		Colors:     []string{"color-1"},
		IsActive:   true,
	}
}
