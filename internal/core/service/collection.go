package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
	"github.com/furniture-store/storefront/internal/pkg/metrics"
)

// Mirror copies the content of a successful remote write into the fallback
// store without blocking the writer.
type Mirror interface {
	Enqueue(key string, content []byte)
}

// tiers bundles the storage layers every collection reads and writes
// through. remote and mirror may be nil.
type tiers struct {
	remote  ports.DocumentStore
	local   ports.FallbackStore
	mirror  Mirror
	dataDir string
	log     zerolog.Logger
}

// collection keeps one JSON array in memory and synchronizes it with the
// remote document store, falling back to the local store when the remote
// cannot be used.
type collection[T any] struct {
	meta  domain.Collection
	id    func(T) string
	tiers *tiers

	writeMu sync.Mutex // serializes load and persist

	mu      sync.RWMutex
	items   []T
	version string
	tier    domain.Tier
}

func newCollection[T any](meta domain.Collection, id func(T) string, t *tiers) *collection[T] {
	return &collection[T]{meta: meta, id: id, tiers: t}
}

// snapshot returns a copy of the in-memory items.
func (c *collection[T]) snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *collection[T]) find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if c.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) status() domain.CollectionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.CollectionStatus{
		Name:    c.meta.Name,
		Count:   len(c.items),
		Tier:    c.tier,
		Version: c.version,
	}
}

func (c *collection[T]) commit(items []T, version string, tier domain.Tier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.version = version
	c.tier = tier
}

func (c *collection[T]) load(ctx context.Context) domain.Tier {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.reload(ctx)
}

// reload reads the collection from the remote store, or from the fallback
// store when the remote fails. A missing remote document is an empty
// collection, not a failure. Callers must hold writeMu.
func (c *collection[T]) reload(ctx context.Context) domain.Tier {
	path := c.meta.Path(c.tiers.dataDir)
	log := c.tiers.log.With().Str("collection", c.meta.Name).Logger()

	c.mu.RLock()
	version := c.version
	c.mu.RUnlock()

	if c.tiers.remote != nil {
		doc, err := c.tiers.remote.Read(ctx, path)
		switch {
		case err == nil:
			var items []T
			jerr := json.Unmarshal(doc.Content, &items)
			if jerr == nil {
				c.commit(items, doc.Version, domain.TierRemote)
				metrics.StorageReadsTotal.WithLabelValues(c.meta.Name, string(domain.TierRemote)).Inc()
				return domain.TierRemote
			}
			log.Error().Err(jerr).Str("path", path).Msg("remote document is not a valid collection, using fallback")
			version = doc.Version
		case errors.Is(err, domain.ErrDocumentNotFound):
			c.commit(nil, "", domain.TierRemote)
			metrics.StorageReadsTotal.WithLabelValues(c.meta.Name, string(domain.TierRemote)).Inc()
			return domain.TierRemote
		default:
			log.Warn().Err(err).Msg("remote read failed, using fallback")
		}
		metrics.StorageFallbacksTotal.WithLabelValues(c.meta.Name, "read").Inc()
	}

	var items []T
	raw, err := c.tiers.local.Get(ctx, c.meta.LocalKey)
	switch {
	case err == nil:
		if jerr := json.Unmarshal(raw, &items); jerr != nil {
			log.Error().Err(jerr).Str("key", c.meta.LocalKey).Msg("fallback value is not a valid collection, starting empty")
			items = nil
		}
	case errors.Is(err, domain.ErrKeyNotFound):
	default:
		log.Error().Err(err).Str("key", c.meta.LocalKey).Msg("fallback read failed, starting empty")
	}
	c.commit(items, version, domain.TierFallback)
	metrics.StorageReadsTotal.WithLabelValues(c.meta.Name, string(domain.TierFallback)).Inc()
	return domain.TierFallback
}

// persist overwrites the whole collection, remote first and the fallback
// store when the remote fails, then commits items to memory. A version
// conflict is returned as is after reloading the collection; it never
// reaches the fallback store. Callers must hold writeMu.
func (c *collection[T]) persist(ctx context.Context, items []T, message string) error {
	content, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.meta.Name, err)
	}

	c.mu.RLock()
	version := c.version
	c.mu.RUnlock()

	log := c.tiers.log.With().Str("collection", c.meta.Name).Logger()

	if c.tiers.remote != nil {
		newVersion, err := c.tiers.remote.Write(ctx, c.meta.Path(c.tiers.dataDir), content, message, version)
		if err == nil {
			c.commit(items, newVersion, domain.TierRemote)
			if c.tiers.mirror != nil {
				c.tiers.mirror.Enqueue(c.meta.LocalKey, content)
			}
			metrics.StorageWritesTotal.WithLabelValues(c.meta.Name, string(domain.TierRemote)).Inc()
			log.Debug().Str("version", newVersion).Str("message", message).Msg("collection written")
			return nil
		}
		if errors.Is(err, domain.ErrVersionConflict) {
			metrics.StorageConflictsTotal.WithLabelValues(c.meta.Name).Inc()
			log.Warn().Err(err).Msg("stale collection version, reloading")
			c.reload(ctx)
			return fmt.Errorf("write %s: %w", c.meta.Name, err)
		}
		log.Warn().Err(err).Msg("remote write failed, using fallback")
		metrics.StorageFallbacksTotal.WithLabelValues(c.meta.Name, "write").Inc()
	}

	if err := c.tiers.local.Set(ctx, c.meta.LocalKey, content); err != nil {
		metrics.StorageWritesTotal.WithLabelValues(c.meta.Name, "none").Inc()
		return fmt.Errorf("write %s: %w: %v", c.meta.Name, domain.ErrStorageUnavailable, err)
	}
	c.commit(items, version, domain.TierFallback)
	metrics.StorageWritesTotal.WithLabelValues(c.meta.Name, string(domain.TierFallback)).Inc()
	return nil
}

// mutate applies fn to a copy of the items and persists the result.
func (c *collection[T]) mutate(ctx context.Context, message string, fn func([]T) ([]T, error)) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	next, err := fn(c.snapshot())
	if err != nil {
		return err
	}
	return c.persist(ctx, next, message)
}

func (c *collection[T]) add(ctx context.Context, item T, message string) error {
	return c.mutate(ctx, message, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
}

// update applies fn to the record with id and returns the updated record.
func (c *collection[T]) update(ctx context.Context, id, message string, fn func(*T) error) (T, error) {
	var updated T
	err := c.mutate(ctx, message, func(items []T) ([]T, error) {
		for i := range items {
			if c.id(items[i]) != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			updated = items[i]
			return items, nil
		}
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, c.meta.Name, id)
	})
	return updated, err
}

func (c *collection[T]) remove(ctx context.Context, id, message string) error {
	return c.mutate(ctx, message, func(items []T) ([]T, error) {
		n := len(items)
		out := slices.DeleteFunc(items, func(it T) bool { return c.id(it) == id })
		if len(out) == n {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, c.meta.Name, id)
		}
		return out, nil
	})
}

// seed persists defaults when the collection is empty. Seeding is best
// effort: when no tier accepts the write the defaults are still served
// from memory.
func (c *collection[T]) seed(ctx context.Context, defaults []T) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.RLock()
	empty := len(c.items) == 0
	c.mu.RUnlock()
	if !empty {
		return
	}

	err := c.persist(ctx, defaults, "Initialize default "+c.meta.Name)
	switch {
	case err == nil:
		c.tiers.log.Info().Str("collection", c.meta.Name).Int("count", len(defaults)).Msg("default data seeded")
	case errors.Is(err, domain.ErrVersionConflict):
		c.tiers.log.Warn().Err(err).Str("collection", c.meta.Name).Msg("collection created concurrently, keeping remote data")
	default:
		c.tiers.log.Error().Err(err).Str("collection", c.meta.Name).Msg("could not persist default data, serving from memory")
		c.mu.RLock()
		version := c.version
		c.mu.RUnlock()
		c.commit(defaults, version, domain.TierDefaults)
	}
}
