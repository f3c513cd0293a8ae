package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

// StoreConfig wires the storage tiers. Remote and Mirror are optional; a
// nil Remote sends every read and write to Local.
type StoreConfig struct {
	Remote  ports.DocumentStore
	Local   ports.FallbackStore
	Mirror  Mirror
	DataDir string
}

// Store owns every synchronized collection. It is created once at the
// application root and shared by the services.
type Store struct {
	tiers *tiers

	users         *collection[domain.User]
	products      *collection[domain.Product]
	categories    *collection[domain.Category]
	colors        *collection[domain.Color]
	pricingTables *collection[domain.PricingTable]
	promotions    *collection[domain.Promotion]
	announcements *collection[domain.Announcement]
	orders        *collection[domain.Order]
}

func NewStore(cfg StoreConfig, log zerolog.Logger) *Store {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "docs/data"
	}
	t := &tiers{
		remote:  cfg.Remote,
		local:   cfg.Local,
		mirror:  cfg.Mirror,
		dataDir: dataDir,
		log:     log,
	}
	return &Store{
		tiers:         t,
		users:         newCollection(domain.CollectionUsers, func(u domain.User) string { return u.ID }, t),
		products:      newCollection(domain.CollectionProducts, func(p domain.Product) string { return p.ID }, t),
		categories:    newCollection(domain.CollectionCategories, func(c domain.Category) string { return c.ID }, t),
		colors:        newCollection(domain.CollectionColors, func(c domain.Color) string { return c.ID }, t),
		pricingTables: newCollection(domain.CollectionPricingTables, func(p domain.PricingTable) string { return p.ID }, t),
		promotions:    newCollection(domain.CollectionPromotions, func(p domain.Promotion) string { return p.ID }, t),
		announcements: newCollection(domain.CollectionAnnouncements, func(a domain.Announcement) string { return a.ID }, t),
		orders:        newCollection(domain.CollectionOrders, func(o domain.Order) string { return o.ID }, t),
	}
}

// Status reports the last synchronization of every collection.
func (s *Store) Status() []domain.CollectionStatus {
	return []domain.CollectionStatus{
		s.users.status(),
		s.products.status(),
		s.categories.status(),
		s.colors.status(),
		s.pricingTables.status(),
		s.promotions.status(),
		s.announcements.status(),
		s.orders.status(),
	}
}

// Ping checks the reachable tiers; the remote error is reported first.
func (s *Store) Ping(ctx context.Context) (remote, local error) {
	if s.tiers.remote != nil {
		remote = s.tiers.remote.Ping(ctx)
	} else {
		remote = domain.ErrRemoteNotConfigured
	}
	return remote, s.tiers.local.Ping(ctx)
}

func newID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}
