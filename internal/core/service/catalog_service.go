package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
)

// CatalogService exposes the catalog collections of a Store: role-scoped
// reads served from memory and CRUD operations that persist the whole
// collection on every change.
type CatalogService struct {
	store  *Store
	logger zerolog.Logger
	now    func() time.Time
}

func NewCatalogService(store *Store, logger zerolog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Load reads every catalog collection and seeds the empty ones.
func (s *CatalogService) Load(ctx context.Context) error {
	st := s.store
	tiers := map[string]domain.Tier{
		domain.CollectionProducts.Name:      st.products.load(ctx),
		domain.CollectionCategories.Name:    st.categories.load(ctx),
		domain.CollectionColors.Name:        st.colors.load(ctx),
		domain.CollectionPricingTables.Name: st.pricingTables.load(ctx),
		domain.CollectionPromotions.Name:    st.promotions.load(ctx),
		domain.CollectionAnnouncements.Name: st.announcements.load(ctx),
		domain.CollectionOrders.Name:        st.orders.load(ctx),
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	now := s.now()
	st.categories.seed(ctx, defaultCategories(now))
	st.colors.seed(ctx, defaultColors(now))
	st.pricingTables.seed(ctx, defaultPricingTables(now))
	st.products.seed(ctx, defaultProducts(now))

	ev := s.logger.Info()
	for name, tier := range tiers {
		ev = ev.Str(strings.ReplaceAll(name, " ", "_"), string(tier))
	}
	ev.Msg("catalog loaded")
	return nil
}

// Refresh reloads every catalog collection without seeding.
func (s *CatalogService) Refresh(ctx context.Context) error {
	st := s.store
	st.products.load(ctx)
	st.categories.load(ctx)
	st.colors.load(ctx)
	st.pricingTables.load(ctx)
	st.promotions.load(ctx)
	st.announcements.load(ctx)
	st.orders.load(ctx)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	return nil
}

func (s *CatalogService) Status() []domain.CollectionStatus {
	return s.store.Status()
}

// ── Reads ─────────────────────────────────────────────────────────────────────

func (s *CatalogService) Products(filter ports.ProductFilter) []domain.Product {
	out := []domain.Product{}
	for _, p := range s.store.products.snapshot() {
		if filter.Role != domain.UserTypeAdmin && !p.IsActive {
			continue
		}
		if p.Matches(filter.CategoryID, filter.Search) {
			out = append(out, p)
		}
	}
	return out
}

func (s *CatalogService) Product(id string) (domain.Product, error) {
	p, ok := s.store.products.find(id)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}
	return p, nil
}

func (s *CatalogService) Categories() []domain.Category {
	return s.store.categories.snapshot()
}

func (s *CatalogService) Colors() []domain.Color {
	return s.store.colors.snapshot()
}

func (s *CatalogService) Color(id string) (domain.Color, error) {
	c, ok := s.store.colors.find(id)
	if !ok {
		return domain.Color{}, fmt.Errorf("%w: color %s", domain.ErrNotFound, id)
	}
	return c, nil
}

// PricingTables returns every table to an admin and the active tables of
// the buyer's role otherwise.
func (s *CatalogService) PricingTables(role domain.UserType) []domain.PricingTable {
	all := s.store.pricingTables.snapshot()
	if role == domain.UserTypeAdmin {
		return all
	}
	out := []domain.PricingTable{}
	for _, t := range all {
		if t.IsActive && t.UserType == role {
			out = append(out, t)
		}
	}
	return out
}

func (s *CatalogService) PricingTable(id string) (domain.PricingTable, error) {
	t, ok := s.store.pricingTables.find(id)
	if !ok {
		return domain.PricingTable{}, fmt.Errorf("%w: pricing table %s", domain.ErrNotFound, id)
	}
	return t, nil
}

func (s *CatalogService) Promotions(role domain.UserType) []domain.Promotion {
	all := s.store.promotions.snapshot()
	if role == domain.UserTypeAdmin {
		return all
	}
	now := s.now()
	out := []domain.Promotion{}
	for _, p := range all {
		if p.VisibleTo(role, now) {
			out = append(out, p)
		}
	}
	return out
}

func (s *CatalogService) Announcements(role domain.UserType) []domain.Announcement {
	all := s.store.announcements.snapshot()
	if role == domain.UserTypeAdmin {
		return all
	}
	out := []domain.Announcement{}
	for _, a := range all {
		if a.VisibleTo(role) {
			out = append(out, a)
		}
	}
	return out
}

func (s *CatalogService) Order(id string) (domain.Order, error) {
	o, ok := s.store.orders.find(id)
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: order %s", domain.ErrNotFound, id)
	}
	return o, nil
}

// ── Products ──────────────────────────────────────────────────────────────────

func (s *CatalogService) AddProduct(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	now := s.now()
	p := domain.Product{
		ID:          newID("product"),
		Name:        in.Name,
		Description: in.Description,
		BasePrice:   in.BasePrice,
		CategoryID:  in.CategoryID,
		Images:      nonNil(in.Images),
		Colors:      nonNil(in.Colors),
		IsActive:    in.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.validateProduct(p); err != nil {
		return nil, err
	}
	if err := s.store.products.add(ctx, p, "Add new product"); err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", p.ID).Msg("product added")
	return &p, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	p, err := s.store.products.update(ctx, id, "Update product "+id, func(p *domain.Product) error {
		set(&p.Name, patch.Name)
		set(&p.Description, patch.Description)
		set(&p.BasePrice, patch.BasePrice)
		set(&p.CategoryID, patch.CategoryID)
		set(&p.Images, patch.Images)
		set(&p.Colors, patch.Colors)
		set(&p.IsActive, patch.IsActive)
		p.UpdatedAt = s.now()
		return s.validateProduct(*p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.products.remove(ctx, id, "Delete product "+id)
}

func (s *CatalogService) validateProduct(p domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CategoryID != "" {
		if _, ok := s.store.categories.find(p.CategoryID); !ok {
			return fmt.Errorf("%w: unknown category %s", domain.ErrValidation, p.CategoryID)
		}
	}
	for _, id := range p.Colors {
		if _, ok := s.store.colors.find(id); !ok {
			return fmt.Errorf("%w: unknown color %s", domain.ErrValidation, id)
		}
	}
	return nil
}

// ── Categories ────────────────────────────────────────────────────────────────

func (s *CatalogService) AddCategory(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}
	c := domain.Category{ID: newID("cat"), Name: in.Name, Icon: in.Icon, CreatedAt: s.now()}
	if err := s.store.categories.add(ctx, c, "Add new category"); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, patch ports.CategoryPatch) (*domain.Category, error) {
	c, err := s.store.categories.update(ctx, id, "Update category "+id, func(c *domain.Category) error {
		set(&c.Name, patch.Name)
		set(&c.Icon, patch.Icon)
		set(&c.ProductCount, patch.ProductCount)
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%w: category name is required", domain.ErrValidation)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.store.categories.remove(ctx, id, "Delete category "+id)
}

// ── Colors ────────────────────────────────────────────────────────────────────

func (s *CatalogService) AddColor(ctx context.Context, in ports.ColorInput) (*domain.Color, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: color name is required", domain.ErrValidation)
	}
	c := domain.Color{ID: newID("color"), Name: in.Name, HexValue: in.HexValue, CreatedAt: s.now()}
	if err := s.store.colors.add(ctx, c, "Add new color"); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) UpdateColor(ctx context.Context, id string, patch ports.ColorPatch) (*domain.Color, error) {
	c, err := s.store.colors.update(ctx, id, "Update color "+id, func(c *domain.Color) error {
		set(&c.Name, patch.Name)
		set(&c.HexValue, patch.HexValue)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CatalogService) DeleteColor(ctx context.Context, id string) error {
	return s.store.colors.remove(ctx, id, "Delete color "+id)
}

// ── Pricing tables ────────────────────────────────────────────────────────────

func (s *CatalogService) AddPricingTable(ctx context.Context, in ports.PricingTableInput) (*domain.PricingTable, error) {
	t := domain.PricingTable{
		ID:          newID("pricing"),
		Name:        in.Name,
		Description: in.Description,
		Multiplier:  in.Multiplier,
		UserType:    in.UserType,
		IsActive:    in.IsActive,
		CreatedAt:   s.now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.pricingTables.add(ctx, t, "Add new pricing table"); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *CatalogService) UpdatePricingTable(ctx context.Context, id string, patch ports.PricingTablePatch) (*domain.PricingTable, error) {
	t, err := s.store.pricingTables.update(ctx, id, "Update pricing table "+id, func(t *domain.PricingTable) error {
		set(&t.Name, patch.Name)
		set(&t.Description, patch.Description)
		set(&t.Multiplier, patch.Multiplier)
		set(&t.UserType, patch.UserType)
		set(&t.IsActive, patch.IsActive)
		return t.Validate()
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *CatalogService) DeletePricingTable(ctx context.Context, id string) error {
	return s.store.pricingTables.remove(ctx, id, "Delete pricing table "+id)
}

// ── Promotions ────────────────────────────────────────────────────────────────

func (s *CatalogService) AddPromotion(ctx context.Context, in ports.PromotionInput) (*domain.Promotion, error) {
	p := domain.Promotion{
		ID:                 newID("promo"),
		Title:              in.Title,
		Description:        in.Description,
		DiscountPercentage: in.DiscountPercentage,
		CategoryIDs:        nonNil(in.CategoryIDs),
		UserTypes:          nonNil(in.UserTypes),
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		IsActive:           in.IsActive,
		CreatedAt:          s.now(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.promotions.add(ctx, p, "Add new promotion"); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) UpdatePromotion(ctx context.Context, id string, patch ports.PromotionPatch) (*domain.Promotion, error) {
	p, err := s.store.promotions.update(ctx, id, "Update promotion "+id, func(p *domain.Promotion) error {
		set(&p.Title, patch.Title)
		set(&p.Description, patch.Description)
		if patch.DiscountPercentage != nil {
			d := *patch.DiscountPercentage
			p.DiscountPercentage = &d
		}
		set(&p.CategoryIDs, patch.CategoryIDs)
		set(&p.UserTypes, patch.UserTypes)
		set(&p.StartDate, patch.StartDate)
		set(&p.EndDate, patch.EndDate)
		set(&p.IsActive, patch.IsActive)
		return p.Validate()
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) DeletePromotion(ctx context.Context, id string) error {
	return s.store.promotions.remove(ctx, id, "Delete promotion "+id)
}

// ── Announcements ─────────────────────────────────────────────────────────────

func (s *CatalogService) AddAnnouncement(ctx context.Context, in ports.AnnouncementInput) (*domain.Announcement, error) {
	a := domain.Announcement{
		ID:        newID("announcement"),
		Title:     in.Title,
		Content:   in.Content,
		UserTypes: nonNil(in.UserTypes),
		Priority:  in.Priority,
		IsActive:  in.IsActive,
		CreatedAt: s.now(),
	}
	if a.Priority == "" {
		a.Priority = domain.PriorityMedium
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.announcements.add(ctx, a, "Add new announcement"); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *CatalogService) UpdateAnnouncement(ctx context.Context, id string, patch ports.AnnouncementPatch) (*domain.Announcement, error) {
	a, err := s.store.announcements.update(ctx, id, "Update announcement "+id, func(a *domain.Announcement) error {
		set(&a.Title, patch.Title)
		set(&a.Content, patch.Content)
		set(&a.UserTypes, patch.UserTypes)
		set(&a.Priority, patch.Priority)
		set(&a.IsActive, patch.IsActive)
		return a.Validate()
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *CatalogService) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.store.announcements.remove(ctx, id, "Delete announcement "+id)
}

// ── Orders ────────────────────────────────────────────────────────────────────

func (s *CatalogService) AddOrder(ctx context.Context, order domain.Order) error {
	return s.store.orders.add(ctx, order, "Add new order "+order.ID)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
