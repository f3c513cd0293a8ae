package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/furniture-store/storefront/internal/core/domain"
	"github.com/furniture-store/storefront/internal/core/ports"
	"github.com/furniture-store/storefront/internal/pkg/metrics"
)

const (
	DefaultWhatsAppNumber = "5511999999999"
	whatsAppBaseURL       = "https://wa.me/"
)

// CheckoutService turns a buyer's cart into an order and the message-app
// link that hands it to the sales team.
type CheckoutService struct {
	carts       ports.CartService
	catalog     ports.CatalogService
	idempotency ports.IdempotencyStore
	phone       string
	logger      zerolog.Logger
	now         func() time.Time

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

// NewCheckoutService returns a CheckoutService. idempotency may be nil, in
// which case every checkout creates a new order.
func NewCheckoutService(
	carts ports.CartService,
	catalog ports.CatalogService,
	idempotency ports.IdempotencyStore,
	phone string,
	logger zerolog.Logger,
) *CheckoutService {
	if phone == "" {
		phone = DefaultWhatsAppNumber
	}
	return &CheckoutService{
		carts:       carts,
		catalog:     catalog,
		idempotency: idempotency,
		phone:       phone,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		users:       make(map[string]*sync.Mutex),
	}
}

// Checkout records the user's cart as an order, removes the ordered lines
// from the cart and returns the deep link. A repeated idempotency key
// returns the first order.
func (s *CheckoutService) Checkout(ctx context.Context, user domain.User, idempotencyKey string) (*ports.CheckoutResult, error) {
	return s.submit(ctx, user, "checkout", idempotencyKey, OrderMessage, func(orderID string) (*domain.Order, error) {
		return s.placeCart(ctx, user, orderID)
	})
}

// Direct orders a single product and color straight away. The buyer's cart
// is left untouched.
func (s *CheckoutService) Direct(ctx context.Context, user domain.User, in ports.AddToCartInput, idempotencyKey string) (*ports.CheckoutResult, error) {
	return s.submit(ctx, user, "direct", idempotencyKey, DirectOrderMessage, func(orderID string) (*domain.Order, error) {
		line, err := s.carts.Quote(ctx, user, in)
		if err != nil {
			return nil, err
		}
		return s.record(ctx, user, orderID, []domain.CartItem{line})
	})
}

type messageFunc func(domain.Order, domain.User) string

func (s *CheckoutService) submit(
	ctx context.Context,
	user domain.User,
	kind, idempotencyKey string,
	message messageFunc,
	place func(orderID string) (*domain.Order, error),
) (*ports.CheckoutResult, error) {
	if !user.Type.IsBuyer() {
		return nil, fmt.Errorf("%s: %w", kind, domain.ErrForbidden)
	}

	unlock := s.lockUser(user.ID)
	defer unlock()

	orderID := newID("order")
	scopedKey := ""
	if idempotencyKey != "" && s.idempotency != nil {
		scopedKey = kind + ":" + user.ID + ":" + idempotencyKey
		existing, reserved, err := s.idempotency.Reserve(ctx, scopedKey, orderID)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("idempotency check failed, processing anyway")
			scopedKey = ""
		case !reserved:
			order, err := s.catalog.Order(existing)
			if err != nil {
				metrics.CheckoutsTotal.WithLabelValues("error").Inc()
				return nil, fmt.Errorf("%s: %w", kind, domain.ErrCheckoutInProgress)
			}
			metrics.CheckoutsTotal.WithLabelValues("replayed").Inc()
			s.logger.Info().Str("order_id", order.ID).Str("idempotency_key", idempotencyKey).Msg("idempotent replay")
			return &ports.CheckoutResult{Order: order, Link: s.link(message(order, user)), Replayed: true}, nil
		}
	}

	order, err := place(orderID)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		if scopedKey != "" {
			if rerr := s.idempotency.Release(ctx, scopedKey); rerr != nil {
				s.logger.Warn().Err(rerr).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	metrics.CheckoutsTotal.WithLabelValues("created").Inc()
	metrics.CheckoutAmount.Observe(order.Total)
	s.logger.Info().Str("order_id", order.ID).Str("user_id", user.ID).Str("kind", kind).Float64("total", order.Total).Msg("order placed")

	return &ports.CheckoutResult{Order: *order, Link: s.link(message(*order, user))}, nil
}

// lockUser serializes orders per user so two concurrent checkouts cannot
// both order the same cart lines.
func (s *CheckoutService) lockUser(userID string) func() {
	s.mu.Lock()
	m, ok := s.users[userID]
	if !ok {
		m = &sync.Mutex{}
		s.users[userID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *CheckoutService) placeCart(ctx context.Context, user domain.User, orderID string) (*domain.Order, error) {
	cart := s.carts.Cart(ctx, user)
	if len(cart.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	order, err := s.record(ctx, user, orderID, cart.Items)
	if err != nil {
		return nil, err
	}

	// Lines added while the order was being recorded stay in the cart.
	ids := make([]string, len(cart.Items))
	for i, it := range cart.Items {
		ids[i] = it.ID
	}
	s.carts.RemoveLines(ctx, user, ids)
	return order, nil
}

func (s *CheckoutService) record(ctx context.Context, user domain.User, orderID string, items []domain.CartItem) (*domain.Order, error) {
	var total float64
	for _, it := range items {
		total += it.TotalPrice
	}
	order := domain.Order{
		ID:           orderID,
		UserID:       user.ID,
		Items:        items,
		Total:        domain.RoundCents(total),
		Status:       domain.OrderSent,
		WhatsappSent: true,
		CreatedAt:    s.now(),
	}
	if err := s.catalog.AddOrder(ctx, order); err != nil {
		if errors.Is(err, domain.ErrVersionConflict) {
			return nil, fmt.Errorf("checkout: %w", err)
		}
		return nil, fmt.Errorf("checkout: record order: %w", err)
	}
	return &order, nil
}

func (s *CheckoutService) link(message string) string {
	return MessageLink(s.phone, message)
}

// MessageLink builds the messaging deep link with message percent-encoded
// as the text parameter.
func MessageLink(phone, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return whatsAppBaseURL + phone + "?text=" + text
}

// OrderMessage renders the plain order summary sent with the link.
func OrderMessage(order domain.Order, user domain.User) string {
	name := user.Name
	if name == "" {
		name = user.Email
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*NOVO PEDIDO - %s*\n\n", strings.ToUpper(string(user.Type)))
	fmt.Fprintf(&b, "Cliente: %s\nEmail: %s\nPedido: %s\n\n", name, user.Email, order.ID)
	for i, it := range order.Items {
		fmt.Fprintf(&b, "%d. %s\n   Cor: %s\n   Quantidade: %d\n   Valor Unitário: R$ %.2f\n   Subtotal: R$ %.2f\n\n",
			i+1, it.ProductName, it.ColorName, it.Quantity, it.UnitPrice, it.TotalPrice)
	}
	fmt.Fprintf(&b, "*TOTAL: R$ %.2f*", order.Total)
	return b.String()
}

// DirectOrderMessage renders the summary of a single-item order placed
// without the cart.
func DirectOrderMessage(order domain.Order, user domain.User) string {
	name := user.Name
	if name == "" {
		name = user.Email
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*PEDIDO DIRETO - %s*\n\n", strings.ToUpper(string(user.Type)))
	fmt.Fprintf(&b, "Cliente: %s\nEmail: %s\nPedido: %s\n\n", name, user.Email, order.ID)
	for _, it := range order.Items {
		fmt.Fprintf(&b, "Produto: %s\nCor: %s\nQuantidade: %d\nValor Unitário: R$ %.2f\n", it.ProductName, it.ColorName, it.Quantity, it.UnitPrice)
	}
	fmt.Fprintf(&b, "*Total: R$ %.2f*", order.Total)
	return b.String()
}
