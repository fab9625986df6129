// Package cart holds the client-side cart: an ordered list of line items for
// one browser session, persisted after every mutation.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/kirana-storefront/internal/models"
	"github.com/aaravmahajanofficial/kirana-storefront/internal/money"
)

// MaxLineQuantity caps the quantity of a single line item. Larger quantities
// are clamped so line totals stay well inside int64 paise.
const MaxLineQuantity = 999

// Store is the authoritative cart for a single session. Mutations never fail:
// persistence is best effort and its errors are only logged.
type Store struct {
	mu        sync.Mutex
	key       string
	items     []models.LineItem
	persister Persister
	logger    *slog.Logger
}

func NewStore(key string, persister Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{
		key:       key,
		items:     []models.LineItem{},
		persister: persister,
		logger:    logger.With(slog.String("cart_key", key)),
	}
}

// Hydrate replaces the in-memory items with the persisted snapshot. A missing,
// corrupt or foreign-version snapshot leaves the cart empty.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []models.LineItem{}

	if s.persister == nil {
		return nil
	}

	data, err := s.persister.Load(ctx, s.key)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return nil
		}
		return err
	}

	items, err := decodeSnapshot(data)
	if err != nil {
		s.logger.Warn("Discarding unreadable cart snapshot", slog.String("error", err.Error()))
		return nil
	}

	s.items = items

	return nil
}

// AddItem merges quantity into the line matching (product.ID, variantID) or
// appends a new line. Non-positive quantities are ignored and the line never
// grows past MaxLineQuantity.
func (s *Store) AddItem(ctx context.Context, product models.Product, quantity int, variantID *int64) {
	if quantity <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID, variantID); i >= 0 {
		s.items[i].Quantity = clampQuantity(s.items[i].Quantity, quantity)
	} else {
		s.items = append(s.items, models.LineItem{
			Product:   product,
			Quantity:  clampQuantity(0, quantity),
			VariantID: copyVariant(variantID),
		})
	}

	s.flush(ctx)
}

// RemoveItem drops the matching line and reports whether one existed.
func (s *Store) RemoveItem(ctx context.Context, productID int64, variantID *int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeLocked(ctx, productID, variantID)
}

// UpdateQuantity sets the quantity of a matching line, clamped to
// MaxLineQuantity; a quantity of zero or less removes it. It reports whether a
// line matched.
func (s *Store) UpdateQuantity(ctx context.Context, productID int64, quantity int, variantID *int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return s.removeLocked(ctx, productID, variantID)
	}

	i := s.indexOf(productID, variantID)
	if i < 0 {
		return false
	}

	s.items[i].Quantity = clampQuantity(0, quantity)
	s.flush(ctx)

	return true
}

func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []models.LineItem{}
	s.flush(ctx)
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}

	return total
}

// TotalPrice sums effective unit price times quantity in paise.
func (s *Store) TotalPrice() money.Paise {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total money.Paise
	for i := range s.items {
		total += s.unitPrice(&s.items[i]) * money.Paise(s.items[i].Quantity)
	}

	return total
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []models.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.LineItem, len(s.items))
	copy(items, s.items)

	return items
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

func (s *Store) Key() string {
	return s.key
}

// unitPrice falls back to the base price when the selected variant is missing
// from the snapshot. The fallback is logged since it can hide a stale snapshot.
func (s *Store) unitPrice(item *models.LineItem) money.Paise {
	price, matched := item.UnitPrice()
	if !matched {
		s.logger.Warn("Variant not found on product snapshot, using base price",
			slog.Int64("product_id", item.Product.ID),
			slog.Int64("variant_id", *item.VariantID))
	}

	return price
}

func (s *Store) removeLocked(ctx context.Context, productID int64, variantID *int64) bool {
	i := s.indexOf(productID, variantID)
	if i < 0 {
		return false
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	s.flush(ctx)

	return true
}

func (s *Store) indexOf(productID int64, variantID *int64) int {
	for i := range s.items {
		if s.items[i].Matches(productID, variantID) {
			return i
		}
	}

	return -1
}

func (s *Store) flush(ctx context.Context) {
	if s.persister == nil {
		return
	}

	data, err := encodeSnapshot(s.items)
	if err != nil {
		s.logger.Error("Failed to encode cart snapshot", slog.String("error", err.Error()))
		return
	}

	if err := s.persister.Save(ctx, s.key, data); err != nil {
		s.logger.Error("Failed to persist cart snapshot", slog.String("error", err.Error()))
	}
}

func clampQuantity(current, add int) int {
	if add >= MaxLineQuantity-current {
		return MaxLineQuantity
	}

	return current + add
}

func copyVariant(variantID *int64) *int64 {
	if variantID == nil {
		return nil
	}

	v := *variantID

	return &v
}
