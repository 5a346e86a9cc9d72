package usecase

import (
	"fmt"
	"sync"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/localstore"
	"nothingelse-storefront/internal/notify"
	"nothingelse-storefront/pkg/logger"

	"github.com/goccy/go-json"
)

// CartUsecase holds the ordered cart lines. Mutations persist the full
// list to the local store before the in-memory copy is replaced, so the
// stored and in-memory representations are identical the moment any
// mutation returns.
type CartUsecase struct {
	store       localstore.Store
	notifier    notify.Notifier
	maxQuantity int

	mu    sync.Mutex
	lines []domain.CartLine
}

func NewCartUsecase(store localstore.Store, notifier notify.Notifier, maxQuantity int) *CartUsecase {
	u := &CartUsecase{
		store:       store,
		notifier:    notifier,
		maxQuantity: maxQuantity,
	}
	u.load()
	return u
}

// load restores the cart from the local store. A corrupt payload starts
// an empty cart rather than failing construction.
func (u *CartUsecase) load() {
	raw, ok := u.store.Get(localstore.KeyCart)
	if !ok || raw == "" {
		return
	}
	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		logger.Warn().Err(err).Msg("discarding corrupt saved cart")
		return
	}
	u.lines = lines
}

// AddItem merges into an existing line for the product or appends a new
// one built from the product's display fields.
func (u *CartUsecase) AddItem(product *domain.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	for i, line := range u.lines {
		if line.ProductID != product.ID {
			continue
		}
		updated := u.copyLines()
		updated[i].Quantity = u.capQuantity(updated[i].Quantity + quantity)
		if err := u.persist(updated); err != nil {
			return err
		}
		u.lines = updated
		u.notifier.Success("Updated quantity in cart")
		return nil
	}

	updated := append(u.copyLines(), domain.CartLine{
		ProductID:   product.ID,
		Name:        product.Name,
		Price:       product.Price,
		SalePrice:   product.SalePrice,
		Image:       product.FirstImage(),
		Quantity:    u.capQuantity(quantity),
		IsDigital:   product.IsDigital,
		SupplierURL: product.SupplierURL,
	})
	if err := u.persist(updated); err != nil {
		return err
	}
	u.lines = updated
	u.notifier.Success(fmt.Sprintf("%s added to cart", product.Name))
	return nil
}

// RemoveItem filters the product's line out of the cart.
func (u *CartUsecase) RemoveItem(productID string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.removeLocked(productID); err != nil {
		return err
	}
	u.notifier.Info("Item removed from cart")
	return nil
}

// SetQuantity replaces a line's quantity. A quantity below one removes
// the line entirely.
func (u *CartUsecase) SetQuantity(productID string, quantity int) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if quantity < 1 {
		if err := u.removeLocked(productID); err != nil {
			return err
		}
		u.notifier.Info("Item removed from cart")
		return nil
	}

	updated := u.copyLines()
	for i := range updated {
		if updated[i].ProductID == productID {
			updated[i].Quantity = u.capQuantity(quantity)
		}
	}
	if err := u.persist(updated); err != nil {
		return err
	}
	u.lines = updated
	return nil
}

// Clear empties the cart.
func (u *CartUsecase) Clear() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.persist(nil); err != nil {
		return err
	}
	u.lines = nil
	return nil
}

// Total sums effective price times quantity across all lines. Sale price
// wins over regular price; this is the figure shown at cart, checkout and
// order summary alike.
func (u *CartUsecase) Total() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()

	var total float64
	for i := range u.lines {
		total += u.lines[i].LineTotal()
	}
	return total
}

// Count is the sum of quantities, not the number of distinct lines. It
// feeds the cart badge.
func (u *CartUsecase) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	count := 0
	for i := range u.lines {
		count += u.lines[i].Quantity
	}
	return count
}

// Items returns a copy of the cart lines in insertion order.
func (u *CartUsecase) Items() []domain.CartLine {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.copyLines()
}

// HasPhysical reports whether any line needs shipping.
func (u *CartUsecase) HasPhysical() bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	for i := range u.lines {
		if !u.lines[i].IsDigital {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the cart has no lines.
func (u *CartUsecase) IsEmpty() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.lines) == 0
}

func (u *CartUsecase) removeLocked(productID string) error {
	updated := make([]domain.CartLine, 0, len(u.lines))
	for _, line := range u.lines {
		if line.ProductID != productID {
			updated = append(updated, line)
		}
	}
	if err := u.persist(updated); err != nil {
		return err
	}
	u.lines = updated
	return nil
}

func (u *CartUsecase) copyLines() []domain.CartLine {
	out := make([]domain.CartLine, len(u.lines))
	copy(out, u.lines)
	return out
}

func (u *CartUsecase) capQuantity(q int) int {
	if u.maxQuantity > 0 && q > u.maxQuantity {
		return u.maxQuantity
	}
	return q
}

func (u *CartUsecase) persist(lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return u.store.Set(localstore.KeyCart, string(raw))
}
