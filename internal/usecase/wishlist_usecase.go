package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/notify"
	"nothingelse-storefront/internal/remote"
	"nothingelse-storefront/pkg/logger"
)

// AuthState is the slice of auth the wishlist needs: the current flag and
// a change subscription to trigger reloads.
type AuthState interface {
	IsAuthenticated() bool
	OnChange(fn func(authenticated bool))
}

// WishlistUsecase holds the saved items. Persistence is a strategy picked
// once per authentication change: the backend owns the account wishlist,
// the local store owns the guest one, and the two are never merged.
type WishlistUsecase struct {
	auth        AuthState
	api         *remote.Client
	remoteStore domain.WishlistStore
	localStore  domain.WishlistStore
	notifier    notify.Notifier
	siteOrigin  string

	mu         sync.Mutex
	items      []domain.WishlistItem
	shareID    string
	active     domain.WishlistStore
	generation uint64
}

func NewWishlistUsecase(auth AuthState, api *remote.Client, remoteStore, localStore domain.WishlistStore, notifier notify.Notifier, siteOrigin string) *WishlistUsecase {
	u := &WishlistUsecase{
		auth:        auth,
		api:         api,
		remoteStore: remoteStore,
		localStore:  localStore,
		notifier:    notifier,
		siteOrigin:  siteOrigin,
	}
	u.active = localStore

	// Login/logout swaps the backend and reloads. A guest list stays in
	// local storage untouched by the account list.
	auth.OnChange(func(bool) {
		if err := u.Load(context.Background()); err != nil {
			logger.Error().Err(err).Msg("wishlist reload after auth change failed")
		}
	})
	return u
}

// Load populates the items from the backend appropriate to the current
// authentication state. Each call bumps a generation counter; a result
// arriving after a newer load has started is discarded, so a slow stale
// response can never clobber fresher state.
func (u *WishlistUsecase) Load(ctx context.Context) error {
	u.mu.Lock()
	u.generation++
	gen := u.generation
	store := u.localStore
	if u.auth.IsAuthenticated() {
		store = u.remoteStore
	}
	u.active = store
	u.mu.Unlock()

	items, shareID, err := store.Load(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()
	if gen != u.generation {
		logger.Debug().Uint64("generation", gen).Msg("discarding stale wishlist load")
		return nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("wishlist load failed")
		return err
	}
	u.items = items
	u.shareID = shareID
	return nil
}

// AddItem saves a product reference. Adding a product already present is
// a no-op beyond an informational notice.
func (u *WishlistUsecase) AddItem(ctx context.Context, product *domain.Product) {
	u.mu.Lock()
	if u.containsLocked(product.ID) {
		u.mu.Unlock()
		u.notifier.Info("Item already in wishlist")
		return
	}

	u.items = append(u.items, domain.WishlistItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		SalePrice: product.SalePrice,
		Image:     product.FirstImage(),
		AddedAt:   time.Now().UTC(),
	})
	items := u.copyItemsLocked()
	store := u.active
	u.mu.Unlock()

	u.save(ctx, store, items)
	u.notifier.Success(fmt.Sprintf("%s added to wishlist", product.Name))
}

// RemoveItem drops the product from the wishlist.
func (u *WishlistUsecase) RemoveItem(ctx context.Context, productID string) {
	u.mu.Lock()
	filtered := make([]domain.WishlistItem, 0, len(u.items))
	for _, item := range u.items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	u.items = filtered
	items := u.copyItemsLocked()
	store := u.active
	u.mu.Unlock()

	u.save(ctx, store, items)
	u.notifier.Info("Item removed from wishlist")
}

// IsInWishlist is the membership predicate.
func (u *WishlistUsecase) IsInWishlist(productID string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.containsLocked(productID)
}

// Items returns a copy of the saved items.
func (u *WishlistUsecase) Items() []domain.WishlistItem {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.copyItemsLocked()
}

// ShareID returns the current share id, if one exists.
func (u *WishlistUsecase) ShareID() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.shareID
}

// Clear persists an empty list via the active backend.
func (u *WishlistUsecase) Clear(ctx context.Context) {
	u.mu.Lock()
	u.items = nil
	store := u.active
	u.mu.Unlock()

	u.save(ctx, store, []domain.WishlistItem{})
}

// GenerateShareLink creates (or refreshes) the share token and returns the
// fully-qualified share URL. Guests fail fast without a network call.
func (u *WishlistUsecase) GenerateShareLink(ctx context.Context) (string, error) {
	if !u.auth.IsAuthenticated() {
		u.notifier.Error("Please login to share your wishlist")
		return "", ErrNotAuthenticated
	}

	var resp struct {
		ShareID string `json:"shareId"`
	}
	if err := u.api.Post(ctx, "/wishlist/share", nil, &resp); err != nil {
		u.notifier.Error("Error generating share link")
		return "", err
	}

	u.mu.Lock()
	u.shareID = resp.ShareID
	u.mu.Unlock()

	return fmt.Sprintf("%s/wishlist/shared/%s", u.siteOrigin, resp.ShareID), nil
}

// GetSharedWishlist resolves a share token anonymously. A missing token
// yields (nil, nil) so the caller can render "wishlist not found".
func (u *WishlistUsecase) GetSharedWishlist(ctx context.Context, shareID string) (*domain.SharedWishlist, error) {
	var shared domain.SharedWishlist
	if err := u.api.Get(ctx, "/wishlist/shared/"+shareID, &shared); err != nil {
		if remote.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &shared, nil
}

// save applies the optimistic update's persistence leg. Failures are
// logged and swallowed: the in-memory state stands and may diverge from
// the backend until the next load. Known weak-consistency point; the
// wishlist is not payment-critical.
func (u *WishlistUsecase) save(ctx context.Context, store domain.WishlistStore, items []domain.WishlistItem) {
	if err := store.Save(ctx, items); err != nil {
		logger.Error().Err(err).Msg("wishlist save failed")
	}
}

func (u *WishlistUsecase) containsLocked(productID string) bool {
	for i := range u.items {
		if u.items[i].ProductID == productID {
			return true
		}
	}
	return false
}

func (u *WishlistUsecase) copyItemsLocked() []domain.WishlistItem {
	out := make([]domain.WishlistItem, len(u.items))
	copy(out, u.items)
	return out
}
