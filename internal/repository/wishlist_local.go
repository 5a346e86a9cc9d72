package repository

import (
	"context"
	"fmt"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/localstore"
	"nothingelse-storefront/pkg/logger"

	"github.com/goccy/go-json"
)

// LocalWishlistStore keeps the guest wishlist in the local store. It is
// never merged into an account wishlist automatically.
type LocalWishlistStore struct {
	store localstore.Store
}

func NewLocalWishlistStore(store localstore.Store) *LocalWishlistStore {
	return &LocalWishlistStore{store: store}
}

func (s *LocalWishlistStore) Load(ctx context.Context) ([]domain.WishlistItem, string, error) {
	raw, ok := s.store.Get(localstore.KeyWishlist)
	if !ok || raw == "" {
		return nil, "", nil
	}

	var items []domain.WishlistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn().Err(err).Msg("discarding corrupt saved wishlist")
		return nil, "", nil
	}
	// Guest wishlists have no share id.
	return items, "", nil
}

func (s *LocalWishlistStore) Save(ctx context.Context, items []domain.WishlistItem) error {
	if items == nil {
		items = []domain.WishlistItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode wishlist: %w", err)
	}
	return s.store.Set(localstore.KeyWishlist, string(raw))
}
