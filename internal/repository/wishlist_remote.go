// Package repository holds the wishlist persistence backends selected by
// authentication state: the backend API for account wishlists, the local
// store for guests.
package repository

import (
	"context"

	"nothingelse-storefront/internal/domain"
	"nothingelse-storefront/internal/remote"
)

// RemoteWishlistStore keeps the canonical wishlist on the backend, keyed
// by the authenticated user.
type RemoteWishlistStore struct {
	api *remote.Client
}

func NewRemoteWishlistStore(api *remote.Client) *RemoteWishlistStore {
	return &RemoteWishlistStore{api: api}
}

type wishlistResponse struct {
	Items   []domain.WishlistItem `json:"items"`
	ShareID string                `json:"shareId"`
}

func (s *RemoteWishlistStore) Load(ctx context.Context) ([]domain.WishlistItem, string, error) {
	var resp wishlistResponse
	if err := s.api.Get(ctx, "/wishlist", &resp); err != nil {
		return nil, "", err
	}
	return resp.Items, resp.ShareID, nil
}

func (s *RemoteWishlistStore) Save(ctx context.Context, items []domain.WishlistItem) error {
	body := map[string]interface{}{"items": items}
	return s.api.Post(ctx, "/wishlist", body, nil)
}
