package domain

import (
	"context"
	"time"
)

// WishlistItem is a saved product reference. Uniqueness is by product id;
// a duplicate add is a no-op.
type WishlistItem struct {
	ProductID string   `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	SalePrice *float64 `json:"salePrice,omitempty"`
	Image     string   `json:"image,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// SharedWishlist is the read-only snapshot resolvable by anyone holding
// the share token.
type SharedWishlist struct {
	OwnerName string         `json:"ownerName"`
	Items     []WishlistItem `json:"items"`
}

// WishlistStore abstracts where a wishlist is persisted. The account
// wishlist lives on the backend; the guest wishlist lives in local
// storage. The implementation is picked once per authentication change,
// never branched per call.
type WishlistStore interface {
	// Load returns the stored items and, for the remote store, any
	// existing share id.
	Load(ctx context.Context) ([]WishlistItem, string, error)
	Save(ctx context.Context, items []WishlistItem) error
}
