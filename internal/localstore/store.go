// Package localstore is the client's durable key-value store, the
// equivalent of browser localStorage. It holds the session token, the
// admin flag, the cart and the guest wishlist as plain JSON strings
// under fixed keys.
package localstore

// Fixed keys. Values are opaque strings; cart and wishlist hold
// serialized JSON arrays.
const (
	KeyToken    = "token"
	KeyIsAdmin  = "isAdmin"
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
)

// Store is the persistence adapter contract. Implementations are safe for
// use from a single client instance; the file store additionally guards
// concurrent access with a mutex.
type Store interface {
	// Get retrieves a value.
	// Returns value, true if the key is present.
	Get(key string) (string, bool)

	// Set writes a value durably before returning.
	Set(key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(key string) error

	// Flush removes all keys.
	Flush() error
}
