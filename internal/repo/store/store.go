// Package store is the persistence boundary for the storefront's
// client-side state: cart lines, wishlist ids and the current user
// session, each held as a single JSON document under a fixed key.
// Writes are last-writer-wins; there is no cross-process locking.
package store

import "context"

const (
	KeyCart        = "cart"
	KeyWishlist    = "wishlist"
	KeyCurrentUser = "currentUser"
)

type Store interface {
	// Load returns the document stored under key, or
	// models.ErrNotFound when the key is absent.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
