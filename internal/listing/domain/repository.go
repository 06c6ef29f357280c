package domain

import "context"

type ListingRepository interface {
	// Insert stores a new listing and fills in its generated ID and CreatedAt.
	Insert(ctx context.Context, listing *Listing) error
	// FindAll returns every listing, newest first.
	FindAll(ctx context.Context) ([]*Listing, error)
	// FindByID returns ErrListingNotFound for unknown ids.
	FindByID(ctx context.Context, id string) (*Listing, error)
}

// BlobStore is the object-storage port used by the upload and resolution
// pipeline. Keys are write-once; PublicURL is a pure lookup that returns ""
// for a key it cannot resolve.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	PublicURL(key string) string
}

// LandlordDirectory resolves a landlord id to a contact email for
// post-publication notifications.
type LandlordDirectory interface {
	EmailByID(ctx context.Context, landlordID string) (string, error)
}
