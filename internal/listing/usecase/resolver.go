package usecase

import (
	"github.com/renthaven/listing-service/internal/listing/domain"
)

// URLResolver turns stored image references into displayable URLs. Listing
// records hold either full URLs (written by this pipeline) or bare storage
// keys (written by earlier tooling); both must render without a migration.
type URLResolver struct {
	store domain.BlobStore
}

func NewURLResolver(store domain.BlobStore) *URLResolver {
	return &URLResolver{store: store}
}

// Resolve returns a full URL unchanged and looks bare keys up in the blob
// store. An unresolvable key yields ""; the caller renders a placeholder
// instead of failing the whole listing over one bad reference.
func (r *URLResolver) Resolve(ref domain.ImageRef) string {
	if ref.IsURL() {
		return ref.String()
	}
	return r.store.PublicURL(ref.String())
}

// ResolveListing rewrites every image reference on the listing to its
// resolved URL form, preserving order.
func (r *URLResolver) ResolveListing(l *domain.Listing) {
	for i, ref := range l.Images {
		l.Images[i] = domain.URLRef(r.Resolve(ref))
	}
}
