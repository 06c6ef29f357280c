package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renthaven/listing-service/internal/listing/domain"
)

type fakeCache struct {
	entries map[string]*domain.Listing
	getErr  error
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*domain.Listing{}}
}

func (c *fakeCache) Get(_ context.Context, id string) (*domain.Listing, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[id], nil
}

func (c *fakeCache) Set(_ context.Context, l *domain.Listing) error {
	c.sets++
	copied := *l
	copied.Images = append([]domain.ImageRef(nil), l.Images...)
	c.entries[l.ID] = &copied
	return nil
}

type orderedRepo struct {
	listings []*domain.Listing
}

func (r *orderedRepo) Insert(_ context.Context, l *domain.Listing) error { return nil }

func (r *orderedRepo) FindAll(_ context.Context) ([]*domain.Listing, error) {
	return r.listings, nil
}

func (r *orderedRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	for _, l := range r.listings {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrListingNotFound
}

func refs(raw ...string) []domain.ImageRef {
	out := make([]domain.ImageRef, len(raw))
	for i, s := range raw {
		out[i] = domain.ParseImageRef(s)
	}
	return out
}

func TestFetchAll_ResolvesMixedRecords(t *testing.T) {
	store := newMapBlobStore()
	store.urls["legacy.jpg"] = "https://cdn/legacy.jpg"

	// One legacy record holding a bare key, one pipeline record holding a URL.
	repo := &orderedRepo{listings: []*domain.Listing{
		{ID: "new", Images: refs("https://cdn/x.jpg"), CreatedAt: time.Now()},
		{ID: "old", Images: refs("legacy.jpg"), CreatedAt: time.Now().Add(-time.Hour)},
	}}
	uc := NewReaderUsecase(repo, nil, NewURLResolver(store), quietLogger())

	listings, err := uc.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, []string{"https://cdn/x.jpg"}, listings[0].ImageURLs())
	assert.Equal(t, []string{"https://cdn/legacy.jpg"}, listings[1].ImageURLs())
}

func TestFetchAll_PreservesImageOrderPerRecord(t *testing.T) {
	store := newMapBlobStore()
	store.urls["b.jpg"] = "https://cdn/b.jpg"

	repo := &orderedRepo{listings: []*domain.Listing{
		{ID: "l1", Images: refs("https://cdn/a.jpg", "b.jpg", "https://cdn/c.jpg")},
	}}
	uc := NewReaderUsecase(repo, nil, NewURLResolver(store), quietLogger())

	listings, err := uc.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.jpg", "https://cdn/b.jpg", "https://cdn/c.jpg"},
		listings[0].ImageURLs())
}

func TestFetchOne_NotFound(t *testing.T) {
	uc := NewReaderUsecase(&orderedRepo{}, nil, NewURLResolver(newMapBlobStore()), quietLogger())
	_, err := uc.FetchOne(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestFetchOne_CachesAndResolves(t *testing.T) {
	store := newMapBlobStore()
	store.urls["k.jpg"] = "https://cdn/k.jpg"
	repo := &orderedRepo{listings: []*domain.Listing{{ID: "l1", Images: refs("k.jpg")}}}
	cache := newFakeCache()
	uc := NewReaderUsecase(repo, cache, NewURLResolver(store), quietLogger())

	first, err := uc.FetchOne(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/k.jpg"}, first.ImageURLs())
	assert.Equal(t, 1, cache.sets)

	// Second read is served from the cache and resolves identically.
	second, err := uc.FetchOne(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, first.ImageURLs(), second.ImageURLs())
	assert.Equal(t, 1, cache.sets)
}

func TestFetchOne_CacheFailureFallsThrough(t *testing.T) {
	repo := &orderedRepo{listings: []*domain.Listing{{ID: "l1", Images: refs("https://cdn/a.jpg")}}}
	cache := newFakeCache()
	cache.getErr = errors.New("redis gone")
	uc := NewReaderUsecase(repo, cache, NewURLResolver(newMapBlobStore()), quietLogger())

	listing, err := uc.FetchOne(context.Background(), "l1")
	require.NoError(t, err)
	assert.Equal(t, "l1", listing.ID)
}
