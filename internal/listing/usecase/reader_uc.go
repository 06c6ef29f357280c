package usecase

import (
	"context"
	"errors"

	"github.com/renthaven/listing-service/internal/listing/domain"
	"github.com/renthaven/listing-service/internal/platform/logger"
)

// ListingCache is the optional read-through cache for single-listing reads.
// Get returns (nil, nil) on a miss.
type ListingCache interface {
	Get(ctx context.Context, id string) (*domain.Listing, error)
	Set(ctx context.Context, listing *domain.Listing) error
}

type ReaderUsecase struct {
	repo     domain.ListingRepository
	cache    ListingCache
	resolver *URLResolver
	logger   *logger.Logger
}

func NewReaderUsecase(repo domain.ListingRepository, cache ListingCache, resolver *URLResolver, log *logger.Logger) *ReaderUsecase {
	return &ReaderUsecase{repo: repo, cache: cache, resolver: resolver, logger: log}
}

// FetchAll returns every listing, newest first, with all image references
// resolved to displayable URLs.
func (uc *ReaderUsecase) FetchAll(ctx context.Context) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("ReaderUsecase.FetchAll: query failed", "error", err.Error())
		return nil, err
	}
	for _, l := range listings {
		uc.resolver.ResolveListing(l)
	}
	return listings, nil
}

// FetchOne returns a single listing with resolved image URLs, or
// domain.ErrListingNotFound. Cache failures fall through to the repository.
func (uc *ReaderUsecase) FetchOne(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, id)
		if err != nil {
			uc.logger.Warn("ReaderUsecase.FetchOne: cache read failed", "listing_id", id, "error", err.Error())
		} else if cached != nil {
			uc.resolver.ResolveListing(cached)
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			uc.logger.Warn("ReaderUsecase.FetchOne: listing not found", "listing_id", id)
			return nil, domain.ErrListingNotFound
		}
		uc.logger.Error("ReaderUsecase.FetchOne: query failed", "listing_id", id, "error", err.Error())
		return nil, err
	}

	if uc.cache != nil {
		// Records are immutable once written, so caching the raw form is safe.
		if err := uc.cache.Set(ctx, listing); err != nil {
			uc.logger.Warn("ReaderUsecase.FetchOne: cache write failed", "listing_id", id, "error", err.Error())
		}
	}

	uc.resolver.ResolveListing(listing)
	return listing, nil
}
