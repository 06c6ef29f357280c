package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/renthaven/listing-service/internal/listing/domain"
)

const listingTTL = 1 * time.Hour

// cachedListing is the JSON shape kept in Redis. Image references are stored
// as raw strings and re-classified on the way out, same as at the Mongo
// boundary.
type cachedListing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   float64   `json:"bathrooms"`
	Images      []string  `json:"images"`
	LandlordID  string    `json:"landlord_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListingCache struct {
	client *redis.Client
}

func NewListingCache(addr string) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &ListingCache{client: client}, nil
}

func (c *ListingCache) Get(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, "listing:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var cached cachedListing
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	images := make([]domain.ImageRef, len(cached.Images))
	for i, raw := range cached.Images {
		images[i] = domain.ParseImageRef(raw)
	}
	return &domain.Listing{
		ID:          cached.ID,
		Title:       cached.Title,
		Price:       cached.Price,
		Location:    cached.Location,
		Description: cached.Description,
		Bedrooms:    cached.Bedrooms,
		Bathrooms:   cached.Bathrooms,
		Images:      images,
		LandlordID:  cached.LandlordID,
		CreatedAt:   cached.CreatedAt,
	}, nil
}

func (c *ListingCache) Set(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(cachedListing{
		ID:          listing.ID,
		Title:       listing.Title,
		Price:       listing.Price,
		Location:    listing.Location,
		Description: listing.Description,
		Bedrooms:    listing.Bedrooms,
		Bathrooms:   listing.Bathrooms,
		Images:      listing.ImageURLs(),
		LandlordID:  listing.LandlordID,
		CreatedAt:   listing.CreatedAt,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "listing:"+listing.ID, data, listingTTL).Err()
}
