package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/renthaven/listing-service/internal/listing/domain"
)

// listingDocument is the BSON shape of a listing. Images are stored exactly
// as produced at write time; the URL-or-key distinction is re-established in
// toDomain, once, when the record leaves the store.
type listingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Price       float64            `bson:"price"`
	Location    string             `bson:"location"`
	Description string             `bson:"description"`
	Bedrooms    int                `bson:"bedrooms"`
	Bathrooms   float64            `bson:"bathrooms"`
	Images      []string           `bson:"images"`
	LandlordID  string             `bson:"landlord_id"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func fromDomain(l *domain.Listing, id primitive.ObjectID) *listingDocument {
	return &listingDocument{
		ID:          id,
		Title:       l.Title,
		Price:       l.Price,
		Location:    l.Location,
		Description: l.Description,
		Bedrooms:    l.Bedrooms,
		Bathrooms:   l.Bathrooms,
		Images:      l.ImageURLs(),
		LandlordID:  l.LandlordID,
		CreatedAt:   l.CreatedAt,
	}
}

func (d *listingDocument) toDomain() *domain.Listing {
	images := make([]domain.ImageRef, len(d.Images))
	for i, raw := range d.Images {
		images[i] = domain.ParseImageRef(raw)
	}
	return &domain.Listing{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Price:       d.Price,
		Location:    d.Location,
		Description: d.Description,
		Bedrooms:    d.Bedrooms,
		Bathrooms:   d.Bathrooms,
		Images:      images,
		LandlordID:  d.LandlordID,
		CreatedAt:   d.CreatedAt,
	}
}

// landlordDocument carries the subset of the landlord profile this service
// reads.
type landlordDocument struct {
	ID    string `bson:"_id"`
	Email string `bson:"email"`
}
