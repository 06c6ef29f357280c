package domain

import "time"

// Listing is a published rental property. Records are created once by the
// submission pipeline and are read-only afterwards; Images keeps the order the
// landlord selected, with the first entry used as the cover image.
type Listing struct {
	ID          string
	Title       string
	Price       float64
	Location    string
	Description string
	Bedrooms    int
	Bathrooms   float64
	Images      []ImageRef
	LandlordID  string
	CreatedAt   time.Time
}

// ImageURLs returns the raw string form of every image reference, in order.
func (l *Listing) ImageURLs() []string {
	urls := make([]string, len(l.Images))
	for i, ref := range l.Images {
		urls[i] = ref.String()
	}
	return urls
}
