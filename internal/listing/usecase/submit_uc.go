package usecase

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/renthaven/listing-service/internal/listing/domain"
	"github.com/renthaven/listing-service/internal/listing/upload"
	"github.com/renthaven/listing-service/internal/platform/logger"
)

// SubjectListingCreated is published after every successful insert.
const SubjectListingCreated = "listing.created"

// EventPublisher matches the NATS adapter.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Notifier sends the landlord a confirmation once their listing is live.
type Notifier interface {
	SendListingPublishedEmail(toEmail, listingTitle string) error
}

// ListingCreatedEvent is the payload for SubjectListingCreated.
type ListingCreatedEvent struct {
	EventID    string `json:"event_id"`
	ListingID  string `json:"listing_id"`
	LandlordID string `json:"landlord_id"`
	Title      string `json:"title"`
	CoverURL   string `json:"cover_url,omitempty"`
}

// ListingInput carries the raw form fields of a submission. Scalars arrive as
// strings straight from the form and are parsed here, before any upload.
type ListingInput struct {
	Title       string
	Price       string
	Location    string
	Description string
	Bedrooms    string
	Bathrooms   string
	Images      []upload.Candidate
}

type SubmitUsecase struct {
	repo      domain.ListingRepository
	sequencer *upload.Sequencer
	publisher EventPublisher
	directory domain.LandlordDirectory
	notifier  Notifier
	newID     func() string
	logger    *logger.Logger
}

func NewSubmitUsecase(
	repo domain.ListingRepository,
	sequencer *upload.Sequencer,
	publisher EventPublisher,
	directory domain.LandlordDirectory,
	notifier Notifier,
	newEventID func() string,
	log *logger.Logger,
) *SubmitUsecase {
	return &SubmitUsecase{
		repo:      repo,
		sequencer: sequencer,
		publisher: publisher,
		directory: directory,
		notifier:  notifier,
		newID:     newEventID,
		logger:    log,
	}
}

// Submit validates the form input, uploads every image in order and inserts
// the listing. Field and image validation happen before any network call; an
// upload failure aborts the submission without rolling back earlier blobs; an
// insert failure is reported as-is with no retry. The created-event publish
// and the landlord email run after the insert and never fail the submission.
func (uc *SubmitUsecase) Submit(ctx context.Context, input ListingInput, landlordID string, progress upload.ProgressFunc) (*domain.Listing, error) {
	uc.logger.Info("SubmitUsecase.Submit: new submission",
		"landlord_id", landlordID, "title", input.Title, "image_count", len(input.Images))

	fields, err := parseInput(input)
	if err != nil {
		uc.logger.Warn("SubmitUsecase.Submit: input rejected", "landlord_id", landlordID, "error", err.Error())
		return nil, err
	}

	if len(input.Images) == 0 {
		uc.logger.Warn("SubmitUsecase.Submit: submission without images", "landlord_id", landlordID)
		return nil, domain.ErrNoImages
	}

	urls, err := uc.sequencer.Upload(ctx, input.Images, progress)
	if err != nil {
		uc.logger.Error("SubmitUsecase.Submit: upload failed", "landlord_id", landlordID, "error", err.Error())
		return nil, err
	}

	images := make([]domain.ImageRef, len(urls))
	for i, url := range urls {
		images[i] = domain.URLRef(url)
	}

	listing := &domain.Listing{
		Title:       fields.title,
		Price:       fields.price,
		Location:    fields.location,
		Description: fields.description,
		Bedrooms:    fields.bedrooms,
		Bathrooms:   fields.bathrooms,
		Images:      images,
		LandlordID:  landlordID,
	}

	if err := uc.repo.Insert(ctx, listing); err != nil {
		uc.logger.Error("SubmitUsecase.Submit: insert failed",
			"landlord_id", landlordID, "uploaded_images", len(urls), "error", err.Error())
		return nil, &domain.PersistenceError{Err: err}
	}

	uc.logger.Info("SubmitUsecase.Submit: listing published",
		"listing_id", listing.ID, "landlord_id", landlordID, "images", len(listing.Images))

	uc.announce(ctx, listing)
	return listing, nil
}

// announce emits the created event and the confirmation email. Both are
// best-effort: the listing is already durable.
func (uc *SubmitUsecase) announce(ctx context.Context, listing *domain.Listing) {
	if uc.publisher != nil {
		event := ListingCreatedEvent{
			EventID:    uc.newID(),
			ListingID:  listing.ID,
			LandlordID: listing.LandlordID,
			Title:      listing.Title,
		}
		if len(listing.Images) > 0 {
			event.CoverURL = listing.Images[0].String()
		}
		if err := uc.publisher.Publish(ctx, SubjectListingCreated, event); err != nil {
			uc.logger.Warn("SubmitUsecase: failed to publish created event",
				"listing_id", listing.ID, "error", err.Error())
		}
	}

	if uc.notifier == nil || uc.directory == nil {
		return
	}
	email, err := uc.directory.EmailByID(ctx, listing.LandlordID)
	if err != nil {
		uc.logger.Warn("SubmitUsecase: landlord email lookup failed",
			"landlord_id", listing.LandlordID, "error", err.Error())
		return
	}
	if err := uc.notifier.SendListingPublishedEmail(email, listing.Title); err != nil {
		uc.logger.Warn("SubmitUsecase: failed to send confirmation email",
			"listing_id", listing.ID, "error", err.Error())
	}
}

type parsedFields struct {
	title       string
	price       float64
	location    string
	description string
	bedrooms    int
	bathrooms   float64
}

func parseInput(input ListingInput) (parsedFields, error) {
	var f parsedFields

	f.title = strings.TrimSpace(input.Title)
	if f.title == "" {
		return f, &domain.FieldError{Field: "title", Reason: "required"}
	}
	f.location = strings.TrimSpace(input.Location)
	if f.location == "" {
		return f, &domain.FieldError{Field: "location", Reason: "required"}
	}
	f.description = strings.TrimSpace(input.Description)
	if f.description == "" {
		return f, &domain.FieldError{Field: "description", Reason: "required"}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(input.Price), 64)
	if err != nil {
		return f, &domain.FieldError{Field: "price", Reason: "must be a number"}
	}
	if price < 0 {
		return f, &domain.FieldError{Field: "price", Reason: "must not be negative"}
	}
	f.price = price

	bedrooms, err := strconv.Atoi(strings.TrimSpace(input.Bedrooms))
	if err != nil {
		return f, &domain.FieldError{Field: "bedrooms", Reason: "must be an integer"}
	}
	if bedrooms < 0 {
		return f, &domain.FieldError{Field: "bedrooms", Reason: "must not be negative"}
	}
	f.bedrooms = bedrooms

	bathrooms, err := strconv.ParseFloat(strings.TrimSpace(input.Bathrooms), 64)
	if err != nil {
		return f, &domain.FieldError{Field: "bathrooms", Reason: "must be a number"}
	}
	if bathrooms < 0 {
		return f, &domain.FieldError{Field: "bathrooms", Reason: "must not be negative"}
	}
	// Bathrooms come in half-room increments (1, 1.5, 2, ...).
	if math.Abs(bathrooms*2-math.Round(bathrooms*2)) > 1e-9 {
		return f, &domain.FieldError{Field: "bathrooms", Reason: "must be in 0.5 increments"}
	}
	f.bathrooms = bathrooms

	return f, nil
}
