package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/renthaven/listing-service/internal/adapter/rest/middleware"
	"github.com/renthaven/listing-service/internal/listing/domain"
	"github.com/renthaven/listing-service/internal/listing/upload"
	"github.com/renthaven/listing-service/internal/listing/usecase"
	"github.com/renthaven/listing-service/internal/platform/logger"
)

// maxSubmissionBytes caps the whole multipart submission; individual files
// are checked against the 5 MiB per-file limit by the validator.
const maxSubmissionBytes = 64 << 20

type Handler struct {
	submit *usecase.SubmitUsecase
	reader *usecase.ReaderUsecase
	logger *logger.Logger
}

func NewHandler(submit *usecase.SubmitUsecase, reader *usecase.ReaderUsecase, log *logger.Logger) *Handler {
	return &Handler{submit: submit, reader: reader, logger: log}
}

type listingResponse struct {
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

func toResponse(l *domain.Listing) listingResponse {
	return listingResponse{
		ID:          l.ID,
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

// HandleCreateListing accepts a multipart form with the listing fields and
// one or more files under "images", in display order.
func (h *Handler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	landlordID, ok := middleware.LandlordIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := r.ParseMultipartForm(maxSubmissionBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	candidates, err := readCandidates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded files: "+err.Error())
		return
	}

	input := usecase.ListingInput{
		Title:       r.FormValue("title"),
		Price:       r.FormValue("price"),
		Location:    r.FormValue("location"),
		Description: r.FormValue("description"),
		Bedrooms:    r.FormValue("bedrooms"),
		Bathrooms:   r.FormValue("bathrooms"),
		Images:      candidates,
	}

	progress := func(percent int) {
		h.logger.Info("HandleCreateListing: upload progress",
			"landlord_id", landlordID, "percent", percent)
	}

	listing, err := h.submit.Submit(r.Context(), input, landlordID, progress)
	if err != nil {
		h.writeSubmitError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(listing))
}

func (h *Handler) HandleListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.reader.FetchAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch listings")
		return
	}

	responses := make([]listingResponse, len(listings))
	for i, l := range listings {
		responses[i] = toResponse(l)
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *Handler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	listing, err := h.reader.FetchOne(r.Context(), id)
	if errors.Is(err, domain.ErrListingNotFound) {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch listing")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(listing))
}

func readCandidates(r *http.Request) ([]upload.Candidate, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File["images"]
	candidates := make([]upload.Candidate, 0, len(headers))
	for _, fh := range headers {
		file, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, upload.Candidate{
			Filename: fh.Filename,
			Size:     fh.Size,
			Data:     data,
		})
	}
	return candidates, nil
}

// writeSubmitError maps pipeline failures to HTTP statuses: anything the user
// can fix locally is a 400, a failed blob write is a 502, a failed insert
// after successful uploads is a 500.
func (h *Handler) writeSubmitError(w http.ResponseWriter, err error) {
	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		writeError(w, http.StatusBadRequest, fieldErr.Error())
		return
	}
	if errors.Is(err, domain.ErrNoImages) {
		writeError(w, http.StatusBadRequest, domain.ErrNoImages.Error())
		return
	}

	var uploadErr *upload.UploadError
	if errors.As(err, &uploadErr) {
		if errors.Is(err, upload.ErrFileTooLarge) || errors.Is(err, upload.ErrUnsupportedType) {
			writeError(w, http.StatusBadRequest, uploadErr.Error())
			return
		}
		writeError(w, http.StatusBadGateway, uploadErr.Error())
		return
	}

	var persistErr *domain.PersistenceError
	if errors.As(err, &persistErr) {
		writeError(w, http.StatusInternalServerError, "listing could not be saved, please resubmit")
		return
	}

	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
