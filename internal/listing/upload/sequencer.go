package upload

import (
	"context"
	"fmt"
	"math"

	"github.com/renthaven/listing-service/internal/listing/domain"
	"github.com/renthaven/listing-service/internal/platform/logger"
)

// UploadError reports the candidate that broke a batch upload. Index refers
// to the position in the input slice.
type UploadError struct {
	Index int
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload image %d: %v", e.Index, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// ProgressFunc receives the overall completion percentage after each
// successful upload.
type ProgressFunc func(percent int)

// Sequencer drives a batch of candidates through validation, key generation
// and blob storage, one file at a time.
type Sequencer struct {
	store  domain.BlobStore
	logger *logger.Logger
}

func NewSequencer(store domain.BlobStore, log *logger.Logger) *Sequencer {
	return &Sequencer{store: store, logger: log}
}

// Upload processes candidates strictly in input order and returns their
// public URLs in that same order; the first URL is the future cover image.
// The first validation or storage failure aborts the whole batch with an
// *UploadError. Blobs uploaded by earlier iterations are not rolled back;
// an orphaned blob is an accepted tradeoff, a half-built listing is not.
func (s *Sequencer) Upload(ctx context.Context, candidates []Candidate, progress ProgressFunc) ([]string, error) {
	total := len(candidates)
	urls := make([]string, 0, total)

	for i, c := range candidates {
		if err := Validate(c); err != nil {
			s.logger.Warn("Sequencer.Upload: candidate rejected",
				"index", i, "filename", c.Filename, "reason", err.Error())
			return nil, &UploadError{Index: i, Err: err}
		}

		key := GenerateKey(c.Filename)
		s.logger.Debug("Sequencer.Upload: uploading file",
			"index", i, "total", total, "key", key, "size_bytes", c.Size)

		if err := s.store.Put(ctx, key, c.Data); err != nil {
			s.logger.Error("Sequencer.Upload: blob write failed",
				"index", i, "key", key, "error", err.Error())
			return nil, &UploadError{Index: i, Err: err}
		}

		urls = append(urls, s.store.PublicURL(key))

		if progress != nil {
			progress(int(math.Round(float64(i+1) / float64(total) * 100)))
		}
	}

	return urls, nil
}
