package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renthaven/listing-service/internal/platform/logger"
)

type fakeBlobStore struct {
	puts      []string
	failAfter int // fail the put at this index, -1 disables
	putErr    error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{failAfter: -1}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, _ []byte) error {
	if f.failAfter >= 0 && len(f.puts) == f.failAfter {
		return f.putErr
	}
	f.puts = append(f.puts, key)
	return nil
}

func (f *fakeBlobStore) PublicURL(key string) string {
	return "https://cdn.test/property-images/" + key
}

func quietLogger() *logger.Logger {
	log := logger.NewWithConfig(&logger.Config{Level: "error", Format: "text"})
	log.SetOutput(io.Discard)
	return log
}

func TestSequencer_UploadsAllInOrder(t *testing.T) {
	store := newFakeBlobStore()
	seq := NewSequencer(store, quietLogger())

	urls, err := seq.Upload(context.Background(), []Candidate{
		{Filename: "a.jpg", Size: 1 << 20, Data: []byte("a")},
		{Filename: "b.png", Size: 2 << 20, Data: []byte("b")},
		{Filename: "c.webp", Size: 3 << 20, Data: []byte("c")},
	}, nil)

	require.NoError(t, err)
	require.Len(t, urls, 3)
	require.Len(t, store.puts, 3)
	// URL order must follow input order: the first URL is the cover image.
	assert.True(t, strings.HasSuffix(urls[0], ".jpg"))
	assert.True(t, strings.HasSuffix(urls[1], ".png"))
	assert.True(t, strings.HasSuffix(urls[2], ".webp"))
	for i, key := range store.puts {
		assert.Equal(t, store.PublicURL(key), urls[i])
	}
}

func TestSequencer_ReportsProgressPerFile(t *testing.T) {
	store := newFakeBlobStore()
	seq := NewSequencer(store, quietLogger())

	var reported []int
	_, err := seq.Upload(context.Background(), []Candidate{
		{Filename: "a.jpg", Size: 1},
		{Filename: "b.jpg", Size: 1},
		{Filename: "c.jpg", Size: 1},
	}, func(percent int) { reported = append(reported, percent) })

	require.NoError(t, err)
	assert.Equal(t, []int{33, 67, 100}, reported)
}

func TestSequencer_ValidationFailureAbortsBatch(t *testing.T) {
	store := newFakeBlobStore()
	seq := NewSequencer(store, quietLogger())

	urls, err := seq.Upload(context.Background(), []Candidate{
		{Filename: "a.jpg", Size: 1 << 20},
		{Filename: "b.exe", Size: 1 << 20},
		{Filename: "c.jpg", Size: 1 << 20},
	}, nil)

	require.Error(t, err)
	assert.Nil(t, urls)

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, 1, uploadErr.Index)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	// a.jpg was already stored before the batch aborted; it stays behind.
	require.Len(t, store.puts, 1)
	assert.True(t, strings.HasSuffix(store.puts[0], ".jpg"))
}

func TestSequencer_BlobWriteFailureReportsIndex(t *testing.T) {
	store := newFakeBlobStore()
	store.failAfter = 2
	store.putErr = errors.New("bucket unavailable")
	seq := NewSequencer(store, quietLogger())

	var reported []int
	urls, err := seq.Upload(context.Background(), []Candidate{
		{Filename: "a.jpg", Size: 1},
		{Filename: "b.jpg", Size: 1},
		{Filename: "c.jpg", Size: 1},
		{Filename: "d.jpg", Size: 1},
	}, func(percent int) { reported = append(reported, percent) })

	require.Error(t, err)
	assert.Nil(t, urls)

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, 2, uploadErr.Index)
	assert.ErrorIs(t, err, store.putErr)

	// Progress stops at the last completed file, no fabricated completions.
	assert.Equal(t, []int{25, 50}, reported)
	assert.Len(t, store.puts, 2)
}

func TestSequencer_EmptyBatch(t *testing.T) {
	seq := NewSequencer(newFakeBlobStore(), quietLogger())
	urls, err := seq.Upload(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, urls)
}
