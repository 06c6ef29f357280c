package minio

import (
	"bytes"
	"context"
	"fmt"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/renthaven/listing-service/internal/platform/logger"
)

// Storage stores listing images in a single MinIO bucket and hands out
// durable public URLs for them. It implements domain.BlobStore.
type Storage struct {
	client *miniogo.Client
	bucket string
	logger *logger.Logger
}

func New(ctx context.Context, endpoint, accessKey, secretKey, bucket string, useSSL bool, log *logger.Logger) (*Storage, error) {
	log.Info("Initializing MinIO storage", "endpoint", endpoint, "bucket", bucket, "use_ssl", useSSL)

	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}

	if err := client.MakeBucket(ctx, bucket, miniogo.MakeBucketOptions{}); err != nil {
		exists, existsErr := client.BucketExists(ctx, bucket)
		if existsErr != nil || !exists {
			return nil, fmt.Errorf("make/verify bucket %s: %w", bucket, err)
		}
		log.Info("Storage: bucket already exists", "bucket", bucket)
	} else {
		log.Info("Storage: bucket created", "bucket", bucket)
	}

	return &Storage{client: client, bucket: bucket, logger: log}, nil
}

// Put writes a blob under key. Keys are write-once: the key generator keeps
// them unique, so an overwrite is never expected here.
func (s *Storage) Put(ctx context.Context, key string, data []byte) error {
	s.logger.Debug("Storage.Put: uploading object", "bucket", s.bucket, "key", key, "size_bytes", len(data))

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), miniogo.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("put object %s to bucket %s: %w", key, s.bucket, err)
	}
	return nil
}

// PublicURL builds the directly fetchable URL for a stored key:
// <endpoint>/<bucket>/<key>. An empty key is unresolvable and yields "".
func (s *Storage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
}
