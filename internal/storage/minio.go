package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/maakle/bombo-go/pkg/logger"
)

const (
	// presignExpiry bounds how long a retrieval URL stays valid.
	presignExpiry = time.Hour

	// cacheControl is applied to every uploaded sticker; objects are
	// immutable once written.
	cacheControl = "public, max-age=31536000"

	contentType = "image/png"
)

// MinioConfig encapsulates the connection info for the S3-compatible store.
type MinioConfig struct {
	Host      string
	Port      int
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// MinioStore implements ObjectStorage on top of a MinIO bucket. One instance
// is constructed at startup and shared by all pipeline invocations; the
// underlying client is safe for concurrent use.
type MinioStore struct {
	client *minio.Client
	bucket string
	fetch  *http.Client
}

// NewMinioStore builds the client and ensures the bucket exists. A failure
// here is fatal to startup; the bot must not run against a missing bucket.
func NewMinioStore(ctx context.Context, cfg MinioConfig) (*MinioStore, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("minio host must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket must be provided")
	}

	port := cfg.Port
	if port == 0 {
		port = 443
	}

	client, err := minio.New(fmt.Sprintf("%s:%d", cfg.Host, port), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build minio client: %w", err)
	}

	s := &MinioStore{
		client: client,
		bucket: cfg.Bucket,
		fetch:  &http.Client{Timeout: 60 * time.Second},
	}

	if err := s.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}

	return s, nil
}

// ensureBucket checks existence and creates the bucket when absent.
// Idempotent; called once at construction.
func (s *MinioStore) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("%w: checking bucket %s: %v", ErrStorage, s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return fmt.Errorf("%w: creating bucket %s: %v", ErrStorage, s.bucket, err)
		}
		logger.Log.Info().Str("bucket", s.bucket).Msg("Bucket created")
	}
	return nil
}

// StoreImage downloads the generated image, uploads it under fileName and
// returns a presigned retrieval URL. No cleanup is attempted on a partial
// failure; the next identical prompt simply writes a new key.
func (s *MinioStore) StoreImage(ctx context.Context, sourceURL, fileName string) (string, error) {
	data, err := s.fetchImage(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.bucket, fileName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: cacheControl,
	})
	if err != nil {
		return "", fmt.Errorf("%w: uploading %s: %v", ErrStorage, fileName, err)
	}

	logger.Log.Info().
		Str("bucket", s.bucket).
		Str("key", fileName).
		Int("bytes", len(data)).
		Msg("Image stored")

	return s.ImageURL(ctx, fileName)
}

// ImageURL issues a presigned GET URL valid for one hour. URLs are never
// cached; each call signs anew.
func (s *MinioStore) ImageURL(ctx context.Context, fileName string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, fileName, presignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("%w: presigning %s: %v", ErrStorage, fileName, err)
	}
	return u.String(), nil
}

// DeleteImage removes the object. Best effort, no retry.
func (s *MinioStore) DeleteImage(ctx context.Context, fileName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, fileName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: deleting %s: %v", ErrStorage, fileName, err)
	}
	return nil
}

// ListImages lists stored objects under the given prefix.
func (s *MinioStore) ListImages(ctx context.Context, prefix string) ([]ImageInfo, error) {
	results := make([]ImageInfo, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: listing prefix %q: %v", ErrStorage, prefix, obj.Err)
		}
		results = append(results, ImageInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	return results, nil
}

func (s *MinioStore) fetchImage(ctx context.Context, sourceURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", ErrFetch, sourceURL, err)
	}

	resp, err := s.fetch.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, sourceURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body from %s: %v", ErrFetch, sourceURL, err)
	}
	return data, nil
}

var _ ObjectStorage = (*MinioStore)(nil)
