package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
)

// Config describes the S3-compatible bucket holding client documents.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	UseSSL          bool
}

// MinioStore implements ports.DocumentStore on top of minio-go.
type MinioStore struct {
	raw    *minio.Client
	bucket string
	newID  func() string
}

func NewMinioStore(ctx context.Context, cfg Config) (*MinioStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}

	return &MinioStore{
		raw:    client,
		bucket: cfg.Bucket,
		newID:  func() string { return uuid.NewString() },
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *MinioStore) EnsureBucket(ctx context.Context, region string) error {
	exists, err := s.raw.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("storage: bucket exists: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.raw.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("storage: make bucket %q: %w", s.bucket, err)
	}
	return nil
}

// Ping checks that the bucket is reachable, used by the readiness probe.
func (s *MinioStore) Ping(ctx context.Context) error {
	_, err := s.raw.BucketExists(ctx, s.bucket)
	return err
}

func (s *MinioStore) Put(ctx context.Context, prefix string, up ports.Upload) (string, error) {
	key := objectKey(prefix, s.newID(), up.Filename)

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.raw.PutObject(ctx, s.bucket, key, up.Body, up.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %q failed: %w", key, err)
	}
	return key, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.raw.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q failed: %w", key, err)
	}
	return nil
}

func (s *MinioStore) URL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := s.raw.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign get object %q failed: %w", key, err)
	}
	return u.String(), nil
}

// objectKey builds "<prefix><id>-<filename>", keeping only the base name of
// the uploaded file.
func objectKey(prefix, id, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		return prefix + id
	}
	return prefix + id + "-" + name
}
