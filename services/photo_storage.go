package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/GarageLog/garage-log-backend/config"
)

// PhotoStorage abstracts where timeline item photos live. The production
// implementation is Cloudflare R2; tests supply fakes.
type PhotoStorage interface {
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error
	GetURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// R2PhotoStorage stores photos in Cloudflare R2 (S3-compatible).
// Keys follow the layout <tenantID>/<vehicleID>/<timelineItemID>.jpg so that
// a vehicle's photos can be listed and torn down together.
type R2PhotoStorage struct {
	client     *s3.Client
	presigner  *s3.PresignClient
	bucketName string
}

// NewR2PhotoStorage creates a new R2-backed photo storage instance.
func NewR2PhotoStorage(cfg config.StorageConfig) (*R2PhotoStorage, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("photo storage is not configured")
	}
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	client := s3.New(s3.Options{
		Region:       "auto",
		BaseEndpoint: &endpoint,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	})

	return &R2PhotoStorage{
		client:     client,
		presigner:  s3.NewPresignClient(client),
		bucketName: cfg.Bucket,
	}, nil
}

// PhotoKey builds the canonical storage key for a timeline item photo.
func PhotoKey(tenantID, vehicleID, itemID string) string {
	return fmt.Sprintf("%s/%s/%s.jpg", tenantID, vehicleID, itemID)
}

// validatePhotoKey rejects storage keys containing path traversal segments.
func validatePhotoKey(key string) error {
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return fmt.Errorf("path traversal detected in storage key")
		}
	}
	return nil
}

// Save uploads a photo to R2.
func (s *R2PhotoStorage) Save(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validatePhotoKey(key); err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket: &s.bucketName,
		Key:    &key,
		Body:   reader,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("r2 put object failed: %w", err)
	}
	return nil
}

// GetURL returns a presigned download URL with a 5-minute TTL.
func (s *R2PhotoStorage) GetURL(ctx context.Context, key string) (string, error) {
	if err := validatePhotoKey(key); err != nil {
		return "", err
	}
	result, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucketName,
		Key:    &key,
	}, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", fmt.Errorf("r2 presign failed: %w", err)
	}
	return result.URL, nil
}

// Delete removes a photo from R2.
func (s *R2PhotoStorage) Delete(ctx context.Context, key string) error {
	if err := validatePhotoKey(key); err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucketName,
		Key:    &key,
	}); err != nil {
		return fmt.Errorf("r2 delete object failed: %w", err)
	}
	return nil
}
