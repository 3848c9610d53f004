package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/Ayush-Rawat-9/Charter-Party/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArtifactStore keeps uploaded source files and rendered exports in
// object storage. Sessions themselves stay in memory; only their large
// binary artifacts go here.
type ArtifactStore struct {
	client *minio.Client
	bucket string
	config *config.MinioConfig
}

func NewArtifactStore(cfg *config.MinioConfig) (*ArtifactStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &ArtifactStore{
		client: client,
		bucket: cfg.Bucket,
		config: cfg,
	}, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
func (s *ArtifactStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// UploadObjectName builds the object key for an uploaded source file.
func UploadObjectName(sessionID, fileID, filename string) string {
	return path.Join("uploads", sessionID, fileID+path.Ext(filename))
}

// ExportObjectName builds the object key for a rendered export. Revision
// is part of the key so stale links keep pointing at the revision they
// were generated from.
func ExportObjectName(sessionID string, revision int, format string, redlined bool) string {
	name := fmt.Sprintf("rev%d.%s", revision, format)
	if redlined {
		name = fmt.Sprintf("rev%d-redline.%s", revision, format)
	}
	return path.Join("exports", sessionID, name)
}

// Upload stores an artifact and returns nothing; use PresignedURL to
// hand the object to a client.
func (s *ArtifactStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload artifact: %w", err)
	}
	return nil
}

// PresignedURL generates a time-limited download URL for an artifact.
func (s *ArtifactStore) PresignedURL(ctx context.Context, objectName string) (string, error) {
	expiry := time.Duration(s.config.ExpireDays) * 24 * time.Hour
	url, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// Delete removes an artifact.
func (s *ArtifactStore) Delete(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}

// PublicURL returns a direct URL for an artifact when the bucket policy
// allows anonymous reads.
func (s *ArtifactStore) PublicURL(objectName string) string {
	protocol := "http"
	if s.config.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.config.Endpoint, s.bucket, objectName)
}
