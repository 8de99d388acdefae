package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	appconfig "manutencao_xpto/internal/infrastructure/config"
	"manutencao_xpto/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MinioStorage keeps request attachments in a MinIO bucket. The workflow
// only ever sees the object names it returns.

type MinioStorage struct {
	client     *minio.Client
	bucketName string
}

var _ interfaces.IAttachmentStorage = (*MinioStorage)(nil)

func NewMinioStorage(cfg appconfig.MinioConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		log.Infof("bucket %s created", cfg.Bucket)
	}

	return &MinioStorage{client: client, bucketName: cfg.Bucket}, nil
}

func (m *MinioStorage) Upload(ctx context.Context, data []byte, originalFilename string) (string, error) {
	ext := filepath.Ext(originalFilename)
	objectName := fmt.Sprintf("attachment_%s_%d%s", uuid.NewString()[:8], time.Now().Unix(), ext)

	contentType := "application/octet-stream"
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".gif":
		contentType = "image/gif"
	case ".pdf":
		contentType = "application/pdf"
	}

	_, err := m.client.PutObject(ctx, m.bucketName, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	log.Infof("attachment %s uploaded", objectName)
	return objectName, nil
}

// PresignedURL returns a one-hour download link for an attachment.
func (m *MinioStorage) PresignedURL(ctx context.Context, objectName string) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucketName, objectName, time.Hour, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}
