package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const menuImageBucket = "menu-images"

// MediaService stores menu item images in object storage and hands out
// presigned read URLs.
type MediaService interface {
	UploadMenuImage(ctx context.Context, menuItemID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
	MenuImageURL(objectName string, expiry time.Duration) (string, error)
	DeleteMenuImage(ctx context.Context, objectName string) error
	EnsureBucket(ctx context.Context) error
}

type minioMediaService struct {
	client *minio.Client
}

func NewMinioMediaService(endpoint, accessKey, secretKey string, useSSL bool) (MediaService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioMediaService{client: client}, nil
}

func (m *minioMediaService) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, menuImageBucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, menuImageBucket, minio.MakeBucketOptions{})
	}
	return nil
}

// UploadMenuImage writes the image under a per-item object name and returns
// that name for persistence on the menu item row.
func (m *minioMediaService) UploadMenuImage(ctx context.Context, menuItemID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectName := fmt.Sprintf("%s/%s%s", menuItemID.String(), uuid.NewString(), contentTypeExt(contentType))
	_, err := m.client.PutObject(ctx, menuImageBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func contentTypeExt(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

func (m *minioMediaService) MenuImageURL(objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(context.Background(), menuImageBucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioMediaService) DeleteMenuImage(ctx context.Context, objectName string) error {
	return m.client.RemoveObject(ctx, menuImageBucket, objectName, minio.RemoveObjectOptions{})
}
