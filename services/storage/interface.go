package storage

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
)

// UploadResult identifies a stored asset and its public URL.
type UploadResult struct {
	PublicID string
	URL      string
}

// StorageService manages hosted property images.
type StorageService interface {
	UploadFile(ctx context.Context, localFilePath, destFolder string) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// StorageServiceImpl is the Cloudinary-backed implementation.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}
