package storage

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
)

var (
	ErrInvalidFileType = errors.New("only image files are allowed")
	ErrFileTooLarge    = errors.New("file exceeds the maximum allowed size")
)

var allowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// Storage persists uploaded images and returns their public URL. Two
// implementations exist: local disk for development and S3 for production.
type Storage interface {
	Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error)
}

// ValidateImage checks the upload's declared content type and size before
// any bytes are read.
func ValidateImage(header *multipart.FileHeader, maxBytes int64) error {
	if header.Size > maxBytes {
		return ErrFileTooLarge
	}

	contentType := header.Header.Get("Content-Type")
	for _, allowed := range allowedImageTypes {
		if contentType == allowed {
			return nil
		}
	}
	return ErrInvalidFileType
}
