package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"github.com/google/uuid"
)

// LocalStorage writes images to a directory served by the router under
// publicPath. The default setup for development and single-node deployments.
type LocalStorage struct {
	dir        string
	publicPath string
}

func NewLocalStorage(dir, publicPath string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &LocalStorage{
		dir:        dir,
		publicPath: publicPath,
	}, nil
}

func (s *LocalStorage) Upload(_ context.Context, r io.Reader, filename, _ string) (string, error) {
	name := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	url := s.publicPath + "/" + name
	logger.Debug("Image stored locally", map[string]interface{}{
		"path": path,
		"url":  url,
	})
	return url, nil
}
