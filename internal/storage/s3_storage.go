package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"github.com/google/uuid"
)

const s3Folder = "furniture"

type S3Storage struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3Storage(region, bucket, accessKeyID, secretAccessKey, baseURL string) *S3Storage {
	var cfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = aws.Config{
			Region: region,
			Credentials: credentials.NewStaticCredentialsProvider(
				accessKeyID,
				secretAccessKey,
				"",
			),
		}
	} else {
		// Use default credential chain (environment variables, ~/.aws/credentials, IAM role, etc.)
		cfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(region),
		)
		if err != nil {
			// If default config fails, create a basic config with region only
			cfg = aws.Config{
				Region: region,
			}
		}
	}

	client := s3.NewFromConfig(cfg)

	return &S3Storage{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// Upload stores the image under a unique key and returns its public URL.
func (s *S3Storage) Upload(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", s3Folder, uuid.New().String(), filepath.Ext(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Failed to upload image to S3", err, map[string]interface{}{
			"bucket": s.bucket,
			"key":    key,
		})
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	var url string
	if s.baseURL != "" {
		// Use CloudFront or custom domain
		url = fmt.Sprintf("%s/%s", s.baseURL, key)
	} else {
		url = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
	}

	logger.Debug("Image uploaded to S3", map[string]interface{}{
		"bucket": s.bucket,
		"key":    key,
		"url":    url,
	})
	return url, nil
}
