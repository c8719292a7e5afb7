package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/annapurna-ai/backend/config"
)

// PhotoService stores uploaded meal photos in S3
type PhotoService struct {
	s3Config *config.S3Config
}

// NewPhotoService creates a new PhotoService instance
func NewPhotoService(s3Config *config.S3Config) *PhotoService {
	return &PhotoService{s3Config: s3Config}
}

// extensionFor maps the accepted image MIME types to a file extension.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}

// UploadMealPhoto uploads image data to S3 and returns the public URL. The
// upload is retried a few times since a lost photo forces the user to retake
// it.
func (s *PhotoService) UploadMealPhoto(ctx context.Context, imageData []byte, contentType string) (string, error) {
	if s.s3Config == nil {
		return "", fmt.Errorf("photo storage is not configured")
	}
	if len(imageData) == 0 {
		return "", fmt.Errorf("image data must not be empty")
	}

	fileName := fmt.Sprintf("meal-photos/%s.%s", uuid.New().String(), extensionFor(contentType))

	err := retry.Do(
		func() error {
			_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
				Bucket:      aws.String(s.s3Config.BucketName),
				Key:         aws.String(fileName),
				Body:        bytes.NewReader(imageData),
				ContentType: aws.String(contentType),
			})
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[PhotoService] uploaded meal photo to %s", publicURL)
	return publicURL, nil
}
