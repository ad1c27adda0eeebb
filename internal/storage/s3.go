package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"wardrobe-backend/internal/config"
	"wardrobe-backend/internal/timeutil"
)

// Uploader stores profile pictures and wardrobe item images in an
// S3-compatible bucket (R2 in production).
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewUploader(cfg *config.Config) (*Uploader, error) {
	if cfg.Storage.AccessKey == "" || cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("object storage not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Storage.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure storage client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		}
	})

	return &Uploader{
		client:    client,
		bucket:    cfg.Storage.Bucket,
		publicURL: strings.TrimSuffix(cfg.Storage.PublicURL, "/"),
	}, nil
}

// UploadProfilePicture stores an avatar under profile-pictures/<userID>/
// and returns its public URL.
func (u *Uploader) UploadProfilePicture(ctx context.Context, userID int, ext, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("profile-pictures/%d/%d.%s", userID, timeutil.Now().UnixMilli(), ext)
	return u.upload(ctx, key, contentType, body)
}

// UploadWardrobeImage stores a wardrobe item photo under wardrobe/<userID>/
func (u *Uploader) UploadWardrobeImage(ctx context.Context, userID int, ext, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("wardrobe/%d/%d.%s", userID, timeutil.Now().UnixMilli(), ext)
	return u.upload(ctx, key, contentType, body)
}

func (u *Uploader) upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if u.publicURL != "" {
		return u.publicURL + "/" + key, nil
	}
	return key, nil
}
