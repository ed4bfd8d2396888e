package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/unirideapp/uniride-api/internal/config"
)

type AvatarStore struct {
	client *s3.Client
	bucket string
	region string
}

func NewAvatarStore(cfg *config.Config) *AvatarStore {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	})

	return &AvatarStore{
		client: client,
		bucket: cfg.S3Bucket,
		region: cfg.S3Region,
	}
}

// Upload sube el avatar ya convertido a webp y devuelve la URL pública.
func (s *AvatarStore) Upload(ctx context.Context, userID uint, data []byte) (string, error) {
	key := fmt.Sprintf("avatars/%d.webp", userID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
