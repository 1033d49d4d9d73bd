package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/sarojnow24/smart-budget-tracker/internal/server/config"
)

// ExportService uploads a user's serialized snapshot to object storage
// under a deterministic per-user key, overwriting any previous export, and
// returns the publicly resolvable URL.
type ExportService struct {
	config *sc.Config
}

func NewExportService(cfg *sc.Config) *ExportService {
	return &ExportService{config: cfg}
}

func exportStorageKey(userID string) string {
	return fmt.Sprintf("exports/%s/snapshot.json", userID)
}

func (s *ExportService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

func (s *ExportService) Upload(ctx context.Context, userID string, data []byte) (string, error) {
	client, err := s.getS3Client(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := exportStorageKey(userID)
	contentType := "application/json"

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("export upload failed: %w", err)
	}

	base := strings.TrimRight(s.config.S3BaseEndpoint, "/")
	return fmt.Sprintf("%s/%s/%s", base, bucket, key), nil
}
