package media

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type S3HostConfig struct {
	Bucket          string
	Folder          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

// S3Host uploads media to an S3-compatible bucket and serves it back
// through the configured public base URL.
type S3Host struct {
	cfg      S3HostConfig
	uploader *manager.Uploader
}

func NewS3Host(ctx context.Context, cfg S3HostConfig) (*S3Host, error) {
	if len(cfg.Bucket) == 0 {
		return nil, fmt.Errorf("s3 media host requires a bucket")
	}
	if len(cfg.PublicBaseURL) == 0 {
		return nil, fmt.Errorf("s3 media host requires a public base url")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if len(cfg.Endpoint) > 0 {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Host{
		cfg:      cfg,
		uploader: manager.NewUploader(client),
	}, nil
}

func (h *S3Host) Upload(ctx context.Context, name string, contentType string, body io.Reader) (string, error) {
	key := h.objectKey(name)

	_, err := h.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload media: %w", err)
	}

	return strings.TrimSuffix(h.cfg.PublicBaseURL, "/") + "/" + key, nil
}

func (h *S3Host) objectKey(name string) string {
	key := uuid.NewString()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		key += name[idx:]
	}
	if len(h.cfg.Folder) > 0 {
		key = strings.Trim(h.cfg.Folder, "/") + "/" + key
	}
	return key
}
