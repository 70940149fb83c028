package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"github.com/dellmdq/OT109-Server/config"
	"github.com/dellmdq/OT109-Server/internal/types"
)

var _ ImageStore = (*S3ImageStore)(nil)

// ImageStore persists uploaded images and serves them back by object name.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (*UploadResult, error)
	Download(ctx context.Context, name string) (io.ReadCloser, string, error)
}

type UploadResult struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type S3ImageStore struct {
	logger *slog.Logger
	client *s3.Client
	bucket string
	region string
}

// NewS3ImageStore builds the S3 client from the default credential chain.
// A configured endpoint switches to path-style addressing so MinIO and other
// S3-compatible stores work in development.
func NewS3ImageStore(ctx context.Context, cfg config.AWSConfig, logger *slog.Logger) (*S3ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	var (
		awsCfg aws.Config
		err    error
	)
	if cfg.Region != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
		logger.Info("S3 store using custom endpoint", slog.String("endpoint", cfg.Endpoint))
	} else {
		client = s3.NewFromConfig(awsCfg)
		logger.Info("S3 store using AWS", slog.String("region", awsCfg.Region))
	}

	return &S3ImageStore{logger: logger, client: client, bucket: cfg.Bucket, region: awsCfg.Region}, nil
}

// objectName prefixes a random ID so repeated uploads of the same file never
// collide or overwrite.
func objectName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return fmt.Sprintf("%d-%s-%s", time.Now().Unix(), uuid.NewString()[:8], base)
}

func (s *S3ImageStore) Upload(ctx context.Context, filename, contentType string, body io.Reader) (*UploadResult, error) {
	name := objectName(filename)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         aws.String(name),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	s.logger.InfoContext(ctx, "Image uploaded", slog.String("key", name))
	return &UploadResult{
		Name: name,
		URL:  fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, name),
	}, nil
}

func (s *S3ImageStore) Download(ctx context.Context, name string) (io.ReadCloser, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, "", types.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	contentType := "application/octet-stream"
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}
	return false
}
