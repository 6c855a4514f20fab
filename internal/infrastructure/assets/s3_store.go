// Package assets persists processed image bytes in an S3-compatible store
// and exposes their public URLs to the serving layer.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"habernexus/internal/config"
	"habernexus/internal/ports"
)

// putObjectAPI is the narrow slice of the S3 client we use, so tests can
// substitute a fake.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store implements ports.AssetStore on top of the AWS SDK.
type S3Store struct {
	client  putObjectAPI
	bucket  string
	prefix  string
	baseURL string
}

var _ ports.AssetStore = (*S3Store)(nil)

// NewS3Store builds a store using the default AWS configuration chain, with
// the region from config when set.
func NewS3Store(ctx context.Context, cfg config.AssetConfig) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("asset bucket is not configured")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.amazonaws.com", cfg.Bucket)
	}

	return &S3Store{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.Bucket,
		prefix:  strings.Trim(cfg.KeyPrefix, "/"),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Put uploads the asset bytes under the configured prefix and returns the
// URL the serving layer can embed directly.
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if s.prefix != "" {
		key = path.Join(s.prefix, key)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}
