// Package storage fetches benchmark inputs (ground truth, OCR outputs) from
// an S3-compatible object store. Cloudflare R2 is the deployment target, but
// any endpoint speaking the S3 API works.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PathScheme prefixes bucket-relative object paths: r2://bucket/key.
const PathScheme = "r2://"

// R2Config contains the settings needed to reach the bucket endpoint.
// Credentials come from the standard AWS config/credential chain.
type R2Config struct {
	// Endpoint is the S3 API endpoint, e.g.
	// https://<account-id>.r2.cloudflarestorage.com. Empty means the
	// default AWS resolution applies.
	Endpoint string
	// Region for request signing. R2 uses "auto".
	Region string
	// Profile selects a named shared credentials profile.
	Profile string
}

// R2 wraps the AWS SDK S3 client behind the narrow fetch interface the
// benchmark needs.
type R2 struct {
	client *s3.Client
}

// NewR2 creates an R2 client from the default AWS configuration chain with
// overrides from cfg.
func NewR2(ctx context.Context, cfg R2Config) (*R2, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// R2 and most S3-compatible providers need path-style addressing.
		o.UsePathStyle = true
	})
	return &R2{client: client}, nil
}

// Fetch downloads an object and returns its contents as text.
func (r *R2) Fetch(ctx context.Context, bucket, key string) (string, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("fetching %s%s/%s: %w", PathScheme, bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s%s/%s: %w", PathScheme, bucket, key, err)
	}
	return string(data), nil
}

// IsRemotePath reports whether path uses the r2:// scheme.
func IsRemotePath(path string) bool {
	return strings.HasPrefix(path, PathScheme)
}

// ParsePath splits an r2://bucket/key path into bucket and key.
func ParsePath(path string) (bucket, key string, err error) {
	if !IsRemotePath(path) {
		return "", "", fmt.Errorf("invalid remote path %q: must start with %s", path, PathScheme)
	}
	parts := strings.SplitN(path[len(PathScheme):], "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid remote path %q: want %sbucket/key", path, PathScheme)
	}
	return parts[0], parts[1], nil
}
