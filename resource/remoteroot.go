package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// RemoteRoot mirrors a published content bundle from an S3 bucket into a
// local cache directory, so it can be layered into a resource.Set's
// multi-root merge (§4.7) the same way a local mod directory is: a
// published base module plus locally-edited overrides.
type RemoteRoot struct {
	client   *s3.Client
	bucket   string
	prefix   string
	cacheDir string
}

// RemoteRootOptions configures a RemoteRoot. AccessKeyID/SecretAccessKey
// are optional; when empty, the SDK's default credential chain (shared
// config, environment, instance role) is used instead.
type RemoteRootOptions struct {
	Bucket          string
	Prefix          string
	Region          string
	CacheDir        string
	AccessKeyID     string
	SecretAccessKey string
}

// NewRemoteRoot builds an S3 client for opts.Bucket/opts.Region, using
// static credentials if supplied or the SDK's default chain otherwise.
func NewRemoteRoot(ctx context.Context, opts RemoteRootOptions) (*RemoteRoot, error) {
	var cfgOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		cfgOpts = append(cfgOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("resource: load aws config: %w", err)
	}

	return &RemoteRoot{
		client:   s3.NewFromConfig(cfg),
		bucket:   opts.Bucket,
		prefix:   strings.TrimSuffix(opts.Prefix, "/"),
		cacheDir: opts.CacheDir,
	}, nil
}

// Sync downloads every object under the root's prefix into its cache
// directory, preserving the key's directory structure, and returns the
// cache directory path — ready to pass to resource.Set.Append.
func (r *RemoteRoot) Sync(ctx context.Context) (string, error) {
	var continuationToken *string

	for {
		out, err := r.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(r.bucket),
			Prefix:            aws.String(r.prefix),
			ContinuationToken: continuationToken,
		})
		if err != nil {
			return "", fmt.Errorf("resource: list objects under s3://%s/%s: %w", r.bucket, r.prefix, err)
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			if err := r.downloadOne(ctx, key); err != nil {
				return "", err
			}
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		continuationToken = out.NextContinuationToken
	}

	return r.cacheDir, nil
}

func (r *RemoteRoot) downloadOne(ctx context.Context, key string) error {
	rel := strings.TrimPrefix(strings.TrimPrefix(key, r.prefix), "/")
	dest := filepath.Join(r.cacheDir, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("resource: create cache dir for %s: %w", key, err)
	}

	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("resource: get object %s: %w", key, err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, out.Body); err != nil {
		return fmt.Errorf("resource: read object %s: %w", key, err)
	}

	if err := os.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("resource: write cached object to %s: %w", dest, err)
	}
	return nil
}
