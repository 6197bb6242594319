package fsadapter

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pipeflow/pipeflow/internal/pathutil"
)

const s3Scheme = "s3"

// S3FS normalizes "s3://bucket/key" paths, cleaning only the key
// portion so the bucket prefix survives untouched. Grounded on
// aws_helper/config.go's session/credentials construction, modernized
// from aws-sdk-go (v1) to aws-sdk-go-v2 to match the rest of the
// teacher's dependency graph.
type S3FS struct {
	client *s3.Client
}

// NewS3 loads the default AWS credential chain, constructs an S3
// client, and validates bucket reachability with a single HeadBucket
// call. Normalize itself never calls out to S3, keeping it pure per
// spec §5 — the network round-trip happens once, here, at
// construction.
func NewS3(ctx context.Context, bucket string) (*S3FS, error) {
	if bucket == "" {
		return nil, errors.New("s3 backend requires a bucket")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &bucket}); err != nil {
		return nil, fmt.Errorf("s3 bucket %q is not reachable: %w", bucket, err)
	}

	return &S3FS{client: client}, nil
}

func (s *S3FS) Normalize(p string) (string, error) {
	bucket, key, ok := pathutil.SplitScheme(p, s3Scheme)
	if !ok {
		return pathutil.SlashClean(p), nil
	}

	cleanKey := strings.TrimPrefix(path.Clean("/"+key), "/")
	return fmt.Sprintf("%s://%s/%s", s3Scheme, bucket, cleanKey), nil
}

func (s *S3FS) SlashClean(p string) string {
	bucket, key, ok := pathutil.SplitScheme(p, s3Scheme)
	if !ok {
		return pathutil.SlashClean(p)
	}

	return fmt.Sprintf("%s://%s/%s", s3Scheme, bucket, strings.TrimPrefix(pathutil.SlashClean(key), "/"))
}

func (s *S3FS) AbsolutePath(dir string) (string, error) {
	return s.Normalize(dir)
}
