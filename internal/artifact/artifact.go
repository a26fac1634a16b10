// Package artifact stores completed report documents: always on the local
// filesystem under the configured output directory, and optionally mirrored
// to an S3 bucket.
package artifact

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the slice of the S3 client the store uses.
type s3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store writes report artifacts.
type Store struct {
	dir    string
	s3     s3API
	bucket string
	region string
}

// NewLocal creates a store that writes reports to dir only.
func NewLocal(dir string) *Store {
	return &Store{dir: dir}
}

// NewWithS3 creates a store that writes reports to dir and mirrors them to
// an S3 bucket, creating the bucket when it does not exist yet.
func NewWithS3(ctx context.Context, dir, bucket, region, profile string) (*Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	if profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	s := &Store{dir: dir, s3: s3.NewFromConfig(cfg), bucket: bucket, region: region}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureBucket creates the bucket if a head request says it isn't there.
func (s *Store) ensureBucket(ctx context.Context) error {
	_, err := s.s3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	in := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 rejects an explicit location constraint.
	if s.region != "" && s.region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.s3.CreateBucket(ctx, in); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// SaveReport writes the report to the output directory and returns its local
// path. The S3 mirror is best effort: a failed upload is logged, not
// returned, since the local copy already exists.
func (s *Store) SaveReport(runID, content string) (string, error) {
	name := fmt.Sprintf("report_%s_%s.md", time.Now().UTC().Format("20060102T150405"), runID)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	if s.s3 != nil {
		_, err := s.s3.PutObject(context.Background(), &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String("reports/" + name),
			Body:        bytes.NewReader([]byte(content)),
			ContentType: aws.String("text/markdown"),
		})
		if err != nil {
			log.Printf("[artifact] upload report %s to s3://%s: %v", name, s.bucket, err)
		}
	}
	return path, nil
}
