package repo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the subset of *s3.Client the facility calls.
type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config holds the construction parameters of an S3-backed facility.
type S3Config struct {
	Bucket    string
	Region    string // defaults to us-east-1
	Endpoint  string // optional; set for MinIO or other S3-compatible stores
	PathStyle bool
	Prefix    string // optional object key prefix, e.g. "walls/"
}

// S3Facility stores each entry as one object in a single bucket.
type S3Facility struct {
	client s3API
	bucket string
	prefix string
}

// NewS3Facility builds an S3 client from the default AWS credential chain.
func NewS3Facility(ctx context.Context, cfg S3Config) (*S3Facility, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("repo.NewS3Facility: bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("repo.NewS3Facility: load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newS3Facility(client, cfg.Bucket, cfg.Prefix), nil
}

func newS3Facility(client s3API, bucket, prefix string) *S3Facility {
	return &S3Facility{client: client, bucket: bucket, prefix: prefix}
}

func (f *S3Facility) objectKey(key string) string {
	return f.prefix + key
}

// Get downloads the object for key. A missing object is reported as absent.
func (f *S3Facility) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.objectKey(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("repo.S3Facility.Get: %w", err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return "", false, fmt.Errorf("repo.S3Facility.Get: read body: %w", err)
	}
	return string(b), true, nil
}

// Set uploads value as the object for key.
func (f *S3Facility) Set(ctx context.Context, key, value string) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(f.bucket),
		Key:         aws.String(f.objectKey(key)),
		Body:        strings.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("repo.S3Facility.Set: %w", err)
	}
	return nil
}

// Remove deletes the object for key. S3 deletes are idempotent.
func (f *S3Facility) Remove(ctx context.Context, key string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.objectKey(key)),
	})
	if err != nil {
		return fmt.Errorf("repo.S3Facility.Remove: %w", err)
	}
	return nil
}
