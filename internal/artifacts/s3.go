package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

var loadDefaultAWSConfig = config.LoadDefaultConfig

// S3Config configures an S3 (or S3-compatible) bucket.
type S3Config struct {
	Bucket string `json:"bucket" toml:"bucket"`
	Region string `json:"region" toml:"region"`
	// Endpoint points at an S3-compatible server such as MinIO. Empty means AWS.
	Endpoint  string `json:"endpoint,omitempty" toml:"endpoint"`
	AccessKey string `json:"access_key,omitempty" toml:"access_key"`
	SecretKey string `json:"secret_key,omitempty" toml:"secret_key"`
	Prefix    string `json:"prefix,omitempty" toml:"prefix"`
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type objectPresigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Sink uploads artifacts to a bucket and hands out short-lived download URLs.
type S3Sink struct {
	bucket    string
	prefix    string
	client    objectPutter
	presigner objectPresigner
}

// NewS3Sink builds a sink from cfg. Static credentials are used when an access key is set;
// otherwise the default AWS credential chain applies.
func NewS3Sink(ctx context.Context, cfg S3Config) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Sink{
		bucket:    cfg.Bucket,
		prefix:    cfg.Prefix,
		client:    client,
		presigner: s3.NewPresignClient(client),
	}, nil
}

// Put uploads data and returns a presigned GET URL for it.
func (s *S3Sink) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := path.Join(s.prefix, name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &StoreError{Name: key, Message: "upload failed", Cause: err}
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", &StoreError{Name: key, Message: "presign failed", Cause: err}
	}
	return req.URL, nil
}
