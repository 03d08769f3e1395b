package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3Mirror copies finished outline files into an S3 bucket
type S3Mirror struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucketName string
	prefix     string
	password   string
}

// S3Options configures an S3Mirror. Endpoint and static keys are only needed for S3-compatible
// stores; otherwise the default AWS credential chain is used.
type S3Options struct {
	Bucket    string
	Prefix    string
	Password  string // encrypts objects before upload when set
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Mirror creates a mirror for opts.Bucket.
func NewS3Mirror(ctx context.Context, opts S3Options) (*S3Mirror, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}

	var loadOpts []func(*awscfg.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awscfg.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	cfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	cli := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Mirror{
		client:     cli,
		uploader:   manager.NewUploader(cli),
		bucketName: opts.Bucket,
		prefix:     opts.Prefix,
		password:   opts.Password,
	}, nil
}

// Name identifies the mirror in logs and status records
func (s *S3Mirror) Name() string { return "s3://" + s.bucketName }

// Key returns the object key for an output file name
func (s *S3Mirror) Key(fileName string) string {
	p := strings.Trim(s.prefix, "/")
	if p == "" {
		return fileName
	}
	return path.Join(p, fileName)
}

// Publish uploads data as fileName and returns the object URL
func (s *S3Mirror) Publish(ctx context.Context, fileName string, data []byte) (string, error) {
	key := s.Key(fileName)
	body := data
	meta := map[string]string{"name": fileName}

	if s.password != "" {
		sealed, err := Seal(data, s.password)
		if err != nil {
			return "", fmt.Errorf("failed to encrypt data: %w", err)
		}
		body = sealed
		meta["encrypted"] = "true"
		meta["encryption-format"] = string(gcmMagic)
	}

	contentType := "application/json"
	if s.password != "" {
		contentType = "application/octet-stream"
	}

	out, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata:    meta,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Debug().
		Str("key", key).
		Str("location", out.Location).
		Int("size", len(body)).
		Bool("encrypted", s.password != "").
		Msg("uploaded outline to S3")

	return fmt.Sprintf("s3://%s/%s", s.bucketName, key), nil
}

// HeadBucket checks that the bucket exists and is reachable with the current credentials
func (s *S3Mirror) HeadBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucketName)})
	if err != nil {
		return fmt.Errorf("head bucket %s: %w", s.bucketName, err)
	}
	return nil
}
