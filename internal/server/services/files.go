package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/sitereg/internal/common"
	sc "github.com/dmitrijs2005/sitereg/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// presignExpiry is the lifetime of attachment download links.
const presignExpiry = 15 * time.Minute

// FileStore keeps the bytes of uploaded phasing and timing files.
type FileStore interface {
	Enabled() bool
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// NewFileStore returns an S3 store when a bucket is configured and a
// disabled store otherwise.
func NewFileStore(cfg *sc.Config) FileStore {
	if cfg.S3Bucket == "" {
		return NoopFileStore{}
	}
	return &S3FileStore{config: cfg}
}

// NoopFileStore stores nothing; only file names are recorded.
type NoopFileStore struct{}

func (NoopFileStore) Enabled() bool { return false }

func (NoopFileStore) Put(context.Context, string, string, io.Reader, int64) error {
	return common.ErrStorageDisabled
}

func (NoopFileStore) PresignGet(context.Context, string) (string, error) {
	return "", common.ErrStorageDisabled
}

// S3FileStore stores files in an S3-compatible bucket (AWS or MinIO).
type S3FileStore struct {
	config *sc.Config

	mu     sync.Mutex
	client *s3.Client
}

// GetRandomStorageKey returns a fresh object key under a per-day prefix.
func GetRandomStorageKey() string {
	d := time.Now().UTC()
	return fmt.Sprintf("installations/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *S3FileStore) Enabled() bool { return true }

func (s *S3FileStore) getClient(ctx context.Context) (*s3.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(s.config.S3Region)}
	if s.config.S3RootUser != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	s.client = newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return s.client, nil
}

func (s *S3FileStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	client, err := s.getClient(ctx)
	if err != nil {
		return err
	}

	bucket := s.config.S3Bucket
	in := &s3.PutObjectInput{
		Bucket:        &bucket,
		Key:           &key,
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := putObject(client, ctx, in); err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (s *S3FileStore) PresignGet(ctx context.Context, key string) (string, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
