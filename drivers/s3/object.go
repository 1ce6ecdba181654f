package s3driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	fileoutput "github.com/shoraid/go-fileoutput"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Client interface {
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type presignClient interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

type Visibility string

const (
	VisibilityPrivate Visibility = "private" // Files are private, need signed URL to access
	VisibilityPublic  Visibility = "public"  // Files are publicly accessible via direct URL
)

// ObjectStorageConfig defines the configuration needed to connect to an S3-compatible storage.
// You can use this with AWS S3, Cloudflare R2, MinIO, GCS (S3 API), etc.
type ObjectStorageConfig struct {
	Bucket        string        // bucket name where files are stored
	Region        string        // AWS region or equivalent
	AccessKey     string        // access key for authentication
	SecretKey     string        // secret key for authentication
	Endpoint      string        // optional custom endpoint host (for R2, MinIO, etc.)
	UseSSL        bool          // true = https, false = http
	Visibility    Visibility    // public or private
	DefaultExpiry time.Duration // used when TemporaryURL is called without an expiry
}

// ObjectStorage is the fileoutput.Disk implementation for S3-compatible storages.
// It also implements fileoutput.TemporaryURLer.
type ObjectStorage struct {
	client        s3Client
	bucket        string
	config        ObjectStorageConfig
	presignClient presignClient // used to generate signed URLs
}

var (
	_ fileoutput.Disk           = (*ObjectStorage)(nil)
	_ fileoutput.TemporaryURLer = (*ObjectStorage)(nil)
)

// NewObjectStorage initializes an ObjectStorage using the given config.
// It loads AWS configuration, sets up the S3 client, and prepares a presign client.
// Returns fileoutput.ErrInvalidConfig if credentials or config are invalid.
func NewObjectStorage(cfg ObjectStorageConfig) (*ObjectStorage, error) {
	if cfg.Bucket == "" {
		return nil, fileoutput.ErrInvalidConfig
	}

	if cfg.AccessKey == "" {
		return nil, fileoutput.ErrInvalidConfig
	}

	if cfg.SecretKey == "" {
		return nil, fileoutput.ErrInvalidConfig
	}

	storageCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return nil, fileoutput.ErrInvalidConfig
	}

	client := s3.NewFromConfig(storageCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.endpointURL())
			o.UsePathStyle = true // needed for MinIO / R2
		}
	})

	if cfg.DefaultExpiry == 0 {
		cfg.DefaultExpiry = fileoutput.DefaultTemporaryURLExpiry
	}

	return &ObjectStorage{
		client:        client,
		bucket:        cfg.Bucket,
		config:        cfg,
		presignClient: s3.NewPresignClient(client),
	}, nil
}

func (c ObjectStorageConfig) scheme() string {
	if c.UseSSL {
		return "https"
	}
	return "http"
}

// endpointURL accepts endpoints with or without a scheme.
func (c ObjectStorageConfig) endpointURL() string {
	if strings.Contains(c.Endpoint, "://") {
		return c.Endpoint
	}
	return c.scheme() + "://" + c.Endpoint
}

// Delete permanently removes a file from the bucket.
func (s *ObjectStorage) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("invalid key")
		return fileoutput.ErrInvalidPath
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete file from S3")
		return fileoutput.ErrInternal
	}

	return nil
}

// Exists checks if a file exists in the bucket.
func (s *ObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	if validateKey(key) != nil {
		return false, nil
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		log.Error().Err(err).Str("key", key).Msg("failed to check if file exists in S3")
		return false, fileoutput.ErrInternal
	}

	return true, nil
}

// TemporaryURL generates a signed URL for downloading a file.
// A non-positive expiry falls back to the configured default.
func (s *ObjectStorage) TemporaryURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = s.config.DefaultExpiry
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to generate signed URL")
		return "", fileoutput.ErrInternal
	}

	return req.URL, nil
}

// URL returns the direct public URL for a file if the bucket is public.
// Private buckets have no direct URL and return an empty string.
func (s *ObjectStorage) URL(ctx context.Context, key string) (string, error) {
	if s.config.Visibility != VisibilityPublic {
		return "", nil
	}

	key = strings.TrimLeft(key, "/")

	if s.config.Endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.config.Region, key), nil
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.config.endpointURL(), "/"), s.bucket, key), nil
}

// Open streams a file from the bucket.
func (s *ObjectStorage) Open(ctx context.Context, key string) (*fileoutput.Object, error) {
	if err := validateKey(key); err != nil {
		return nil, fileoutput.ErrNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fileoutput.ErrNotFound
		}

		log.Error().Err(err).Str("key", key).Msg("failed to get file from S3")
		return nil, fileoutput.ErrInternal
	}

	size := int64(-1)
	if out.ContentLength != nil {
		size = *out.ContentLength
	}

	return &fileoutput.Object{
		Body:        out.Body,
		Size:        size,
		ContentType: aws.ToString(out.ContentType),
		ModTime:     aws.ToTime(out.LastModified),
	}, nil
}

func isNotFound(err error) bool {
	var apiError interface{ ErrorCode() string }
	if !errors.As(err, &apiError) {
		return false
	}
	switch apiError.ErrorCode() {
	case "NotFound", "NoSuchKey":
		return true
	}
	return false
}

// validateKey rejects empty keys and relative path segments.
func validateKey(key string) error {
	switch {
	case len(key) == 0:
		return errors.New("key cannot be empty")
	case key == "." || key == "..":
		return errors.New("invalid key")
	case strings.HasPrefix(key, "../") || strings.Contains(key, "/../"):
		return errors.New("key contains relative segments")
	}
	return nil
}
