// Package s3 provides a kv.Store that keeps each value as an object in an
// S3 or S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/enteocode/mfa/pkg/kv"
)

var (
	ErrInvalidConfig      = errors.New("s3: bucket and region are required")
	ErrFailedToLoadConfig = errors.New("s3: failed to load aws config")
	ErrOperationFailed    = errors.New("s3 operation failed")
)

// Client is the subset of *s3.Client used by the store.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Config contains configuration for the S3 store. Endpoint and
// ForcePathStyle are only needed for S3-compatible services like MinIO.
type Config struct {
	Bucket         string `env:"MFA_S3_BUCKET,required"`
	Region         string `env:"MFA_S3_REGION,required"`
	AccessKeyID    string `env:"MFA_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"MFA_S3_SECRET_KEY"`
	Endpoint       string `env:"MFA_S3_ENDPOINT"`
	ForcePathStyle bool   `env:"MFA_S3_FORCE_PATH_STYLE"`
	Prefix         string `env:"MFA_S3_PREFIX" envDefault:"mfa/"`
}

// Store implements kv.Store on an S3 bucket.
type Store struct {
	client Client
	bucket string
	prefix string
}

var _ kv.Store = (*Store)(nil)

// Option configures NewFromConfig.
type Option func(*options)

type options struct {
	client        Client
	configOptions []func(*config.LoadOptions) error
}

// WithClient sets a pre-configured client; the AWS config is not loaded.
func WithClient(client Client) Option {
	return func(o *options) {
		o.client = client
	}
}

// WithConfigOption adds an AWS config load option.
func WithConfigOption(option func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.configOptions = append(o.configOptions, option)
	}
}

// New wraps an existing client.
func New(client Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// NewFromConfig builds an S3 client from cfg and wraps it.
func NewFromConfig(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.client != nil {
		return New(o.client, cfg.Bucket, cfg.Prefix), nil
	}

	awsOptions := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		awsOptions = append(awsOptions,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretKey,
				"",
			)),
		)
	}
	awsOptions = append(awsOptions, o.configOptions...)

	awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadConfig, err)
	}

	client := s3.NewFromConfig(awsConfig, func(so *s3.Options) {
		if cfg.Endpoint != "" {
			so.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		so.UsePathStyle = cfg.ForcePathStyle
	})

	return New(client, cfg.Bucket, cfg.Prefix), nil
}

func (s *Store) objectKey(key string) *string {
	return aws.String(s.prefix + key)
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	if err := kv.ValidateKey(key); err != nil {
		return false, err
	}
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    s.objectKey(key),
	})
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return true, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := kv.ValidateKey(key); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    s.objectKey(key),
	})
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Join(ErrOperationFailed, err)
	}
	return data, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := kv.ValidateKey(key); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           s.objectKey(key),
		Body:          bytes.NewReader(value),
		ContentLength: aws.Int64(int64(len(value))),
		ContentType:   aws.String("application/octet-stream"),
	})
	if err != nil {
		return errors.Join(ErrOperationFailed, err)
	}
	return nil
}

// Delete checks for the object first since DeleteObject succeeds on
// missing keys.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	ok, err := s.Has(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    s.objectKey(key),
	})
	if err != nil {
		return false, errors.Join(ErrOperationFailed, err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
