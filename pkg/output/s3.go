package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 10 * time.Second

// S3Config holds the connection settings for S3-compatible storage
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

// Enabled reports whether enough settings are present to upload
func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Uploader stores rendered bitmaps in a bucket
type Uploader struct {
	client  s3iface.S3API
	bucket  string
	timeout time.Duration
	logger  core.Logger
}

// NewUploader creates an uploader with static credentials and path-style addressing
func NewUploader(cfg S3Config, logger core.Logger) (*Uploader, error) {
	if !cfg.Enabled() {
		return nil, errors.New("s3 upload needs a bucket, access key and secret key")
	}

	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewUploaderWithClient(s3.New(sess), cfg.Bucket, logger), nil
}

// NewUploaderWithClient wraps an existing S3 client
func NewUploaderWithClient(client s3iface.S3API, bucket string, logger core.Logger) *Uploader {
	if logger == nil {
		logger = renderer.NopLogger{}
	}
	return &Uploader{client: client, bucket: bucket, timeout: UploadTimeout, logger: logger}
}

// UploadBMP encodes buf as a bitmap and stores it under key
func (u *Uploader) UploadBMP(ctx context.Context, key string, buf *renderer.PixelBuffer) error {
	var data bytes.Buffer
	if err := WriteBMP(&data, buf); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	size := int64(data.Len())
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("image/bmp"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, u.bucket, size)
	return nil
}
