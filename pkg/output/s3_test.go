package output

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// mockS3 records the last PutObject call
type mockS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("upload context has no deadline")
	}
	m.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	m.body = body
	return &s3.PutObjectOutput{}, m.err
}

func TestUploader_UploadBMP(t *testing.T) {
	client := &mockS3{}
	u := NewUploaderWithClient(client, "renders", nil)

	if err := u.UploadBMP(context.Background(), "frames/test.bmp", testBuffer()); err != nil {
		t.Fatal(err)
	}

	if aws.StringValue(client.input.Bucket) != "renders" {
		t.Errorf("Bucket = %q", aws.StringValue(client.input.Bucket))
	}
	if aws.StringValue(client.input.Key) != "frames/test.bmp" {
		t.Errorf("Key = %q", aws.StringValue(client.input.Key))
	}
	if aws.StringValue(client.input.ContentType) != "image/bmp" {
		t.Errorf("ContentType = %q", aws.StringValue(client.input.ContentType))
	}
	if aws.Int64Value(client.input.ContentLength) != 78 || len(client.body) != 78 {
		t.Errorf("Expected 78 bytes, got length %d body %d", aws.Int64Value(client.input.ContentLength), len(client.body))
	}
	if client.body[0] != 'B' || client.body[1] != 'M' {
		t.Errorf("Body does not start with BM")
	}
}

func TestUploader_WrapsClientError(t *testing.T) {
	cause := errors.New("access denied")
	u := NewUploaderWithClient(&mockS3{err: cause}, "renders", nil)

	err := u.UploadBMP(context.Background(), "x.bmp", testBuffer())
	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped client error, got %v", err)
	}
}

func TestNewUploader_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  S3Config
	}{
		{"empty", S3Config{}},
		{"no bucket", S3Config{AccessKey: "a", SecretKey: "s"}},
		{"no secret", S3Config{AccessKey: "a", Bucket: "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewUploader(tt.cfg, nil); err == nil {
				t.Error("Expected error")
			}
		})
	}

	if _, err := NewUploader(S3Config{AccessKey: "a", SecretKey: "s", Bucket: "b", Region: "us-east-1", Endpoint: "http://localhost:9000"}, nil); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
