package s3adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"learnhr.service/internal/ports/storage"
)

// uploadTimeout bounds a single photo upload. On expiry the in-flight request
// is aborted and the caller gets a timeout error it can present as "retry".
const uploadTimeout = 30 * time.Second

// S3Client defines the interface for the AWS S3 client.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BlobStore implements storage.BlobStore on AWS S3.
type BlobStore struct {
	client  S3Client
	bucket  string
	baseURL string
}

// NewBlobStore create new instance
func NewBlobStore(client S3Client, bucket, baseURL string) *BlobStore {
	return &BlobStore{client: client, bucket: bucket, baseURL: baseURL}
}

// Upload stores the blob and returns its public URL. Timeouts are reported as
// storage.ErrUploadTimeout, everything else as storage.ErrUploadFailed, so the
// caller can distinguish "try again" from "check your file".
func (s *BlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	tracer := otel.Tracer("s3-blob-store")
	ctx, span := tracer.Start(ctx, "upload_blob", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("app.blob_key", key),
		attribute.Int("app.blob_bytes", len(data)),
	)

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s", storage.ErrUploadTimeout, key)
		}
		return "", fmt.Errorf("%w: %v", storage.ErrUploadFailed, err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}
