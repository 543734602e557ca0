package s3adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"learnhr.service/internal/ports/storage"
)

type stubS3Client struct {
	err error
	got *s3.PutObjectInput
}

func (s *stubS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.got = params
	if s.err != nil {
		return nil, s.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestBlobStoreUpload(t *testing.T) {
	t.Run("returns the public URL", func(t *testing.T) {
		client := &stubS3Client{}
		store := NewBlobStore(client, "attendance-photos", "https://cdn.example.com")

		url, err := store.Upload(context.Background(), "attendance/emp-1/2026-03-02-in-abc", []byte("jpeg"), "image/jpeg")
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
		if url != "https://cdn.example.com/attendance/emp-1/2026-03-02-in-abc" {
			t.Errorf("Upload() url = %q", url)
		}
		if client.got == nil || *client.got.Bucket != "attendance-photos" {
			t.Error("PutObject not called with the configured bucket")
		}
	})

	t.Run("timeout maps to ErrUploadTimeout", func(t *testing.T) {
		client := &stubS3Client{err: context.DeadlineExceeded}
		store := NewBlobStore(client, "attendance-photos", "https://cdn.example.com")

		_, err := store.Upload(context.Background(), "k", []byte("jpeg"), "image/jpeg")
		if !errors.Is(err, storage.ErrUploadTimeout) {
			t.Fatalf("Upload() error = %v, want ErrUploadTimeout", err)
		}
	})

	t.Run("other failures map to ErrUploadFailed", func(t *testing.T) {
		client := &stubS3Client{err: errors.New("access denied")}
		store := NewBlobStore(client, "attendance-photos", "https://cdn.example.com")

		_, err := store.Upload(context.Background(), "k", []byte("jpeg"), "image/jpeg")
		if !errors.Is(err, storage.ErrUploadFailed) {
			t.Fatalf("Upload() error = %v, want ErrUploadFailed", err)
		}
	})
}
