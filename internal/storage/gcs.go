package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/yoockh/jobportal/internal/models"
)

type GCSStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	c, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSStore{client: c, bucket: bucket}, nil
}

func (s *GCSStore) Close() error { return s.client.Close() }

func (s *GCSStore) Put(ctx context.Context, key string, contentType string, r io.Reader) (models.FileRef, error) {
	obj := s.client.Bucket(s.bucket).Object(key)

	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return models.FileRef{}, err
	}
	if err := w.Close(); err != nil {
		return models.FileRef{}, err
	}

	// public read so the client can render logos and download resumes
	if err := obj.ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return models.FileRef{}, err
	}

	return models.FileRef{Key: key, URL: s.PublicURL(key)}, nil
}

func (s *GCSStore) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (s *GCSStore) URI(key string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, key)
}

func (s *GCSStore) PublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}
