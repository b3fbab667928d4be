package storage

import (
	"context"
	"io"

	"github.com/yoockh/jobportal/internal/models"
)

// ObjectStore keeps uploaded files (resumes, profile images, company logos).
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (models.FileRef, error)
	Delete(ctx context.Context, key string) error
	// URI returns the provider-native locator of key, ex: gs://bucket/key.
	URI(key string) string
}
