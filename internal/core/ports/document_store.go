package ports

import (
	"context"
	"io"
	"time"
)

// Upload describes a file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DocumentStore persists client attachments (invoice, LR) as objects.
type DocumentStore interface {
	// Put stores the upload under the given prefix and returns the object key.
	Put(ctx context.Context, prefix string, up Upload) (string, error)
	Delete(ctx context.Context, key string) error
	// URL returns a temporary download link for key.
	URL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
