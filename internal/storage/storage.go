package storage

import (
	"context"
	"io"
)

// ImageStore is the external image-hosting collaborator. Implementations
// return a publicly reachable URL for every stored object.
type ImageStore interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}
