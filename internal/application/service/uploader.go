package service

import (
	"context"
	"io"
)

// Uploader stores a file and returns a URL it can be embedded or fetched
// from.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
