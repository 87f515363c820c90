package service

import "context"

// PreviewCache keeps rendered preview documents. A miss is ("", false, nil).
type PreviewCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, html string) error
}
