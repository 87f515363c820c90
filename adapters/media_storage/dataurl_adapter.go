package media_storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/careerone/portfolio/internal/application/service"
)

// dataURLAdapter keeps nothing: the returned URL carries the whole file.
// Used when no Cloudinary account is configured.
type dataURLAdapter struct{}

func NewDataURLAdapter() service.Uploader {
	return dataURLAdapter{}
}

func (dataURLAdapter) Upload(_ context.Context, file io.Reader, _ string, _ string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	mime := mimetype.Detect(data)
	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func (dataURLAdapter) Delete(context.Context, string) error {
	return nil
}
