package media

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/internal/domain/panel"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const MaxUploadSize = 5 << 20

type Purpose string

const (
	PurposeProfilePhoto Purpose = "photo"
	PurposeCertificate  Purpose = "certificate"
)

func (p Purpose) folder() string {
	switch p {
	case PurposeProfilePhoto:
		return "portfolio/photos"
	case PurposeCertificate:
		return "portfolio/certificates"
	}
	return "portfolio/misc"
}

func (p Purpose) accepts(mime *mimetype.MIME) bool {
	if strings.HasPrefix(mime.String(), "image/") {
		return true
	}
	return p == PurposeCertificate && mime.Is("application/pdf")
}

type UploadMediaUseCase struct {
	uploader  service.Uploader
	publisher service.ActivityPublisher
	logger    logger.Logger
}

func NewUploadMediaUseCase(u service.Uploader, pub service.ActivityPublisher, log logger.Logger) *UploadMediaUseCase {
	return &UploadMediaUseCase{uploader: u, publisher: pub, logger: log}
}

type UploadMediaInput struct {
	File     io.Reader
	Filename string
	Purpose  Purpose
}

type UploadMediaOutput struct {
	URL      string
	MimeType string
	Size     int
}

func (uc *UploadMediaUseCase) Execute(ctx context.Context, input UploadMediaInput) (*UploadMediaOutput, error) {
	data, err := io.ReadAll(io.LimitReader(input.File, MaxUploadSize+1))
	if err != nil {
		return nil, apperror.NewInvalidInput("cannot read uploaded file", err)
	}
	if len(data) == 0 {
		return nil, apperror.NewInvalidInput("uploaded file is empty", nil)
	}
	if len(data) > MaxUploadSize {
		return nil, apperror.NewInvalidInput("uploaded file is larger than 5MB", nil)
	}

	mime := mimetype.Detect(data)
	if !input.Purpose.accepts(mime) {
		return nil, apperror.NewInvalidInput("unsupported file type "+mime.String()+" for "+string(input.Purpose), nil)
	}

	publicID := panel.NewID()
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(data), input.Purpose.folder(), publicID)
	if err != nil {
		return nil, apperror.NewInternal("failed to store uploaded file", err)
	}

	uc.logger.Info("Media stored",
		zap.String("purpose", string(input.Purpose)),
		zap.String("mime", mime.String()),
		zap.Int("size", len(data)),
	)

	if uc.publisher != nil {
		desc := input.Filename
		if desc == "" {
			desc = publicID
		}
		a := activity.New(string(input.Purpose), activity.VerbUploaded, activity.Title(string(input.Purpose), activity.VerbUploaded), desc)
		if err := uc.publisher.Publish(ctx, a); err != nil {
			uc.logger.Error("Failed to publish activity", err, zap.String("kind", a.Kind))
		}
	}

	return &UploadMediaOutput{URL: url, MimeType: mime.String(), Size: len(data)}, nil
}
