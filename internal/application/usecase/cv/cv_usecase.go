package cv

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/domain/activity"
	"github.com/careerone/portfolio/internal/domain/cv"
	"github.com/careerone/portfolio/internal/domain/panel"
	"github.com/careerone/portfolio/pkg/apperror"
	"github.com/careerone/portfolio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	Kind          = "cv"
	archiveFolder = "cv/exports"
)

var tracer = otel.Tracer("github.com/careerone/portfolio/cv")

type CVUseCase struct {
	source    cv.DocumentSource
	templates *TemplateRenderer
	exporter  *PDFExporter
	generator *Generator
	cache     service.PreviewCache
	archive   service.Uploader
	publisher service.ActivityPublisher
	filename  string
	logger    logger.Logger

	mu       sync.RWMutex
	settings cv.Settings
}

// NewCVUseCase wires the export pipeline. exporter, cache, archive and pub
// may be nil: without an exporter downloads report the service as
// unavailable, the others are skipped.
func NewCVUseCase(
	source cv.DocumentSource,
	templates *TemplateRenderer,
	exporter *PDFExporter,
	generator *Generator,
	cache service.PreviewCache,
	archive service.Uploader,
	pub service.ActivityPublisher,
	filename string,
	log logger.Logger,
) *CVUseCase {
	return &CVUseCase{
		source:    source,
		templates: templates,
		exporter:  exporter,
		generator: generator,
		cache:     cache,
		archive:   archive,
		publisher: pub,
		filename:  filename,
		logger:    log,
		settings:  cv.DefaultSettings(),
	}
}

func (uc *CVUseCase) ExecuteGetSettings() cv.Settings {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.settings
}

// ExecuteUpdateSettings applies the fields present in patch. An invalid
// result leaves the stored settings untouched.
func (uc *CVUseCase) ExecuteUpdateSettings(patch cv.SettingsPatch) (cv.Settings, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := patch.Apply(uc.settings)
	if err := next.Validate(); err != nil {
		return uc.settings, apperror.NewInvalidInput("cv settings rejected", err)
	}
	uc.settings = next
	return next, nil
}

func (uc *CVUseCase) ExecuteRequestPreview() cv.PreviewStatus {
	return uc.generator.Request()
}

func (uc *CVUseCase) ExecutePreviewStatus() cv.PreviewStatus {
	return uc.generator.Status()
}

func (uc *CVUseCase) ExecuteResetPreview() cv.PreviewStatus {
	return uc.generator.Reset()
}

// ExecuteRenderPreview returns the preview document. It is a conflict to
// ask before the preview is ready.
func (uc *CVUseCase) ExecuteRenderPreview(ctx context.Context) (string, error) {
	if !uc.generator.Status().IsReady() {
		return "", apperror.NewConflict("cv preview", "preview is not ready; request one and wait for it to finish")
	}
	return uc.render(ctx)
}

func (uc *CVUseCase) render(ctx context.Context) (string, error) {
	settings := uc.ExecuteGetSettings()
	doc, err := uc.source.Document(ctx)
	if err != nil {
		return "", apperror.NewInternal("failed to load cv data", err)
	}

	key, err := previewKey(settings, doc)
	if err != nil {
		return "", apperror.NewInternal("failed to hash preview", err)
	}
	if uc.cache != nil {
		html, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.Warn("Preview cache read failed", zap.Error(err))
		} else if ok {
			return html, nil
		}
	}

	html, err := uc.templates.Render(doc, settings)
	if err != nil {
		return "", apperror.NewInternal("failed to render cv preview", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, html); err != nil {
			uc.logger.Warn("Preview cache write failed", zap.Error(err))
		}
	}
	return html, nil
}

type DownloadOutput struct {
	Filename   string
	PDF        []byte
	ArchiveURL string
}

func (uc *CVUseCase) ExecuteDownload(ctx context.Context) (*DownloadOutput, error) {
	ctx, span := tracer.Start(ctx, "cv.download", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	if !uc.generator.Status().IsReady() {
		return nil, apperror.NewConflict("cv download", "preview is not ready; nothing to download")
	}
	if uc.exporter == nil {
		return nil, apperror.NewUnavailable("pdf export needs a headless browser and none is configured", nil)
	}

	html, err := uc.render(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, err
	}

	res, err := uc.exporter.Export(ctx, html)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export failed")
		uc.logger.Error("CV export failed", err)
		if errors.Is(err, service.ErrRendererUnavailable) {
			return nil, apperror.NewUnavailable("headless browser could not be started", err)
		}
		return nil, apperror.NewInternal("failed to export cv", err)
	}
	span.SetAttributes(
		attribute.String("cv.template", string(uc.ExecuteGetSettings().Template)),
		attribute.Int("cv.bitmap.width", res.BitmapWidth),
		attribute.Int("cv.bitmap.height", res.BitmapHeight),
	)

	out := &DownloadOutput{Filename: uc.filename, PDF: res.PDF}
	if uc.archive != nil {
		url, err := uc.archive.Upload(ctx, bytes.NewReader(res.PDF), archiveFolder, panel.NewID())
		if err != nil {
			uc.logger.Error("Failed to archive exported cv", err)
		} else {
			out.ArchiveURL = url
		}
	}

	if uc.publisher != nil {
		a := activity.New(Kind, activity.VerbExported, "CV Exported", uc.filename)
		if err := uc.publisher.Publish(ctx, a); err != nil {
			uc.logger.Error("Failed to publish activity", err, zap.String("kind", a.Kind))
		}
	}
	return out, nil
}

// Close cancels any pending preview generation.
func (uc *CVUseCase) Close() {
	uc.generator.Close()
}

func previewKey(settings cv.Settings, doc *cv.Document) (string, error) {
	b, err := json.Marshal(struct {
		Settings cv.Settings
		Doc      *cv.Document
	}{settings, doc})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "cv:preview:" + hex.EncodeToString(sum[:]), nil
}
