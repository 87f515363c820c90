package cv

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/domain/cv"
	"github.com/careerone/portfolio/pkg/logger"
	"go.uber.org/zap"
)

const PreviewSelector = "#cv-preview"

type ExportResult struct {
	PDF          []byte
	BitmapWidth  int
	BitmapHeight int
	WidthMM      float64
	HeightMM     float64
}

// PDFExporter turns a rendered preview into an image-only PDF: the preview
// element is captured as a PNG, scaled to the A4 width and printed on one
// page.
type PDFExporter struct {
	renderer  service.Renderer
	templates *TemplateRenderer
	logger    logger.Logger
}

func NewPDFExporter(r service.Renderer, t *TemplateRenderer, log logger.Logger) *PDFExporter {
	return &PDFExporter{renderer: r, templates: t, logger: log}
}

func (e *PDFExporter) Export(ctx context.Context, previewHTML string) (*ExportResult, error) {
	bitmap, err := e.renderer.CaptureElement(ctx, previewHTML, PreviewSelector)
	if err != nil {
		return nil, fmt.Errorf("capture preview: %w", err)
	}

	img, err := png.DecodeConfig(bytes.NewReader(bitmap))
	if err != nil {
		return nil, fmt.Errorf("decode preview capture: %w", err)
	}
	if img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("preview capture is empty (%dx%d)", img.Width, img.Height)
	}

	widthMM, heightMM := cv.FitToPage(img.Width, img.Height)
	page, err := e.templates.RenderPDFPage(bitmap, widthMM, heightMM)
	if err != nil {
		return nil, err
	}

	pdf, err := e.renderer.PrintPDF(ctx, page, service.PrintA4)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}

	e.logger.Info("CV exported",
		zap.Int("bitmap_width", img.Width),
		zap.Int("bitmap_height", img.Height),
		zap.Float64("height_mm", heightMM),
		zap.Int("pdf_bytes", len(pdf)),
	)

	return &ExportResult{
		PDF:          pdf,
		BitmapWidth:  img.Width,
		BitmapHeight: img.Height,
		WidthMM:      widthMM,
		HeightMM:     heightMM,
	}, nil
}
