package service

import (
	"context"
	"errors"
)

// ErrRendererUnavailable means no browser could be started.
var ErrRendererUnavailable = errors.New("renderer unavailable")

// PrintOptions describes the paper of a printed PDF. Sizes are in inches.
type PrintOptions struct {
	PaperWidth  float64
	PaperHeight float64
	PageRanges  string
}

// A4 portrait with no margins.
var PrintA4 = PrintOptions{PaperWidth: 8.27, PaperHeight: 11.69, PageRanges: "1"}

type Renderer interface {
	// CaptureElement loads html and returns a PNG of the first element
	// matching selector.
	CaptureElement(ctx context.Context, html, selector string) ([]byte, error)
	PrintPDF(ctx context.Context, html string, opts PrintOptions) ([]byte, error)
	Close() error
}
