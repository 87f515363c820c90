package cv

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/domain/activity"
)

type fakeRenderer struct {
	width, height int
	captureErr    error

	mu        sync.Mutex
	captured  []string
	printed   []string
	printOpts []service.PrintOptions
}

func (f *fakeRenderer) CaptureElement(_ context.Context, html, selector string) ([]byte, error) {
	f.mu.Lock()
	f.captured = append(f.captured, selector)
	f.mu.Unlock()
	if f.captureErr != nil {
		return nil, f.captureErr
	}

	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	img.Set(0, 0, color.RGBA{R: 0, G: 86, B: 179, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *fakeRenderer) PrintPDF(_ context.Context, html string, opts service.PrintOptions) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.printed = append(f.printed, html)
	f.printOpts = append(f.printOpts, opts)
	return []byte("%PDF-1.4\n%fake\n"), nil
}

func (f *fakeRenderer) Close() error { return nil }

type countingCache struct {
	mu      sync.Mutex
	entries map[string]string
	hits    int
	sets    int
}

func (c *countingCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *countingCache) Set(_ context.Context, key, html string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]string)
	}
	c.entries[key] = html
	c.sets++
	return nil
}

type recordingPublisher struct {
	mu    sync.Mutex
	kinds []string
}

func (p *recordingPublisher) Publish(_ context.Context, a activity.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, a.Kind)
	return nil
}

type fakeArchive struct {
	folder string
	size   int
}

func (a *fakeArchive) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	a.folder = folder
	a.size = len(b)
	return "https://res.cloudinary.com/demo/raw/upload/" + folder + "/" + publicID + ".pdf", nil
}

func (a *fakeArchive) Delete(context.Context, string) error { return nil }

func mustDecodeWidth(t *testing.T, b []byte) int {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	return cfg.Width
}
