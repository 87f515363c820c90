package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/careerone/portfolio/internal/application/service"
	"github.com/careerone/portfolio/internal/config"
	"github.com/careerone/portfolio/pkg/logger"
)

// ChromeRenderer drives one shared headless Chrome. The browser starts on
// first use; every call gets its own tab.
type ChromeRenderer struct {
	execPath  string
	noSandbox bool
	timeout   time.Duration
	logger    logger.Logger

	mu            sync.Mutex
	closed        bool
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

func NewChromeRenderer(cfg config.Config, log logger.Logger) *ChromeRenderer {
	return &ChromeRenderer{
		execPath:  cfg.Chrome.Path,
		noSandbox: cfg.Chrome.NoSandbox,
		timeout:   cfg.Chrome.Timeout,
		logger:    log,
	}
}

func (r *ChromeRenderer) CaptureElement(ctx context.Context, html, selector string) ([]byte, error) {
	var buf []byte
	err := r.run(ctx, html,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Screenshot(selector, &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("capture %s: %w", selector, err)
	}
	return buf, nil
}

func (r *ChromeRenderer) PrintPDF(ctx context.Context, html string, opts service.PrintOptions) ([]byte, error) {
	var pdf []byte
	err := r.run(ctx, html,
		chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.PrintToPDF().
				WithPaperWidth(opts.PaperWidth).
				WithPaperHeight(opts.PaperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true)
			if opts.PageRanges != "" {
				params = params.WithPageRanges(opts.PageRanges)
			}
			var err error
			pdf, _, err = params.Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print pdf: %w", err)
	}
	return pdf, nil
}

// run opens a tab, loads html into it and runs the given actions.
func (r *ChromeRenderer) run(ctx context.Context, html string, actions ...chromedp.Action) error {
	browserCtx, err := r.browser()
	if err != nil {
		return err
	}

	tabCtx, cancel := chromedp.NewContext(browserCtx)
	defer cancel()

	// the tab must not outlive the caller's request
	execCtx, cancelReq := context.WithCancel(tabCtx)
	defer cancelReq()
	stop := context.AfterFunc(ctx, cancelReq)
	defer stop()
	if r.timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, r.timeout)
		defer cancelTimeout()
	}

	load := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		waitForImages(),
	}
	return chromedp.Run(execCtx, append(load, actions...)...)
}

// imagesSettled is true once every <img> has loaded or failed.
const imagesSettled = `Array.from(document.images).every(img => img.complete)`

// waitForImages holds the actions back until remote and data-URL images
// are decoded; SetDocumentContent does not wait for them.
func waitForImages() chromedp.Action {
	var settled bool
	return chromedp.Poll(imagesSettled, &settled, chromedp.WithPollingInterval(25*time.Millisecond))
}

func (r *ChromeRenderer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmt.Errorf("%w: closed", service.ErrRendererUnavailable)
	}
	if r.browserCtx != nil {
		return r.browserCtx, nil
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}
	if r.noSandbox {
		opts = append(opts, chromedp.NoSandbox, chromedp.Flag("disable-dev-shm-usage", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	// start the browser now so a missing binary fails here, not mid-export
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: start chrome: %v", service.ErrRendererUnavailable, err)
	}

	r.allocCancel = allocCancel
	r.browserCtx = browserCtx
	r.browserCancel = browserCancel
	r.logger.Info("Headless Chrome started", zap.String("exec_path", r.execPath))
	return browserCtx, nil
}

func (r *ChromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	if r.browserCancel != nil {
		r.browserCancel()
	}
	if r.allocCancel != nil {
		r.allocCancel()
	}
	r.browserCtx = nil
	return nil
}

var _ service.Renderer = (*ChromeRenderer)(nil)
