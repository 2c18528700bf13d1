package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// DefaultSupersample is the capture scale factor applied for print
// sharpness.
const DefaultSupersample = 2.0

// Rasterizer captures projected HTML as a full-height bitmap using a
// shared headless Chromium instance.
type Rasterizer struct {
	BrowserPath string
	Timeout     time.Duration
	Scale       float64

	initOnce      sync.Once
	initErr       error
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	// exportMu serializes forced-layout captures: only one export may
	// hold the page in its export state at a time.
	exportMu sync.Mutex
}

// NewRasterizer builds a Rasterizer with defaults. CHROME_PATH
// overrides browser discovery.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		BrowserPath: os.Getenv("CHROME_PATH"),
		Timeout:     60 * time.Second,
		Scale:       DefaultSupersample,
	}
}

// CaptureFull renders the HTML at the given fixed page width with
// unbounded height and returns the full-height capture. Empty input is
// a silent no-op returning (nil, nil); callers are expected to have
// checked they have something to render.
//
// The forced export layout (unscaled fixed width, natural height,
// visible overflow) is applied through a guard that restores the prior
// state even when the capture fails.
func (r *Rasterizer) CaptureFull(ctx context.Context, html []byte, widthPx int) (image.Image, error) {
	if len(html) == 0 {
		return nil, nil
	}
	if widthPx <= 0 {
		widthPx = 794
	}

	r.exportMu.Lock()
	defer r.exportMu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, fmt.Errorf("rasterizer init: %w", err)
	}

	tabCtx, cancel := chromedp.NewContext(r.browserCtx)
	defer cancel()

	execCtx := tabCtx
	stop := propagateCancel(ctx, tabCtx, cancel)
	defer stop()
	if r.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		execCtx, cancelTimeout = context.WithTimeout(execCtx, r.Timeout)
		defer cancelTimeout()
	}

	scale := r.Scale
	if scale <= 0 {
		scale = DefaultSupersample
	}

	guard := newChromedpLayoutGuard()
	var shot []byte

	err := chromedp.Run(execCtx,
		emulation.SetDeviceMetricsOverride(int64(widthPx), int64(PageHeightFor(widthPx)), 1, false),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if err := guard.force(ctx, forcedExportStyle(widthPx)); err != nil {
				return err
			}
			// One rendering tick so the forced styles settle before
			// anything is measured.
			return awaitFrame(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) (err error) {
			defer func() {
				// Restore runs even when capture fails; a broken
				// capture must not leave the page in export state.
				if rerr := guard.restore(ctx); rerr != nil && err == nil {
					err = rerr
				}
			}()

			var height int
			height, err = contentHeight(ctx)
			if err != nil {
				return err
			}
			shot, err = page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				WithCaptureBeyondViewport(true).
				WithClip(&page.Viewport{
					X:      0,
					Y:      0,
					Width:  float64(widthPx),
					Height: float64(height),
					Scale:  scale,
				}).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	return img, nil
}

// Close releases browser resources if they were initialized.
func (r *Rasterizer) Close() error {
	if r.browserCancel != nil {
		r.browserCancel()
	}
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func (r *Rasterizer) ensureBrowser() error {
	r.initOnce.Do(func() {
		opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		opts = append(opts,
			chromedp.Flag("headless", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)
		if r.BrowserPath != "" {
			opts = append(opts, chromedp.ExecPath(r.BrowserPath))
		}
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
		r.browserCtx, r.browserCancel = chromedp.NewContext(r.allocCtx)
	})
	if r.browserCtx == nil {
		return fmt.Errorf("browser context unavailable")
	}
	return r.initErr
}

func propagateCancel(ctx context.Context, tabCtx context.Context, cancel context.CancelFunc) func() {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-tabCtx.Done():
		case <-done:
		}
	}()
	return func() { close(done) }
}

func contentHeight(ctx context.Context) (int, error) {
	var height int
	err := chromedp.Evaluate(
		`Math.ceil(Math.max(document.body.scrollHeight, document.documentElement.scrollHeight))`,
		&height,
	).Do(ctx)
	return height, err
}

func awaitFrame(ctx context.Context) error {
	var settled bool
	return chromedp.Evaluate(
		`new Promise(resolve => requestAnimationFrame(() => resolve(true)))`,
		&settled,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		},
	).Do(ctx)
}
