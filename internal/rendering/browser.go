package rendering

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/application-tailor/internal/layout"
)

// DefaultBrowserTimeout bounds one headless conversion.
const DefaultBrowserTimeout = 60 * time.Second

// pointsPerInch and pixelsPerPoint convert layout units for the browser.
const (
	pointsPerInch  = 72.0
	pixelsPerPoint = 96.0 / 72.0
)

// Browser converts rendered HTML into binary artifacts.
type Browser interface {
	PrintPDF(ctx context.Context, html []byte, size layout.Size) ([]byte, error)
	Screenshot(ctx context.Context, html []byte, size layout.Size, scale float64) ([]byte, error)
}

// ChromeBrowser drives a headless Chrome through the DevTools protocol.
// Requires Chrome/Chromium to be installed on the system.
type ChromeBrowser struct {
	// ExecPath overrides the Chrome binary; empty uses the default lookup.
	ExecPath string
	Timeout  time.Duration
}

// NewChromeBrowser creates a browser using the given Chrome binary (may be empty).
func NewChromeBrowser(execPath string) *ChromeBrowser {
	return &ChromeBrowser{ExecPath: execPath, Timeout: DefaultBrowserTimeout}
}

// PrintPDF prints html on paper of the given size with no margins and backgrounds enabled.
func (b *ChromeBrowser) PrintPDF(ctx context.Context, html []byte, size layout.Size) ([]byte, error) {
	var pdf []byte
	err := b.run(ctx, html, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(size.Width / pointsPerInch).
			WithPaperHeight(size.Height / pointsPerInch).
			WithMarginTop(0).
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			WithPreferCSSPageSize(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("pdf printing failed: %w", err)
	}
	return pdf, nil
}

// Screenshot captures html as PNG in a viewport of one page at the given device scale.
func (b *ChromeBrowser) Screenshot(ctx context.Context, html []byte, size layout.Size, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	width := int64(math.Ceil(size.Width * pixelsPerPoint))
	height := int64(math.Ceil(size.Height * pixelsPerPoint))

	var png []byte
	err := b.run(ctx, html,
		chromedp.EmulateViewport(width, height, chromedp.EmulateScale(scale)),
		chromedp.CaptureScreenshot(&png),
	)
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return png, nil
}

// run loads html from a temporary file and performs actions once the body is ready.
func (b *ChromeBrowser) run(ctx context.Context, html []byte, actions ...chromedp.Action) error {
	tmpDir, err := os.MkdirTemp("", "application-tailor-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, html, 0o600); err != nil {
		return err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if b.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	start := time.Now()
	tasks := chromedp.Tasks{
		chromedp.Navigate("file://" + htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	tasks = append(tasks, actions...)
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return err
	}
	slog.DebugContext(ctx, "headless conversion finished", "bytes", len(html), "elapsed", time.Since(start))
	return nil
}
