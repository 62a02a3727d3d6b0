package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultBrowserTimeout bounds a headless render.
const DefaultBrowserTimeout = 30 * time.Second

// WithBrowser renders a page in headless Chrome and returns the resulting HTML.
// Job boards that build the posting client-side return almost no text over plain HTTP.
func WithBrowser(ctx context.Context, url string, timeout time.Duration, logger *slog.Logger) (string, error) {
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("rendering page in headless browser", "url", url)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var rendered string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &rendered),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Timeout: isTimeoutErr(err), Cause: err}
	}

	logger.Debug("browser render complete", "url", url, "bytes", len(rendered))
	return rendered, nil
}

// Renderer renders a page with a headless browser.
type Renderer func(ctx context.Context, url string) (string, error)

// BrowserRenderer returns a Renderer backed by WithBrowser.
func BrowserRenderer(timeout time.Duration, logger *slog.Logger) Renderer {
	return func(ctx context.Context, url string) (string, error) {
		html, err := WithBrowser(ctx, url, timeout, logger)
		if err != nil {
			return "", fmt.Errorf("render %s: %w", url, err)
		}
		return html, nil
	}
}
