package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/resume-optimizer/internal/fetch"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/parsing"
)

// URLOptions configures FromURL.
type URLOptions struct {
	Fetch *fetch.Options
	// Render re-renders the page when the static HTML yields too little text.
	// Nil disables the browser fallback.
	Render fetch.Renderer
	Logger *slog.Logger
	Now    func() time.Time
}

// FromURL fetches a job page, sanitizes it into text and, when the text is
// shorter than fetch.MinContentLength, retries with the browser renderer.
// Pages that still yield too little text fail with fetch.ErrInsufficientContent.
func FromURL(ctx context.Context, rawURL string, opts URLOptions) (*Page, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Logger()
	}
	fetchOpts := opts.Fetch
	if fetchOpts == nil {
		fetchOpts = fetch.JobPageOptions()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	result, err := fetch.URL(ctx, rawURL, fetchOpts)
	if err != nil {
		return nil, err
	}
	capturedAt := now()

	text := fetch.SanitizeHTML(result.HTML)
	logger.Debug("job page fetched",
		"url", rawURL,
		"html_bytes", len(result.HTML),
		"text_chars", len(text),
	)

	if !fetch.HasSufficientContent(text) && opts.Render != nil {
		logger.Info("page content too short, rendering with browser", "url", rawURL, "text_chars", len(text))
		rendered, renderErr := opts.Render(ctx, rawURL)
		if renderErr != nil {
			logger.Warn("browser rendering failed, using static content", "url", rawURL, "error", renderErr)
		} else if renderedText := fetch.SanitizeHTML(rendered); len(renderedText) > len(text) {
			text = renderedText
		}
	}

	if !fetch.HasSufficientContent(text) {
		return nil, fmt.Errorf("%s: %w", rawURL, fetch.ErrInsufficientContent)
	}

	return newPage(text, parsing.NewSource(rawURL, capturedAt)), nil
}
