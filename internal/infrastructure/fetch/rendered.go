package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/myang/missa-kala/internal/domain"
)

// Renderer retrieves a page's visible text after client-side scripts
// have run, using a headless browser tab. Each fetch acquires its own
// tab context and releases it on every return path.
type Renderer struct {
	timeout     time.Duration
	settleDelay time.Duration
	attempts    int
}

// RendererConfig holds configuration for the rendered fetcher
type RendererConfig struct {
	Timeout     time.Duration
	SettleDelay time.Duration
	Attempts    int
}

// NewRenderer creates a rendered fetcher. Zero config fields fall back
// to a 10s load timeout, 1.5s settle delay and 3 extraction attempts.
func NewRenderer(config RendererConfig) *Renderer {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	settleDelay := config.SettleDelay
	if settleDelay == 0 {
		settleDelay = 1500 * time.Millisecond
	}
	attempts := config.Attempts
	if attempts <= 0 {
		attempts = 3
	}
	return &Renderer{timeout: timeout, settleDelay: settleDelay, attempts: attempts}
}

// FetchRenderedText navigates a hidden tab to the URL, waits for the
// page to settle and returns the body text. The body is re-read after
// each settle delay until its length stops growing, so deferred script
// execution gets a chance to fill the menu in without always paying
// the full wait.
func (r *Renderer) FetchRenderedText(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout+time.Duration(r.attempts)*r.settleDelay)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	loadCtx, cancelLoad := context.WithTimeout(tabCtx, r.timeout)
	defer cancelLoad()
	if err := chromedp.Run(loadCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}

	var best string
	for attempt := 1; attempt <= r.attempts; attempt++ {
		var text string
		err := chromedp.Run(tabCtx,
			chromedp.Sleep(r.settleDelay),
			chromedp.Text("body", &text, chromedp.ByQuery),
		)
		if err != nil {
			if best != "" {
				break
			}
			return "", fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
		}
		if len(text) <= len(best) {
			// Content stopped growing, no point waiting further.
			break
		}
		best = text
		log.Printf("[RENDER] %s: attempt %d yielded %d chars", url, attempt, len(text))
	}

	if best == "" {
		return "", domain.ErrEmptyPage
	}
	return best, nil
}
