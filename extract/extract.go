// Package extract implements the post-login extraction pipeline:
// navigation gating, DOM readiness, lazy-load triggering and structured
// document assembly.
package extract

import (
	"log/slog"
	"time"

	"github.com/use-agent/keyhole/browser"
	"github.com/use-agent/keyhole/models"
)

// Extractor runs the extraction pipeline against an owned session.
// The timing fields are budgets for the pipeline's bounded waits.
type Extractor struct {
	// DOMReadyTimeout bounds the wait for a body element to exist.
	DOMReadyTimeout time.Duration

	// DOMReadyInterval is the polling tick for the DOM-ready wait.
	DOMReadyInterval time.Duration

	// ScrollSettle is the pause between lazy-load scroll passes.
	ScrollSettle time.Duration

	// NavigationSettle is the pause after navigating to the target.
	NavigationSettle time.Duration
}

// maxScrollPasses bounds lazy-load triggering on pages whose height
// never stabilizes (infinite feeds).
const maxScrollPasses = 5

// NewExtractor returns an extractor with production budgets.
func NewExtractor() *Extractor {
	return &Extractor{
		DOMReadyTimeout:  10 * time.Second,
		DOMReadyInterval: 500 * time.Millisecond,
		ScrollSettle:     1500 * time.Millisecond,
		NavigationSettle: 2 * time.Second,
	}
}

// Extract navigates to targetURL when the session is not already there,
// waits for a usable DOM, triggers lazy-loaded content and assembles the
// structured document. Each step is a precondition for the next.
func (e *Extractor) Extract(s browser.Session, targetURL string) (*models.Document, error) {
	// ── 1. Navigation gating ────────────────────────────────────────
	if !browser.SameTarget(s.CurrentURL(), targetURL) {
		if err := s.Navigate(targetURL); err != nil {
			return nil, models.NewScrapeError(
				models.ErrCodeNavigation,
				"navigation to target URL failed",
				err,
			)
		}
		time.Sleep(e.NavigationSettle)
	}

	// ── 2. DOM anchor wait ──────────────────────────────────────────
	ready := browser.Poll(e.DOMReadyInterval, e.DOMReadyTimeout, func() bool {
		res, err := s.Eval(jsBodyReady)
		return err == nil && res.Bool()
	})
	if !ready {
		return nil, models.NewScrapeError(
			models.ErrCodeExtraction,
			"timeout waiting for body element",
			nil,
		)
	}

	// ── 3. Lazy-load triggering ─────────────────────────────────────
	e.scrollForLazyContent(s)

	// ── 4. Text content ─────────────────────────────────────────────
	var text string
	if res, err := s.Eval(jsBodyText, MaxTextLen); err != nil {
		slog.Warn("body text extraction failed", "error", err)
	} else {
		text = res.Str()
	}
	if runes := []rune(text); len(runes) > MaxTextLen {
		text = string(runes[:MaxTextLen])
	}

	// ── 5. Structured fields from the rendered HTML ─────────────────
	rawHTML, err := s.HTML()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeExtraction,
			"failed to read rendered HTML",
			err,
		)
	}
	doc, err := parseDoc(rawHTML)
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeExtraction,
			"failed to parse rendered HTML",
			err,
		)
	}

	sourceURL := s.CurrentURL()
	if sourceURL == "" {
		sourceURL = targetURL
	}

	return &models.Document{
		Title:       pageTitle(doc, s.Title()),
		Description: pageDescription(doc, rawHTML, sourceURL),
		Text:        text,
		Images:      collectImages(doc, sourceURL),
		Links:       collectLinks(doc, sourceURL),
	}, nil
}

// scrollForLazyContent scrolls to the bottom at most maxScrollPasses
// times, stopping early once the document height stabilizes, then
// returns to the top. Failures are absorbed; a page that cannot scroll
// still gets extracted as-is.
func (e *Extractor) scrollForLazyContent(s browser.Session) {
	lastHeight := -1
	for i := 0; i < maxScrollPasses; i++ {
		res, err := s.Eval(jsScrollToBottom)
		if err != nil {
			slog.Debug("lazy-load scroll failed", "error", err)
			break
		}
		height := res.Int()
		if height == lastHeight {
			break
		}
		lastHeight = height
		time.Sleep(e.ScrollSettle)
	}

	if _, err := s.Eval(jsScrollToTop); err == nil {
		time.Sleep(e.ScrollSettle / 3)
	}
}
