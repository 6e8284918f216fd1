// Package scraper orchestrates one scrape request end to end: session
// acquisition, optional authentication, extraction and teardown.
package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/keyhole/auth"
	"github.com/use-agent/keyhole/browser"
	"github.com/use-agent/keyhole/config"
	"github.com/use-agent/keyhole/extract"
	"github.com/use-agent/keyhole/models"
)

// Scraper wires the browser manager, the authentication engine and the
// extraction pipeline. Safe for concurrent use: every request owns its
// page exclusively and the collaborators hold no per-request state.
type Scraper struct {
	manager   *browser.Manager
	engine    *auth.Engine
	extractor *extract.Extractor
	cfg       config.ScraperConfig
}

// New launches the browser and assembles the scraping pipeline.
func New(browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig, loginCfg config.LoginConfig) (*Scraper, error) {
	manager, err := browser.NewManager(browserCfg)
	if err != nil {
		return nil, err
	}
	return &Scraper{
		manager:   manager,
		engine:    auth.NewEngine(loginCfg),
		extractor: extract.NewExtractor(),
		cfg:       scraperCfg,
	}, nil
}

// Stats reports page pool utilisation for the health endpoint.
func (s *Scraper) Stats() models.PoolStats {
	return s.manager.Stats()
}

// Close tears down the page pool and the browser process.
func (s *Scraper) Close() {
	s.manager.Close()
}

// DoScrape runs one scrape request.
//
// The returned response always carries the login metadata, even when
// the error is non-nil: two-factor and captcha detections come back as
// typed errors alongside a response that reports what was detected, and
// extraction failures keep whatever login state was reached. A fatal
// login does NOT abort the request — extraction still runs against the
// unauthenticated page and the response reports login_success=false.
func (s *Scraper) DoScrape(ctx context.Context, req *models.ScrapeRequest) (*models.ScrapeResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.MaxTimeout)
	defer cancel()

	resp := &models.ScrapeResponse{
		URL:    req.URL,
		Images: []models.Image{},
		Links:  []models.Link{},
	}

	page, err := s.manager.Acquire()
	if err != nil {
		return resp, err
	}
	// Teardown on every exit path: park the page and return it to the
	// pool using the original reference, so cleanup succeeds even after
	// the request context has expired.
	defer s.manager.Release(page)

	sess := browser.NewRodSession(page.Context(ctx))

	// ── Authentication ──────────────────────────────────────────────
	if req.Login != nil {
		out := s.engine.Login(sess, req.Login, req.URL)
		resp.LoginAttempted = true
		resp.PlatformDetected = out.Platform
		resp.LoginSuccess = boolPtr(out.Authenticated())
		resp.Requires2FA = boolPtr(out.State == models.LoginTwoFactorRequired)

		switch out.State {
		case models.LoginTwoFactorRequired:
			// A detection, not a failure: report it specifically and
			// skip extraction rather than scraping a challenge page.
			return resp, models.NewScrapeError(
				models.ErrCodeTwoFactor,
				"two-factor authentication required, cannot proceed automatically",
				nil,
			)
		case models.LoginCaptchaRequired:
			return resp, models.NewScrapeError(
				models.ErrCodeCaptcha,
				"captcha challenge detected, not attempting to solve",
				nil,
			)
		case models.LoginAuthenticated:
			slog.Info("login succeeded", "platform", out.Platform)
		default:
			// CredentialRejected, Inconclusive, Fatal: extraction still
			// runs against the page we have.
			slog.Warn("login did not authenticate, extracting anyway",
				"platform", out.Platform,
				"state", out.State.String(),
				"reason", out.Reason,
			)
		}
	}

	// ── Extraction ──────────────────────────────────────────────────
	start := time.Now()
	doc, err := s.extractor.Extract(sess, req.URL)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return resp, models.NewScrapeError(
				models.ErrCodeTimeout,
				"scrape exceeded the maximum timeout",
				err,
			)
		}
		return resp, err
	}
	slog.Info("extraction complete",
		"url", req.URL,
		"durationMs", time.Since(start).Milliseconds(),
		"images", len(doc.Images),
		"links", len(doc.Links),
	)

	resp.Title = doc.Title
	resp.Description = doc.Description
	resp.Text = doc.Text
	resp.Images = doc.Images
	resp.Links = doc.Links
	resp.Success = true
	return resp, nil
}

func boolPtr(b bool) *bool { return &b }
