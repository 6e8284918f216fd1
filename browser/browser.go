package browser

import (
	"log/slog"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/use-agent/keyhole/config"
	"github.com/use-agent/keyhole/models"
)

// Manager owns the browser process and the reusable page pool.
// It is safe for concurrent use; each acquired page is exclusively owned
// by one request until released.
type Manager struct {
	browser     *rod.Browser
	pagePool    rod.Pool[rod.Page]
	cfg         config.BrowserConfig
	activePages atomic.Int32
}

// NewManager launches a headless browser and initialises the page pool.
func NewManager(cfg config.BrowserConfig) (*Manager, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	// Flags that suppress the most common automation tells and the
	// background throttling that breaks settle-time assumptions.
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "AudioServiceOutOfProcess,TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserLaunch,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserLaunch,
			"failed to connect to browser",
			err,
		)
	}

	pool := rod.NewPagePool(cfg.MaxPages)
	slog.Info("page pool created", "maxPages", cfg.MaxPages)

	return &Manager{
		browser:  b,
		pagePool: pool,
		cfg:      cfg,
	}, nil
}

// Acquire borrows a page from the pool, creating one when the pool has
// capacity. Stealth evasions are applied in the create callback, once
// per page: EvalOnNewDocument registrations persist for the page's
// lifetime, so reapplying them on every pooled reuse would stack
// duplicate scripts.
func (m *Manager) Acquire() (*rod.Page, error) {
	page, err := m.pagePool.Get(func() (*rod.Page, error) {
		p, err := m.browser.Page(proto.TargetCreateTarget{})
		if err != nil {
			return nil, err
		}
		ApplyEvasions(p, m.cfg)
		return p, nil
	})
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodePageCreation,
			"failed to acquire page from pool",
			err,
		)
	}
	m.activePages.Add(1)
	return page, nil
}

// Release parks the page on about:blank and returns it to the pool.
// Call it on every exit path; the about:blank hop drops the old DOM and
// any session cookies' page-side leftovers before reuse.
func (m *Manager) Release(page *rod.Page) {
	if navErr := page.Navigate("about:blank"); navErr != nil {
		slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
	}
	m.pagePool.Put(page)
	m.activePages.Add(-1)
}

// Stats returns a snapshot of the pool's current state.
func (m *Manager) Stats() models.PoolStats {
	return models.PoolStats{
		MaxPages:    m.cfg.MaxPages,
		ActivePages: int(m.activePages.Load()),
	}
}

// Close drains the page pool and kills the browser process.
// Call this on graceful shutdown to prevent zombie Chrome processes.
func (m *Manager) Close() {
	slog.Info("browser shutting down: draining page pool")
	m.pagePool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	slog.Info("browser shutting down: closing browser")
	m.browser.MustClose()
	slog.Info("browser shutdown complete")
}
