// Package auth implements the authentication engine: cookie-based auth
// with form-login fallback, multi-step flow handling, human-like input
// simulation and post-submit outcome classification.
package auth

import (
	"log/slog"
	"time"

	"github.com/use-agent/keyhole/browser"
	"github.com/use-agent/keyhole/config"
	"github.com/use-agent/keyhole/models"
	"github.com/use-agent/keyhole/platform"
)

const (
	overlayDismissAttempts      = 3
	interstitialDismissAttempts = 2
)

// Engine drives one login flow per session. It holds only timing
// budgets, so a single Engine serves concurrent sessions.
type Engine struct {
	cfg config.LoginConfig
}

// NewEngine creates an authentication engine with the given budgets.
func NewEngine(cfg config.LoginConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Login authenticates the session for targetURL and returns a closed
// tagged outcome. Structural failures (a field that never appears, no
// way to submit) come back as the Fatal state with a reason; they never
// panic or crash the service.
func (e *Engine) Login(s browser.Session, creds *models.Credentials, targetURL string) models.LoginOutcome {
	platformID := creds.Platform
	if platformID == "" {
		platformID = platform.Detect(targetURL)
	}
	prof := platform.Resolve(platformID)
	slog.Info("starting authentication", "platform", platformID, "target", targetURL)

	// ── Cookie path: skip the form entirely when it works ───────────
	if len(creds.Cookies) > 0 {
		if out, ok := e.cookieAuth(s, creds, targetURL, platformID); ok {
			return out
		}
		slog.Warn("cookie authentication failed, falling back to form login", "platform", platformID)
	}

	// ── Form path ───────────────────────────────────────────────────
	loginURL := resolveLoginURL(creds, prof, targetURL)
	slog.Info("navigating to login page", "url", loginURL)
	if err := s.Navigate(loginURL); err != nil {
		return fatal(platformID, "login page navigation failed: "+err.Error())
	}
	time.Sleep(e.cfg.NavigationSettle)
	e.dismissRepeatedly(s, jsDismissOverlays, overlayDismissAttempts)

	generic := genericProfile()

	// Email entry. Absence of the field after the full wait is fatal.
	emailChain := selectorChain(creds.EmailSelector, prof.EmailSelectors, generic.EmailSelectors)
	emailSel, ok := FindVisible(s, emailChain, e.cfg.FieldTimeout)
	if !ok {
		return fatal(platformID, "email field not found")
	}
	if !e.typeWithRetry(s, emailSel, creds.Email) {
		return fatal(platformID, "could not type into email field")
	}
	time.Sleep(e.cfg.InputSettle)

	// Multi-step: advance to the password screen when the platform
	// splits credential entry. Failure to advance is non-fatal; the
	// password wait below gets the final say.
	passChain := selectorChain(creds.PasswordSelector, prof.PasswordSelectors, generic.PasswordSelectors)
	if prof.MultiStep {
		if _, visible := FindVisible(s, passChain, e.cfg.MultiStepProbe); !visible {
			slog.Info("multi-step flow detected, advancing", "platform", platformID)
			if !evalBool(s, jsAdvanceNext, emailSel) {
				slog.Warn("could not advance multi-step flow", "platform", platformID)
			}
			time.Sleep(e.cfg.StepSettle)
		}
	}

	// Password entry.
	passSel, ok := FindVisible(s, passChain, e.cfg.FieldTimeout)
	if !ok {
		return fatal(platformID, "password field not found")
	}
	if !e.typeWithRetry(s, passSel, creds.Password) {
		return fatal(platformID, "could not type into password field")
	}
	time.Sleep(e.cfg.InputSettle)

	// Submit, with the navigation wait armed first so a fast redirect
	// is not missed between the click and the subscription.
	waitNav := s.WaitNavigation(e.postSubmitWait(creds, prof))
	if !e.submit(s, creds, prof, generic, passSel) {
		return fatal(platformID, "could not submit login form")
	}

	// Post-submit wait: the navigation event or the platform wait,
	// whichever resolves first, then a short settle and interstitial
	// cleanup before classification.
	waitNav()
	time.Sleep(e.cfg.InputSettle)
	e.dismissRepeatedly(s, jsDismissInterstitials, interstitialDismissAttempts)

	out := Classify(s, prof, platformID)

	// Hop back to the target when the flow landed elsewhere.
	if out.Authenticated() && !browser.SameTarget(s.CurrentURL(), targetURL) {
		slog.Info("navigating to target after login", "target", targetURL)
		if err := s.Navigate(targetURL); err != nil {
			slog.Warn("post-login navigation failed", "error", err)
		} else {
			time.Sleep(e.cfg.NavigationSettle)
		}
	}
	return out
}

// cookieAuth seeds cookies, navigates to the target and verifies the
// session. The second return is false when the form fallback should run.
func (e *Engine) cookieAuth(s browser.Session, creds *models.Credentials, targetURL, platformID string) (models.LoginOutcome, bool) {
	slog.Info("attempting cookie-based authentication", "platform", platformID)

	if !seedCookies(s, creds.Cookies, e.cfg.InputSettle) {
		return models.LoginOutcome{}, false
	}
	if err := s.Navigate(targetURL); err != nil {
		slog.Warn("cookie verification navigation failed", "error", err)
		return models.LoginOutcome{}, false
	}
	time.Sleep(e.cfg.CookieVerifySettle)

	if verifyAuthenticated(s) {
		slog.Info("cookie authentication successful", "platform", platformID)
		return models.LoginOutcome{State: models.LoginAuthenticated, Platform: platformID}, true
	}
	return models.LoginOutcome{}, false
}

// resolveLoginURL picks the login page: explicit override, then the
// platform profile, then the target URL itself as last resort.
func resolveLoginURL(creds *models.Credentials, prof platform.Profile, targetURL string) string {
	if creds.LoginURL != "" {
		return creds.LoginURL
	}
	if prof.LoginURL != "" {
		return prof.LoginURL
	}
	return targetURL
}

// typeWithRetry runs the typist, retrying once when the field vanished
// mid-typing (overlays and re-renders routinely steal focus on login
// pages).
func (e *Engine) typeWithRetry(s browser.Session, selector, text string) bool {
	if TypeInto(s, selector, text) {
		return true
	}
	slog.Warn("typing failed, retrying once", "selector", selector)
	time.Sleep(e.cfg.InputSettle)
	return TypeInto(s, selector, text)
}

// submit clicks the first visible submit control from the resolved
// chain, then falls back to an Enter keypress on the password field or
// native form submission.
func (e *Engine) submit(s browser.Session, creds *models.Credentials, prof, generic platform.Profile, passSel string) bool {
	chain := selectorChain(creds.SubmitSelector, prof.SubmitSelectors, generic.SubmitSelectors)
	if sel, ok := FindVisible(s, chain, e.cfg.SubmitProbe); ok {
		if evalBool(s, jsClickSelector, sel) {
			return true
		}
	}
	if evalBool(s, jsSubmitHeuristic) {
		return true
	}
	slog.Warn("no submit button found, falling back to Enter/native submit")
	return evalBool(s, jsSubmitFallback, passSel)
}

// postSubmitWait resolves the post-submit wait duration: per-request
// override, else the platform profile, lower-bounded by the configured
// minimum.
func (e *Engine) postSubmitWait(creds *models.Credentials, prof platform.Profile) time.Duration {
	wait := prof.WaitAfterLogin
	if creds.WaitAfterLoginSecs > 0 {
		wait = time.Duration(creds.WaitAfterLoginSecs) * time.Second
	}
	if wait < e.cfg.MinPostSubmitWait {
		wait = e.cfg.MinPostSubmitWait
	}
	return wait
}

// dismissRepeatedly clicks through stacked prompts, stopping early once
// an attempt dismisses nothing.
func (e *Engine) dismissRepeatedly(s browser.Session, script string, attempts int) {
	for i := 0; i < attempts; i++ {
		if !evalBool(s, script) {
			return
		}
		time.Sleep(e.cfg.InputSettle)
	}
}

func fatal(platformID, reason string) models.LoginOutcome {
	slog.Error("login failed", "platform", platformID, "reason", reason)
	return models.LoginOutcome{State: models.LoginFatal, Platform: platformID, Reason: reason}
}
