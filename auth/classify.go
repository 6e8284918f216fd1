package auth

import (
	"log/slog"
	"strings"
	"time"

	"github.com/use-agent/keyhole/browser"
	"github.com/use-agent/keyhole/models"
	"github.com/use-agent/keyhole/platform"
)

// successProbeTimeout bounds the wait for a profile success indicator to
// render after the post-submit settle.
const successProbeTimeout = 3 * time.Second

// Classify maps the post-submission DOM state to a login outcome.
// Priority order, first match wins: captcha, two-factor, credential
// error, configured success indicator, heuristic success (no login
// fields left and either an identity element or a non-auth URL),
// otherwise inconclusive.
func Classify(s browser.Session, prof platform.Profile, platformID string) models.LoginOutcome {
	if evalBool(s, jsCaptchaPresent) {
		slog.Warn("captcha challenge detected", "platform", platformID)
		return models.LoginOutcome{State: models.LoginCaptchaRequired, Platform: platformID}
	}

	if evalBool(s, jsTwoFactorPresent) {
		slog.Warn("two-factor prompt detected", "platform", platformID)
		return models.LoginOutcome{State: models.LoginTwoFactorRequired, Platform: platformID}
	}

	if evalBool(s, jsCredentialError) {
		slog.Info("credential error detected", "platform", platformID)
		return models.LoginOutcome{State: models.LoginCredentialRejected, Platform: platformID}
	}

	if len(prof.SuccessIndicators) > 0 {
		if sel, ok := FindVisible(s, prof.SuccessIndicators, successProbeTimeout); ok {
			slog.Info("success indicator visible", "platform", platformID, "selector", sel)
			return models.LoginOutcome{State: models.LoginAuthenticated, Platform: platformID}
		}
	}

	if evalBool(s, jsLoginFieldsGone) {
		if evalBool(s, jsIdentityVisible) || !looksLikeAuthURL(s.CurrentURL()) {
			return models.LoginOutcome{State: models.LoginAuthenticated, Platform: platformID}
		}
	}

	slog.Warn("login outcome inconclusive", "platform", platformID, "url", s.CurrentURL())
	return models.LoginOutcome{State: models.LoginInconclusive, Platform: platformID}
}

// verifyAuthenticated is the cookie-path check: a visible identity
// element, or logged-in text markers with no logged-out markers.
func verifyAuthenticated(s browser.Session) bool {
	return evalBool(s, jsIdentityVisible) || evalBool(s, jsLoggedInSignals)
}

// looksLikeAuthURL reports whether the URL path still looks like a
// login or auth flow.
func looksLikeAuthURL(rawURL string) bool {
	u := strings.ToLower(rawURL)
	for _, marker := range []string{"/login", "/signin", "sign-in", "sign_in", "/auth", "/sessions", "session/new", "/sso", "challenge"} {
		if strings.Contains(u, marker) {
			return true
		}
	}
	return false
}

// evalBool evaluates a boolean DOM predicate, absorbing evaluation
// errors as false. A single failed probe must never abort the flow.
func evalBool(s browser.Session, js string, args ...interface{}) bool {
	res, err := s.Eval(js, args...)
	if err != nil {
		slog.Debug("predicate evaluation failed", "error", err)
		return false
	}
	return res.Bool()
}
