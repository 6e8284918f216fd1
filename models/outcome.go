package models

// LoginState is the closed set of terminal authentication results.
type LoginState int

const (
	// LoginAuthenticated means the session reached an authenticated state.
	LoginAuthenticated LoginState = iota

	// LoginCredentialRejected means the site reported the credentials as wrong.
	LoginCredentialRejected

	// LoginTwoFactorRequired means the site is asking for a second factor.
	// This is a detection, not a software failure; extraction must not run.
	LoginTwoFactorRequired

	// LoginCaptchaRequired means a captcha challenge blocks the flow.
	// Captchas are reported, never solved.
	LoginCaptchaRequired

	// LoginInconclusive means the post-submit page matched no known
	// success or failure signal. Callers treat it as a failed login.
	LoginInconclusive

	// LoginFatal means a structural failure aborted the flow
	// (e.g. the email field never appeared). Reason carries the cause.
	LoginFatal
)

func (s LoginState) String() string {
	switch s {
	case LoginAuthenticated:
		return "authenticated"
	case LoginCredentialRejected:
		return "credential_rejected"
	case LoginTwoFactorRequired:
		return "two_factor_required"
	case LoginCaptchaRequired:
		return "captcha_required"
	case LoginInconclusive:
		return "inconclusive"
	case LoginFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// LoginOutcome is the authoritative handoff between the authentication
// engine and the extraction pipeline. A single tagged value instead of
// (success bool, platform, is2FA) triples, so contradictory combinations
// cannot be expressed.
type LoginOutcome struct {
	State    LoginState
	Platform string
	Reason   string // populated for LoginFatal
}

// Authenticated reports whether the outcome represents a logged-in session.
func (o LoginOutcome) Authenticated() bool {
	return o.State == LoginAuthenticated
}
