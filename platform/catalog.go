// Package platform holds the static catalog of per-site login knowledge:
// login URLs, selector chains and post-login success indicators. The
// catalog is read-only process-wide state, built once at init and never
// mutated.
package platform

import (
	"net/url"
	"strings"
	"time"
)

// Generic is the id of the fallback profile used for unrecognized sites.
const Generic = "generic"

// Profile is the immutable per-site configuration. Selector lists are
// ordered most-specific-first; earlier entries win when several match.
type Profile struct {
	ID                string
	LoginURL          string
	EmailSelectors    []string
	PasswordSelectors []string
	SubmitSelectors   []string

	// WaitAfterLogin is the platform's expected post-submit settle time.
	WaitAfterLogin time.Duration

	// SuccessIndicators are selectors that only appear for a logged-in
	// user (nav avatars, identity modules). Empty for the generic profile.
	SuccessIndicators []string

	// MultiStep marks platforms that split email and password entry
	// into separate screens with a Next/Continue button between them.
	MultiStep bool
}

var catalog = map[string]Profile{
	"linkedin": {
		ID:       "linkedin",
		LoginURL: "https://www.linkedin.com/login",
		EmailSelectors: []string{
			"#username",
			"input[name='session_key']",
		},
		PasswordSelectors: []string{
			"#password",
			"input[name='session_password']",
		},
		SubmitSelectors: []string{
			"button[type='submit']",
			"button[data-litms-control-urn*='login-submit']",
			".login__form_action_container button",
		},
		WaitAfterLogin: 8 * time.Second,
		SuccessIndicators: []string{
			".global-nav__me",
			".feed-identity-module",
		},
		MultiStep: true,
	},
	"facebook": {
		ID:       "facebook",
		LoginURL: "https://www.facebook.com/login",
		EmailSelectors: []string{
			"#email",
			"input[name='email']",
		},
		PasswordSelectors: []string{
			"#pass",
			"input[name='pass']",
		},
		SubmitSelectors: []string{
			"button[name='login']",
			"button[type='submit']",
			"#loginbutton",
		},
		WaitAfterLogin: 6 * time.Second,
		SuccessIndicators: []string{
			"[aria-label='Your profile']",
			"[data-pagelet='LeftRail']",
		},
		MultiStep: true,
	},
	"twitter": {
		ID:       "twitter",
		LoginURL: "https://twitter.com/i/flow/login",
		EmailSelectors: []string{
			"input[name='text']",
			"input[autocomplete='username']",
			"input[name='session[username_or_email]']",
		},
		PasswordSelectors: []string{
			"input[name='password']",
			"input[autocomplete='current-password']",
			"input[type='password']",
		},
		SubmitSelectors: []string{
			"[data-testid='LoginForm_Login_Button']",
			"[role='button'][data-testid*='LoginForm_Login_Button']",
			"button[type='submit']",
		},
		WaitAfterLogin: 7 * time.Second,
		SuccessIndicators: []string{
			"[data-testid='SideNav_AccountSwitcher_Button']",
			"[aria-label='Home timeline']",
		},
		MultiStep: true,
	},
	"github": {
		ID:       "github",
		LoginURL: "https://github.com/login",
		EmailSelectors: []string{
			"#login_field",
			"input[name='login']",
		},
		PasswordSelectors: []string{
			"#password",
			"input[name='password']",
		},
		SubmitSelectors: []string{
			"input[type='submit'][value='Sign in']",
			"input[name='commit']",
		},
		WaitAfterLogin: 5 * time.Second,
		SuccessIndicators: []string{
			"[aria-label='Global navigation']",
			".Header-link--user",
		},
	},
	"instagram": {
		ID:       "instagram",
		LoginURL: "https://www.instagram.com/accounts/login/",
		EmailSelectors: []string{
			"input[name='username']",
			"input[aria-label='Phone number, username, or email']",
		},
		PasswordSelectors: []string{
			"input[name='password']",
			"input[type='password']",
		},
		SubmitSelectors: []string{
			"button[type='submit']",
		},
		WaitAfterLogin: 6 * time.Second,
		SuccessIndicators: []string{
			"[aria-label='Home']",
			"svg[aria-label='Home']",
		},
	},
	"reddit": {
		ID:       "reddit",
		LoginURL: "https://www.reddit.com/login/",
		EmailSelectors: []string{
			"#loginUsername",
			"input[name='username']",
		},
		PasswordSelectors: []string{
			"#loginPassword",
			"input[name='password']",
		},
		SubmitSelectors: []string{
			"button[type='submit']",
			".AnimatedForm__submitButton",
		},
		WaitAfterLogin: 5 * time.Second,
		SuccessIndicators: []string{
			"[id*='USER_DROPDOWN']",
			"button[aria-label*='User']",
		},
	},
	"google": {
		ID:       "google",
		LoginURL: "https://accounts.google.com/ServiceLogin",
		EmailSelectors: []string{
			"#identifierId",
			"input[type='email']",
		},
		PasswordSelectors: []string{
			"input[name='Passwd']",
			"input[type='password']",
		},
		SubmitSelectors: []string{
			"#passwordNext button",
			"#identifierNext button",
			"button[type='submit']",
		},
		WaitAfterLogin: 8 * time.Second,
		SuccessIndicators: []string{
			"a[aria-label*='Google Account']",
			"img.gb_P",
		},
		MultiStep: true,
	},
	"microsoft": {
		ID:       "microsoft",
		LoginURL: "https://login.live.com/",
		EmailSelectors: []string{
			"input[name='loginfmt']",
			"input[type='email']",
		},
		PasswordSelectors: []string{
			"input[name='passwd']",
			"input[type='password']",
		},
		SubmitSelectors: []string{
			"#idSIButton9",
			"input[type='submit']",
			"button[type='submit']",
		},
		WaitAfterLogin: 8 * time.Second,
		SuccessIndicators: []string{
			"#mectrl_headerPicture",
		},
		MultiStep: true,
	},
	Generic: {
		ID: Generic,
		EmailSelectors: []string{
			"input[type='email']",
			"input[name='email']",
			"input[id='email']",
			"input[name='username']",
			"input[id='username']",
			"input[placeholder*='email' i]",
			"input[placeholder*='username' i]",
		},
		PasswordSelectors: []string{
			"input[type='password']",
			"input[name='password']",
			"input[id='password']",
		},
		SubmitSelectors: []string{
			"button[type='submit']",
			"input[type='submit']",
		},
		WaitAfterLogin: 5 * time.Second,
	},
}

// aliases maps alternate platform names to catalog ids.
var aliases = map[string]string{
	"x":     "twitter",
	"gmail": "google",
	"live":  "microsoft",
}

// domainFragments is the ordered hostname substring → platform mapping
// used for detection. Order matters for overlapping fragments.
var domainFragments = []struct {
	fragment string
	id       string
}{
	{"google.com", "google"},
	{"gmail.com", "google"},
	{"linkedin.com", "linkedin"},
	{"reddit.com", "reddit"},
	{"github.com", "github"},
	{"facebook.com", "facebook"},
	{"twitter.com", "twitter"},
	{"x.com", "twitter"},
	{"instagram.com", "instagram"},
	{"live.com", "microsoft"},
	{"microsoft.com", "microsoft"},
}

// Resolve looks up a profile by platform id or alias, case-insensitively.
// Unknown ids resolve to the generic profile.
func Resolve(id string) Profile {
	key := strings.ToLower(strings.TrimSpace(id))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	if p, ok := catalog[key]; ok {
		return p
	}
	return catalog[Generic]
}

// Detect derives a platform id from the target URL's hostname.
// Unmatched hostnames detect as the generic platform.
func Detect(targetURL string) string {
	u, err := url.Parse(targetURL)
	if err != nil {
		return Generic
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Generic
	}
	for _, d := range domainFragments {
		if strings.Contains(host, d.fragment) {
			return d.id
		}
	}
	return Generic
}
