package models

// ScrapeRequest is the payload for POST /api/v1/scrape.
type ScrapeRequest struct {
	// URL is the target page to scrape. Required.
	URL string `json:"url" binding:"required,url"`

	// Login, when present, makes the scraper authenticate before
	// extracting content. Absent means a plain unauthenticated scrape.
	Login *Credentials `json:"login,omitempty"`
}

// Credentials carries everything needed to authenticate against the target
// site. Supplied per request and never persisted beyond it.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`

	// Platform overrides hostname-based platform detection
	// (e.g. "linkedin", "github", "x").
	Platform string `json:"platform,omitempty"`

	// LoginURL overrides the catalog's login page URL.
	LoginURL string `json:"login_url,omitempty" binding:"omitempty,url"`

	// Explicit selector overrides. Each replaces the catalog's whole
	// selector chain for that field when set.
	EmailSelector    string `json:"email_selector,omitempty"`
	PasswordSelector string `json:"password_selector,omitempty"`
	SubmitSelector   string `json:"submit_selector,omitempty"`

	// WaitAfterLoginSecs overrides the post-submit wait duration.
	WaitAfterLoginSecs int `json:"wait_after_login_secs,omitempty" binding:"omitempty,min=1,max=60"`

	// Cookies, when present, are injected before navigation so an
	// existing session can be reused without touching the login form.
	Cookies []Cookie `json:"cookies,omitempty"`
}

// Cookie seeds the browser session before navigation.
type Cookie struct {
	Name   string `json:"name" binding:"required"`
	Value  string `json:"value" binding:"required"`
	Domain string `json:"domain" binding:"required"`
	Path   string `json:"path,omitempty"`
}
