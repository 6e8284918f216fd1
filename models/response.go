package models

// Document is the structured content extracted from a page.
// Immutable once produced.
type Document struct {
	Title       string
	Description string
	Text        string
	Images      []Image
	Links       []Link
}

// Image is an image element extracted from the page.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Link is a hyperlink extracted from the page.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// ScrapeResponse is the response for POST /api/v1/scrape.
type ScrapeResponse struct {
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url"`
	Text        string  `json:"text,omitempty"`
	Images      []Image `json:"images"`
	Links       []Link  `json:"links"`

	// Success indicates whether extraction completed without errors.
	Success bool `json:"success"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`

	// Login metadata. LoginSuccess and Requires2FA are nil when no
	// login was attempted.
	LoginAttempted   bool   `json:"login_attempted"`
	LoginSuccess     *bool  `json:"login_success,omitempty"`
	PlatformDetected string `json:"platform_detected,omitempty"`
	Requires2FA      *bool  `json:"requires_2fa,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status    string    `json:"status"` // "healthy" or "degraded"
	Uptime    string    `json:"uptime"`
	PoolStats PoolStats `json:"pool_stats"`
	Version   string    `json:"version"`
}

// PoolStats reports the state of the browser page pool.
type PoolStats struct {
	MaxPages    int `json:"max_pages"`
	ActivePages int `json:"active_pages"`
}
