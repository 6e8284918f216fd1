package extract

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/use-agent/keyhole/models"
	"github.com/ysmood/gson"
)

// fakeSession is a scriptable browser.Session for pipeline tests.
type fakeSession struct {
	url      string
	title    string
	html     string
	htmlErr  error
	navErr   error
	bodyOK   bool
	bodyText string

	// heights is the sequence of document heights reported by
	// successive scroll passes; the last value repeats.
	heights     []int
	scrollCalls int

	navigations []string
}

func (f *fakeSession) Navigate(url string) error {
	if f.navErr != nil {
		return f.navErr
	}
	f.navigations = append(f.navigations, url)
	f.url = url
	return nil
}

func (f *fakeSession) Eval(js string, args ...interface{}) (gson.JSON, error) {
	switch js {
	case jsBodyReady:
		return gson.New(f.bodyOK), nil
	case jsBodyText:
		return gson.New(f.bodyText), nil
	case jsScrollToBottom:
		i := f.scrollCalls
		f.scrollCalls++
		if i >= len(f.heights) {
			i = len(f.heights) - 1
		}
		if i < 0 {
			return gson.New(0), nil
		}
		return gson.New(f.heights[i]), nil
	default:
		return gson.New(nil), nil
	}
}

func (f *fakeSession) SetCookie(c models.Cookie) error             { return nil }
func (f *fakeSession) WaitNavigation(timeout time.Duration) func() { return func() {} }
func (f *fakeSession) CurrentURL() string                          { return f.url }
func (f *fakeSession) Title() string                               { return f.title }
func (f *fakeSession) HTML() (string, error)                       { return f.html, f.htmlErr }

func testExtractor() *Extractor {
	return &Extractor{
		DOMReadyTimeout:  20 * time.Millisecond,
		DOMReadyInterval: time.Millisecond,
		ScrollSettle:     10 * time.Millisecond,
		NavigationSettle: time.Millisecond,
	}
}

func TestExtract_FullAssembly(t *testing.T) {
	s := &fakeSession{
		url:      "https://example.com/article",
		title:    "Driver Title",
		bodyOK:   true,
		bodyText: "body text content",
		heights:  []int{100},
		html: `<html><head>
			<title>Document Title</title>
			<meta name="description" content="meta description here">
		</head><body>
			<img src="/a.png" alt="first">
			<a href="/next">next page</a>
		</body></html>`,
	}

	doc, err := testExtractor().Extract(s, "https://example.com/article")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Driver Title" {
		t.Errorf("driver title should win, got %q", doc.Title)
	}
	if doc.Description != "meta description here" {
		t.Errorf("got description %q", doc.Description)
	}
	if doc.Text != "body text content" {
		t.Errorf("got text %q", doc.Text)
	}
	if len(doc.Images) != 1 || doc.Images[0].Src != "https://example.com/a.png" {
		t.Errorf("images not resolved against the page URL: %+v", doc.Images)
	}
	if len(doc.Links) != 1 || doc.Links[0].Href != "https://example.com/next" {
		t.Errorf("links not resolved against the page URL: %+v", doc.Links)
	}
	// Already on the target; no extra navigation.
	if len(s.navigations) != 0 {
		t.Errorf("expected no navigation, got %v", s.navigations)
	}
}

func TestExtract_NavigatesWhenElsewhere(t *testing.T) {
	s := &fakeSession{
		url:     "https://example.com/login",
		bodyOK:  true,
		heights: []int{100},
		html:    "<html><body></body></html>",
	}

	if _, err := testExtractor().Extract(s, "https://example.com/private"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.navigations) != 1 || s.navigations[0] != "https://example.com/private" {
		t.Errorf("expected one navigation to the target, got %v", s.navigations)
	}
}

func TestExtract_NavigationFailure(t *testing.T) {
	s := &fakeSession{
		url:    "about:blank",
		navErr: errors.New("net::ERR_CONNECTION_REFUSED"),
	}

	_, err := testExtractor().Extract(s, "https://example.com/page")
	if err == nil {
		t.Fatal("expected an error")
	}
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Fatalf("expected a ScrapeError, got %T", err)
	}
	if scrapeErr.Code != models.ErrCodeNavigation {
		t.Errorf("got code %q, want %q", scrapeErr.Code, models.ErrCodeNavigation)
	}
}

func TestExtract_DOMReadyTimeout(t *testing.T) {
	s := &fakeSession{
		url:     "https://example.com/page",
		bodyOK:  false,
		heights: []int{100},
	}

	_, err := testExtractor().Extract(s, "https://example.com/page")
	if err == nil {
		t.Fatal("expected an error")
	}
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) {
		t.Fatalf("expected a ScrapeError, got %T", err)
	}
	if scrapeErr.Code != models.ErrCodeExtraction {
		t.Errorf("got code %q, want %q", scrapeErr.Code, models.ErrCodeExtraction)
	}
}

func TestExtract_TextCappedAtLimit(t *testing.T) {
	s := &fakeSession{
		url:      "https://example.com/page",
		bodyOK:   true,
		bodyText: strings.Repeat("x", MaxTextLen+500),
		heights:  []int{100},
		html:     "<html><body></body></html>",
	}

	doc, err := testExtractor().Extract(s, "https://example.com/page")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len([]rune(doc.Text)); got != MaxTextLen {
		t.Errorf("text not capped: got %d runes, want %d", got, MaxTextLen)
	}
}

func TestExtract_ScrollStopsWhenHeightStable(t *testing.T) {
	s := &fakeSession{
		url:     "https://example.com/feed",
		bodyOK:  true,
		heights: []int{1000, 2000, 3000, 3000},
		html:    "<html><body></body></html>",
	}

	if _, err := testExtractor().Extract(s, "https://example.com/feed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Passes 1-3 grow the page; pass 4 repeats 3000 and stops the loop.
	if s.scrollCalls != 4 {
		t.Errorf("expected 4 scroll passes, got %d", s.scrollCalls)
	}
}

func TestExtract_ScrollPassesBounded(t *testing.T) {
	// Heights that never stabilize (infinite feed).
	heights := make([]int, 50)
	for i := range heights {
		heights[i] = (i + 1) * 1000
	}
	s := &fakeSession{
		url:     "https://example.com/feed",
		bodyOK:  true,
		heights: heights,
		html:    "<html><body></body></html>",
	}

	if _, err := testExtractor().Extract(s, "https://example.com/feed"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.scrollCalls != maxScrollPasses {
		t.Errorf("expected exactly %d scroll passes on a growing page, got %d", maxScrollPasses, s.scrollCalls)
	}
}
