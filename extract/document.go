package extract

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/use-agent/keyhole/models"
	"golang.org/x/net/html"
)

// Output caps. A page with thousands of images or links still yields a
// bounded response.
const (
	MaxTextLen     = 100000
	MaxImages      = 20
	MaxLinks       = 50
	MaxLinkTextLen = 200
)

// parseDoc parses rendered HTML once; the goquery views below share the
// node tree.
func parseDoc(rawHTML string) (*goquery.Document, error) {
	node, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(node), nil
}

// pageTitle reads the document title, preferring the driver-reported
// title and falling back to the <title> element.
func pageTitle(doc *goquery.Document, driverTitle string) string {
	if t := strings.TrimSpace(driverTitle); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// pageDescription reads the meta description, falling back to
// og:description, then to a readability excerpt of the page body.
func pageDescription(doc *goquery.Document, rawHTML, sourceURL string) string {
	if d, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		if d = strings.TrimSpace(d); d != "" {
			return d
		}
	}
	if d, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		if d = strings.TrimSpace(d); d != "" {
			return d
		}
	}
	return readabilityExcerpt(rawHTML, sourceURL)
}

// readabilityExcerpt runs the Readability algorithm for its excerpt.
// Best-effort: any failure just means no description.
func readabilityExcerpt(rawHTML, sourceURL string) string {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(rawHTML), parsed)
	if err != nil {
		slog.Debug("readability excerpt failed", "url", sourceURL, "error", err)
		return ""
	}
	return strings.TrimSpace(article.Excerpt)
}

// collectImages returns up to MaxImages images with absolute http(s)
// URLs, resolving src and lazy-load data-src against the source URL.
func collectImages(doc *goquery.Document, sourceURL string) []models.Image {
	images := []models.Image{}
	base, err := url.Parse(sourceURL)
	if err != nil {
		return images
	}

	seen := make(map[string]struct{})
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		if !ok || src == "" {
			src, _ = s.Attr("data-src")
		}
		if src == "" {
			return true
		}

		resolved, err := base.Parse(src)
		if err != nil || !isHTTP(resolved.Scheme) {
			return true
		}
		abs := resolved.String()
		if _, dup := seen[abs]; dup {
			return true
		}
		seen[abs] = struct{}{}

		alt, _ := s.Attr("alt")
		images = append(images, models.Image{Src: abs, Alt: strings.TrimSpace(alt)})
		return len(images) < MaxImages
	})
	return images
}

// collectLinks returns up to MaxLinks http(s) links with their visible
// text trimmed to MaxLinkTextLen.
func collectLinks(doc *goquery.Document, sourceURL string) []models.Link {
	links := []models.Link{}
	base, err := url.Parse(sourceURL)
	if err != nil {
		return links
	}

	seen := make(map[string]struct{})
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if href == "" {
			return true
		}

		resolved, err := base.Parse(href)
		if err != nil || !isHTTP(resolved.Scheme) {
			return true
		}
		abs := resolved.String()
		if _, dup := seen[abs]; dup {
			return true
		}
		seen[abs] = struct{}{}

		text := strings.TrimSpace(s.Text())
		if runes := []rune(text); len(runes) > MaxLinkTextLen {
			text = string(runes[:MaxLinkTextLen])
		}
		links = append(links, models.Link{Href: abs, Text: text})
		return len(links) < MaxLinks
	})
	return links
}

func isHTTP(scheme string) bool {
	return scheme == "http" || scheme == "https"
}
