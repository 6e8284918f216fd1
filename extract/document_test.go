package extract

import (
	"fmt"
	"strings"
	"testing"
)

func TestCollectImages_CapAndResolution(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, `<img src="/img/%d.png" alt="image %d">`, i, i)
	}
	b.WriteString("</body></html>")

	doc, err := parseDoc(b.String())
	if err != nil {
		t.Fatalf("parseDoc failed: %v", err)
	}
	images := collectImages(doc, "https://example.com/gallery")

	if len(images) != MaxImages {
		t.Fatalf("expected exactly %d images, got %d", MaxImages, len(images))
	}
	if images[0].Src != "https://example.com/img/0.png" {
		t.Errorf("relative src not resolved: %q", images[0].Src)
	}
	if images[0].Alt != "image 0" {
		t.Errorf("alt not carried: %q", images[0].Alt)
	}
}

func TestCollectImages_DataSrcFallbackAndFiltering(t *testing.T) {
	raw := `<html><body>
		<img data-src="/lazy.png" alt="lazy">
		<img src="data:image/png;base64,AAAA" alt="inline">
		<img src="" alt="empty">
		<img src="/dup.png"><img src="/dup.png">
	</body></html>`

	doc, err := parseDoc(raw)
	if err != nil {
		t.Fatalf("parseDoc failed: %v", err)
	}
	images := collectImages(doc, "https://example.com/")

	if len(images) != 2 {
		t.Fatalf("expected 2 images (lazy + deduped), got %d: %+v", len(images), images)
	}
	if images[0].Src != "https://example.com/lazy.png" {
		t.Errorf("data-src not used as fallback: %q", images[0].Src)
	}
	if images[1].Src != "https://example.com/dup.png" {
		t.Errorf("duplicate not collapsed: %+v", images)
	}
}

func TestCollectLinks_CapDedupAndTrim(t *testing.T) {
	longText := strings.Repeat("w", MaxLinkTextLen+100)

	var b strings.Builder
	b.WriteString("<html><body>")
	fmt.Fprintf(&b, `<a href="/long">%s</a>`, longText)
	b.WriteString(`<a href="mailto:someone@example.com">mail</a>`)
	b.WriteString(`<a href="javascript:void(0)">js</a>`)
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, `<a href="/page/%d">page %d</a>`, i, i)
	}
	b.WriteString("</body></html>")

	doc, err := parseDoc(b.String())
	if err != nil {
		t.Fatalf("parseDoc failed: %v", err)
	}
	links := collectLinks(doc, "https://example.com/index")

	if len(links) != MaxLinks {
		t.Fatalf("expected exactly %d links, got %d", MaxLinks, len(links))
	}
	if got := len([]rune(links[0].Text)); got != MaxLinkTextLen {
		t.Errorf("link text not trimmed: %d runes", got)
	}
	for _, l := range links {
		if strings.HasPrefix(l.Href, "mailto:") || strings.HasPrefix(l.Href, "javascript:") {
			t.Errorf("non-http link not filtered: %q", l.Href)
		}
	}
}

func TestPageTitle(t *testing.T) {
	doc, err := parseDoc("<html><head><title> Fallback Title </title></head><body></body></html>")
	if err != nil {
		t.Fatalf("parseDoc failed: %v", err)
	}

	if got := pageTitle(doc, "Driver Title"); got != "Driver Title" {
		t.Errorf("driver title should win, got %q", got)
	}
	if got := pageTitle(doc, "  "); got != "Fallback Title" {
		t.Errorf("expected the trimmed <title> fallback, got %q", got)
	}
}

func TestPageDescription_Fallbacks(t *testing.T) {
	withMeta := `<html><head>
		<meta name="description" content="plain meta">
		<meta property="og:description" content="og meta">
	</head><body></body></html>`
	doc, err := parseDoc(withMeta)
	if err != nil {
		t.Fatalf("parseDoc failed: %v", err)
	}
	if got := pageDescription(doc, withMeta, "https://example.com/"); got != "plain meta" {
		t.Errorf("meta description should win, got %q", got)
	}

	ogOnly := `<html><head>
		<meta property="og:description" content="og meta">
	</head><body></body></html>`
	doc, err = parseDoc(ogOnly)
	if err != nil {
		t.Fatalf("parseDoc failed: %v", err)
	}
	if got := pageDescription(doc, ogOnly, "https://example.com/"); got != "og meta" {
		t.Errorf("og:description fallback failed, got %q", got)
	}
}

func TestPageDescription_ReadabilityExcerpt(t *testing.T) {
	// No meta tags at all: the readability excerpt is the last resort.
	raw := `<html><head><title>Article</title></head><body>
		<article>
			<h1>A Heading</h1>
			<p>` + strings.Repeat("Substantial article content for the excerpt. ", 20) + `</p>
		</article>
	</body></html>`
	doc, err := parseDoc(raw)
	if err != nil {
		t.Fatalf("parseDoc failed: %v", err)
	}
	got := pageDescription(doc, raw, "https://example.com/article")
	if !strings.Contains(got, "Substantial article content") {
		t.Errorf("expected a readability excerpt, got %q", got)
	}
}

func TestCollectImages_BadBaseURL(t *testing.T) {
	doc, err := parseDoc(`<html><body><img src="/a.png"></body></html>`)
	if err != nil {
		t.Fatalf("parseDoc failed: %v", err)
	}
	images := collectImages(doc, "://not-a-url")
	if len(images) != 0 {
		t.Errorf("expected no images with an unparsable base URL, got %d", len(images))
	}
}
