package extract

import (
	"io"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkExtractor extracts anchor targets
type LinkExtractor struct{}

// NewLinkExtractor creates extractor
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// FromReader returns every href attribute value found on anchor elements.
// Unparsable HTML yields no links rather than an error; the crawl continues
// from the rest of the frontier.
func (e *LinkExtractor) FromReader(r io.Reader) []string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil
	}

	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

// FromString extracts from string
func (e *LinkExtractor) FromString(body string) []string {
	return e.FromReader(strings.NewReader(body))
}

// Filter decides which hrefs are worth following
type Filter struct {
	skipPatterns      []string
	allowedExtensions map[string]bool
}

// NewFilter creates filter
func NewFilter(skipPatterns, allowedExtensions []string) *Filter {
	allowed := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(ext)] = true
	}
	return &Filter{
		skipPatterns:      skipPatterns,
		allowedExtensions: allowed,
	}
}

// ShouldSkip reports whether an href matches a non-navigable scheme
// pattern (javascript:, mailto:, tel:, bare fragments).
func (f *Filter) ShouldSkip(href string) bool {
	lower := strings.ToLower(href)
	for _, pattern := range f.skipPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// IsPageLike reports whether a URL path looks like a navigable page.
// Extensionless paths pass; paths with an extension pass only when the
// extension is on the allow-list, which filters images, PDFs and other
// assets without touching clean routes.
func (f *Filter) IsPageLike(urlPath string) bool {
	ext := strings.ToLower(path.Ext(urlPath))
	if ext == "" {
		return true
	}
	return f.allowedExtensions[ext]
}
