package retry

import (
	"log"
	"strings"

	"github.com/WangYihang/Route-Crawler/pkg/crawler"
	"github.com/WangYihang/Route-Crawler/pkg/output"
	"github.com/WangYihang/Route-Crawler/pkg/urlnorm"
)

// Stats summarizes one retry pass.
type Stats struct {
	Retried          int
	Improved         int
	Stuck            int
	AdditionalRoutes int
}

// SiteCrawler runs one site crawl to completion.
type SiteCrawler interface {
	Crawl(startURL string) crawler.Result
}

// Retrier re-crawls sites whose first pass yielded exactly one route.
// A lone route usually means discovery died early (transient block,
// first-request timeout); a genuinely single-page site is retried once
// and left as-is.
type Retrier struct {
	store   *output.RouteStore
	crawler SiteCrawler
}

// NewRetrier creates retrier
func NewRetrier(store *output.RouteStore, c SiteCrawler) *Retrier {
	return &Retrier{store: store, crawler: c}
}

// Run scans every route file and re-crawls the single-route ones, merging
// new discoveries into the existing file. Files with zero or multiple
// routes are untouched.
func (r *Retrier) Run() (Stats, error) {
	names, err := r.store.List()
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for _, name := range names {
		routes, err := r.store.ReadFile(name)
		if err != nil {
			log.Printf("retry: skipping %s: %v", name, err)
			continue
		}
		if len(routes) != 1 {
			continue
		}

		stats.Retried++
		host := strings.TrimSuffix(name, ".txt")

		// The stored key has no scheme; rebuild a fetchable URL. The
		// "https://www." prefix is a documented lossy inverse.
		startURL := urlnorm.Denormalize(routes[0])
		log.Printf("retry: re-crawling %s (%s)", host, startURL)

		result := r.crawler.Crawl(startURL)

		// Keep the original route regardless of how the retry went.
		merged := append(result.Routes, urlnorm.Denormalize(routes[0]))
		if err := r.store.Write(host, merged); err != nil {
			log.Printf("retry: write %s: %v", name, err)
			stats.Stuck++
			continue
		}

		final, err := r.store.ReadFile(name)
		if err != nil {
			log.Printf("retry: re-read %s: %v", name, err)
			stats.Stuck++
			continue
		}
		if len(final) > 1 {
			stats.Improved++
			stats.AdditionalRoutes += len(final) - 1
		} else {
			stats.Stuck++
		}
	}

	return stats, nil
}
