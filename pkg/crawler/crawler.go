package crawler

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/WangYihang/Route-Crawler/pkg/blacklist"
	"github.com/WangYihang/Route-Crawler/pkg/config"
	"github.com/WangYihang/Route-Crawler/pkg/extract"
	"github.com/WangYihang/Route-Crawler/pkg/httpclient"
	"github.com/WangYihang/Route-Crawler/pkg/monitor"
	"github.com/WangYihang/Route-Crawler/pkg/urlnorm"
	mapset "github.com/deckarep/golang-set/v2"
)

// State is the terminal (or pending) state of a site crawl.
type State int

const (
	StateReady State = iota
	StateRunning
	// StateCompleted means the frontier drained normally.
	StateCompleted
	// StateAbortedLimit means the page ceiling was hit. Partial results
	// are kept; the ceiling is a safety valve, not a failure.
	StateAbortedLimit
	// StateAbortedFailures means the consecutive-failure ceiling was hit
	// and the domain was blacklisted.
	StateAbortedFailures
	// StateSkipped means the domain was already blacklisted at crawl
	// start; no request was issued.
	StateSkipped
)

// String returns state name
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAbortedLimit:
		return "aborted_limit"
	case StateAbortedFailures:
		return "aborted_failures"
	case StateSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result is the outcome of one site crawl.
type Result struct {
	StartURL string
	// Domain is the start URL's host as given (blacklist key).
	Domain string
	// Routes holds the discovered clean absolute URLs. Populated in every
	// terminal state, so an aborted crawl still keeps what it found.
	Routes []string
	State  State
	Err    string
}

// Success reports whether the crawl reached a non-failure terminal state.
func (r Result) Success() bool {
	return r.State == StateCompleted || r.State == StateAbortedLimit
}

// Crawler walks one website breadth-first, bounded by a page ceiling and a
// consecutive-failure ceiling. A Crawler is safe for concurrent use: all
// traversal state lives in the Crawl invocation, and the only shared
// mutable state is the blacklist registry.
type Crawler struct {
	httpCfg   config.HTTPConfig
	crawlCfg  config.CrawlConfig
	registry  *blacklist.Registry
	extractor *extract.LinkExtractor
	filter    *extract.Filter
}

// New creates crawler
func New(httpCfg config.HTTPConfig, crawlCfg config.CrawlConfig, registry *blacklist.Registry) *Crawler {
	return &Crawler{
		httpCfg:   httpCfg,
		crawlCfg:  crawlCfg,
		registry:  registry,
		extractor: extract.NewLinkExtractor(),
		filter:    extract.NewFilter(crawlCfg.SkipPatterns, crawlCfg.AllowedExtensions),
	}
}

// Crawl enumerates the internal pages of the site at startURL.
//
// FIFO frontier discipline surfaces shallow, structurally important pages
// before deep ones. Duplicate suppression is keyed on the normalized form
// of each URL, so protocol and "www." variants of the same page are seen
// once. The blacklist is consulted once, at invocation start; a domain
// blacklisted afterwards by a sibling crawl does not abort this one.
func (c *Crawler) Crawl(startURL string) Result {
	result := Result{StartURL: startURL, State: StateReady}

	parsed, err := url.Parse(startURL)
	if err != nil || parsed.Host == "" {
		result.State = StateAbortedFailures
		result.Err = fmt.Sprintf("invalid start url %q", startURL)
		return result
	}
	result.Domain = parsed.Host
	rootDomain := urlnorm.StripWWW(parsed.Host)

	if c.registry.IsBlacklisted(parsed.Host) {
		result.State = StateSkipped
		return result
	}

	session := httpclient.NewSession(&httpclient.Config{
		Timeout:   c.httpCfg.Timeout,
		UserAgent: c.httpCfg.UserAgent,
	})

	frontier := []string{startURL}
	discovered := mapset.NewThreadUnsafeSet(startURL)
	normalizedSeen := mapset.NewThreadUnsafeSet(urlnorm.Normalize(startURL))
	consecutiveFailures := 0

	result.State = StateRunning
	for len(frontier) > 0 &&
		discovered.Cardinality() < c.crawlCfg.MaxPagesPerSite &&
		consecutiveFailures < c.crawlCfg.MaxConsecutiveFailures {

		current := frontier[0]
		frontier = frontier[1:]

		resp, err := session.R().Get(current)
		if err != nil || !resp.IsSuccess() {
			consecutiveFailures++
			monitor.RequestFailures.Inc()

			if consecutiveFailures >= c.crawlCfg.MaxConsecutiveFailures {
				c.registry.Blacklist(parsed.Host)
				monitor.DomainsBlacklisted.Inc()
				result.State = StateAbortedFailures
				result.Err = fmt.Sprintf("%d consecutive failures", consecutiveFailures)
				break
			}

			// The first failure retries immediately; later ones back off
			// exponentially up to the configured ceiling.
			if consecutiveFailures > 1 {
				time.Sleep(backoff(consecutiveFailures, c.crawlCfg.MaxBackoff))
			}
			continue
		}
		consecutiveFailures = 0
		monitor.PagesFetched.Inc()

		currentURL, err := url.Parse(current)
		if err != nil {
			continue
		}

		for _, href := range c.extractor.FromString(resp.String()) {
			if discovered.Cardinality() >= c.crawlCfg.MaxPagesPerSite {
				break
			}
			clean, ok := c.resolve(currentURL, href, rootDomain)
			if !ok {
				continue
			}
			key := urlnorm.Normalize(clean)
			if normalizedSeen.Contains(key) {
				continue
			}
			discovered.Add(clean)
			normalizedSeen.Add(key)
			frontier = append(frontier, clean)
			monitor.RoutesDiscovered.Inc()
		}

		time.Sleep(c.crawlCfg.Delay)
	}

	if result.State == StateRunning {
		if discovered.Cardinality() >= c.crawlCfg.MaxPagesPerSite {
			result.State = StateAbortedLimit
		} else {
			result.State = StateCompleted
		}
	}

	result.Routes = discovered.ToSlice()
	return result
}

// resolve turns an extracted href into a clean in-scope absolute URL.
// The clean form keeps scheme, host, path and query, and drops fragments.
func (c *Crawler) resolve(page *url.URL, href, rootDomain string) (string, bool) {
	if c.filter.ShouldSkip(href) {
		return "", false
	}

	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	full := page.ResolveReference(ref)

	if full.Scheme != "http" && full.Scheme != "https" {
		return "", false
	}
	if urlnorm.StripWWW(full.Host) != rootDomain {
		return "", false
	}
	if !c.filter.IsPageLike(full.Path) {
		return "", false
	}

	clean := full.Scheme + "://" + full.Host + full.Path
	if full.RawQuery != "" {
		clean += "?" + full.RawQuery
	}
	return clean, true
}

// backoff caps exponential backoff at the configured maximum.
func backoff(failures int, max time.Duration) time.Duration {
	delay := time.Duration(1<<uint(failures)) * time.Second
	if delay > max {
		return max
	}
	return delay
}
