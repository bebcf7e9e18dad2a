package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PagesFetched counts successful page fetches across all crawls.
	PagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "route_crawler_pages_fetched_total",
		Help: "Number of pages fetched successfully",
	})

	// RequestFailures counts transport errors and non-2xx responses.
	RequestFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "route_crawler_request_failures_total",
		Help: "Number of failed page requests",
	})

	// RoutesDiscovered counts unique routes added to discovery sets.
	RoutesDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "route_crawler_routes_discovered_total",
		Help: "Number of unique routes discovered",
	})

	// SitesCrawled counts finished site crawls by outcome.
	SitesCrawled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_crawler_sites_crawled_total",
		Help: "Number of site crawls finished, labelled by outcome",
	}, []string{"outcome"})

	// DomainsBlacklisted counts domains that hit the failure ceiling.
	DomainsBlacklisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "route_crawler_domains_blacklisted_total",
		Help: "Number of domains added to the failure blacklist",
	})
)

// Serve exposes /metrics on addr. Blocks; run it in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
