package httpclient

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// Config holds HTTP config
type Config struct {
	Timeout   time.Duration
	UserAgent string
}

// NewSession creates a connection-reusing client for a single crawl.
// One session per crawl keeps keep-alive connections scoped to that site
// and released when the crawl finishes.
func NewSession(config *Config) *resty.Client {
	client := resty.New().
		SetTimeout(config.Timeout).
		SetHeader("User-Agent", config.UserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	// Backoff is handled by the crawl loop, which needs to count
	// consecutive failures itself.
	client.SetRetryCount(0)

	return client
}
