package urlnorm

import (
	"net/url"
	"strings"
)

// StripWWW removes a single leading "www." from a host.
// Embedded "www." segments are kept as-is.
func StripWWW(host string) string {
	if strings.HasPrefix(host, "www.") {
		return host[4:]
	}
	return host
}

// Normalize converts an absolute URL into its storage key: no scheme, no
// fragment, no leading "www.". Query strings and path case are preserved,
// so "https://www.x.com/a?q=1" and "http://x.com/a?q=1" collapse to
// "x.com/a?q=1" while "x.com/a?q=2" stays distinct.
func Normalize(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	normalized := StripWWW(parsed.Host) + parsed.Path
	if parsed.RawQuery != "" {
		normalized += "?" + parsed.RawQuery
	}
	return normalized
}

// Denormalize rebuilds a fetchable URL from a storage key by prefixing
// "https://www.". The inverse is lossy: a domain that never served a
// "www." form may redirect or refuse the reconstructed URL.
func Denormalize(key string) string {
	return "https://www." + key
}

// Filename returns the per-site output file name for a host.
func Filename(host string) string {
	return StripWWW(host) + ".txt"
}
