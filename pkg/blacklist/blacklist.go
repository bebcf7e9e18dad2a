package blacklist

import (
	"sort"
	"sync"
)

// Registry is the process-wide set of domains that hit the
// consecutive-failure ceiling. It is shared by every crawl worker; both
// operations hold the mutex only for the duration of a set access.
type Registry struct {
	domains map[string]struct{}
	mu      sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{domains: make(map[string]struct{})}
}

// Blacklist marks a domain as unreachable. Entries are never removed
// within a run.
func (r *Registry) Blacklist(domain string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.domains[domain] = struct{}{}
}

// IsBlacklisted reports whether a domain has been marked unreachable.
func (r *Registry) IsBlacklisted(domain string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.domains[domain]
	return ok
}

// Len returns the number of blacklisted domains.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.domains)
}

// Snapshot returns the blacklisted domains sorted, for reporting.
func (r *Registry) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	domains := make([]string, 0, len(r.domains))
	for domain := range r.domains {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}
