package blacklist_test

import (
	"sync"
	"testing"

	"github.com/WangYihang/Route-Crawler/pkg/blacklist"
	"github.com/stretchr/testify/assert"
)

func TestRegistryBlacklist(t *testing.T) {
	r := blacklist.NewRegistry()

	assert.False(t, r.IsBlacklisted("example.com"))

	r.Blacklist("example.com")
	assert.True(t, r.IsBlacklisted("example.com"))
	assert.False(t, r.IsBlacklisted("other.com"))

	// Blacklisting twice is a no-op.
	r.Blacklist("example.com")
	assert.Equal(t, 1, r.Len())
}

func TestRegistrySnapshot(t *testing.T) {
	r := blacklist.NewRegistry()
	r.Blacklist("b.com")
	r.Blacklist("a.com")
	r.Blacklist("c.com")

	assert.Equal(t, []string{"a.com", "b.com", "c.com"}, r.Snapshot())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := blacklist.NewRegistry()

	var wg sync.WaitGroup
	domains := []string{"a.com", "b.com", "c.com", "d.com"}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			domain := domains[i%len(domains)]
			r.Blacklist(domain)
			r.IsBlacklisted(domain)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(domains), r.Len())
}
