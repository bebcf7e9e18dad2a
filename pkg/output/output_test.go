package output_test

import (
	"os"
	"testing"

	"github.com/WangYihang/Route-Crawler/pkg/output"
	"github.com/WangYihang/Route-Crawler/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeResult(label, domain string, routes int) queue.Result {
	return queue.Result{
		Label:   label,
		Domain:  domain,
		State:   "completed",
		Routes:  routes,
		Success: true,
	}
}

func TestRouteStoreWrite(t *testing.T) {
	store, err := output.NewRouteStore(t.TempDir())
	require.NoError(t, err)

	routes := []string{
		"https://www.example.com/contact",
		"https://example.com/about",
		"http://www.example.com/about", // protocol/www duplicate
	}
	require.NoError(t, store.Write("www.example.com", routes))

	data, err := os.ReadFile(store.Path("example.com"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/about\nexample.com/contact\n", string(data))
}

func TestRouteStoreReadFile(t *testing.T) {
	store, err := output.NewRouteStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path("a.com"), []byte("a.com/x\n\na.com/y\n"), 0644))

	routes, err := store.ReadFile("a.com.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.com/x", "a.com/y"}, routes, "blank lines are dropped")
}

func TestRouteStoreList(t *testing.T) {
	dir := t.TempDir()
	store, err := output.NewRouteStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Write("b.com", nil))
	require.NoError(t, store.Write("a.com", nil))
	require.NoError(t, os.WriteFile(dir+"/notes.md", []byte("x"), 0644))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.com.txt", "b.com.txt"}, names)
}

func TestResultWriterRoundTrip(t *testing.T) {
	path := t.TempDir() + "/results.jsonl"
	w, err := output.NewResultWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteResult(makeResult("Acme", "acme.edu", 3)))
	require.NoError(t, w.WriteResult(makeResult("Beta", "beta.org", 0)))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"domain":"acme.edu"`)
	assert.Contains(t, string(data), `"routes":3`)
}
