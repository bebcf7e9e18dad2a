package worker_test

import (
	"sync"
	"testing"

	"github.com/WangYihang/Route-Crawler/pkg/crawler"
	"github.com/WangYihang/Route-Crawler/pkg/output"
	"github.com/WangYihang/Route-Crawler/pkg/queue"
	"github.com/WangYihang/Route-Crawler/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCrawler struct {
	results map[string]crawler.Result
}

func (f *fakeCrawler) Crawl(startURL string) crawler.Result {
	if result, ok := f.results[startURL]; ok {
		return result
	}
	panic("unexpected url: " + startURL)
}

func runWorkers(t *testing.T, numWorkers int, tasks []queue.Task, c worker.SiteCrawler, store *output.RouteStore) []queue.Result {
	t.Helper()

	jobs := queue.NewJobQueue(len(tasks))
	results := queue.NewResultQueue(len(tasks))
	stopChan := make(chan struct{})
	defer close(stopChan)

	for _, task := range tasks {
		require.True(t, jobs.Enqueue(task))
	}
	jobs.Close()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		worker.NewWorker(&worker.Config{
			ID:       i,
			Jobs:     jobs,
			Results:  results,
			Crawler:  c,
			Store:    store,
			StopChan: stopChan,
		}).Start(&wg)
	}

	go func() {
		wg.Wait()
		results.Close()
	}()

	var collected []queue.Result
	for {
		result, ok := results.Receive()
		if !ok {
			return collected
		}
		collected = append(collected, result)
	}
}

func TestWorkerWritesRouteFiles(t *testing.T) {
	store, err := output.NewRouteStore(t.TempDir())
	require.NoError(t, err)

	fake := &fakeCrawler{results: map[string]crawler.Result{
		"https://acme.edu": {
			Domain: "acme.edu",
			State:  crawler.StateCompleted,
			Routes: []string{"https://acme.edu", "https://acme.edu/about"},
		},
		"https://www.beta.org": {
			Domain: "www.beta.org",
			State:  crawler.StateAbortedFailures,
			Routes: []string{"https://www.beta.org"},
			Err:    "5 consecutive failures",
		},
	}}

	results := runWorkers(t, 2, []queue.Task{
		{Label: "Acme College", URL: "https://acme.edu"},
		{Label: "Beta Institute", URL: "https://www.beta.org"},
	}, fake, store)

	require.Len(t, results, 2)
	byLabel := map[string]queue.Result{}
	for _, r := range results {
		byLabel[r.Label] = r
	}

	acme := byLabel["Acme College"]
	assert.True(t, acme.Success)
	assert.Equal(t, 2, acme.Routes)

	beta := byLabel["Beta Institute"]
	assert.False(t, beta.Success)
	assert.Equal(t, "aborted_failures", beta.State)

	// Both sites get a file, the aborted one with its partial discoveries.
	routes, err := store.ReadFile("acme.edu.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"acme.edu", "acme.edu/about"}, routes)

	routes, err = store.ReadFile("beta.org.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"beta.org"}, routes)
}

func TestWorkerConvertsPanicsToFailedResults(t *testing.T) {
	store, err := output.NewRouteStore(t.TempDir())
	require.NoError(t, err)

	fake := &fakeCrawler{results: map[string]crawler.Result{
		"https://ok.com": {
			Domain: "ok.com",
			State:  crawler.StateCompleted,
			Routes: []string{"https://ok.com"},
		},
		// "https://boom.com" is absent, so the fake panics on it.
	}}

	results := runWorkers(t, 1, []queue.Task{
		{Label: "Boom", URL: "https://boom.com"},
		{Label: "OK", URL: "https://ok.com"},
	}, fake, store)

	require.Len(t, results, 2, "a panicking task must not abort its siblings")

	byLabel := map[string]queue.Result{}
	for _, r := range results {
		byLabel[r.Label] = r
	}
	assert.False(t, byLabel["Boom"].Success)
	assert.Contains(t, byLabel["Boom"].Err, "panic")
	assert.True(t, byLabel["OK"].Success)
}
