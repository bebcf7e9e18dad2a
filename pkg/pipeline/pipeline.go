package pipeline

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/WangYihang/Route-Crawler/pkg/blacklist"
	"github.com/WangYihang/Route-Crawler/pkg/config"
	"github.com/WangYihang/Route-Crawler/pkg/crawler"
	"github.com/WangYihang/Route-Crawler/pkg/input"
	"github.com/WangYihang/Route-Crawler/pkg/output"
	"github.com/WangYihang/Route-Crawler/pkg/queue"
	"github.com/WangYihang/Route-Crawler/pkg/retry"
	"github.com/WangYihang/Route-Crawler/pkg/worker"
	"github.com/schollz/progressbar/v3"
)

// Summary aggregates one full run for operator reporting. It separates
// "nothing to find" (successful crawl, few routes) from "site unreachable"
// (failed crawl, blacklisted domain).
type Summary struct {
	Websites    int
	Successful  int
	Failed      int
	TotalRoutes int
	Blacklisted []string
	Duration    time.Duration
	Retry       retry.Stats
}

// Pipeline wires the crawl workers, the shared blacklist and the output
// stores together and runs the main pass plus the single-route retry pass.
type Pipeline struct {
	cfg      *config.Config
	registry *blacklist.Registry
	crawler  *crawler.Crawler
	store    *output.RouteStore
}

// New creates pipeline
func New(cfg *config.Config) (*Pipeline, error) {
	store, err := output.NewRouteStore(cfg.Output.Dir)
	if err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	registry := blacklist.NewRegistry()
	return &Pipeline{
		cfg:      cfg,
		registry: registry,
		crawler:  crawler.New(cfg.HTTP, cfg.Crawl, registry),
		store:    store,
	}, nil
}

// Run executes the crawl pass over every lead in the input CSV, then the
// retry pass, and returns the combined summary.
func (p *Pipeline) Run() (*Summary, error) {
	tasks, err := input.NewLoader(p.cfg.Input.MaxWebsites).Load(p.cfg.Input.File)
	if err != nil {
		return nil, fmt.Errorf("load leads: %w", err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no crawlable websites in %s", p.cfg.Input.File)
	}
	log.Printf("loaded %d websites from %s", len(tasks), p.cfg.Input.File)

	resultWriter, err := output.NewResultWriter(p.cfg.Output.ResultsFile)
	if err != nil {
		return nil, fmt.Errorf("create result writer: %w", err)
	}
	defer resultWriter.Close()

	start := time.Now()
	summary := &Summary{Websites: len(tasks)}

	jobQueue := queue.NewJobQueue(len(tasks))
	resultQueue := queue.NewResultQueue(p.cfg.Concurrency.QueueSize)
	stopChan := make(chan struct{})

	for _, task := range tasks {
		jobQueue.Enqueue(task)
	}
	jobQueue.Close()

	var wg sync.WaitGroup
	for i := 0; i < p.cfg.Concurrency.NumWorkers; i++ {
		w := worker.NewWorker(&worker.Config{
			ID:       i,
			Jobs:     jobQueue,
			Results:  resultQueue,
			Crawler:  p.crawler,
			Store:    p.store,
			StopChan: stopChan,
		})
		w.Start(&wg)
	}

	go func() {
		wg.Wait()
		resultQueue.Close()
	}()

	bar := progressbar.NewOptions(len(tasks),
		progressbar.OptionSetDescription("crawling"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for {
		result, ok := resultQueue.Receive()
		if !ok {
			break
		}
		_ = bar.Add(1)
		if err := resultWriter.WriteResult(result); err != nil {
			log.Printf("write result for %s: %v", result.Label, err)
		}

		if result.Success {
			summary.Successful++
			summary.TotalRoutes += result.Routes
		} else {
			summary.Failed++
			log.Printf("failed: %s (%s): %s", result.Label, result.Domain, result.Err)
		}
	}
	close(stopChan)
	_ = bar.Finish()

	summary.Blacklisted = p.registry.Snapshot()

	retryStats, err := retry.NewRetrier(p.store, p.crawler).Run()
	if err != nil {
		log.Printf("retry pass: %v", err)
	} else {
		summary.Retry = retryStats
		summary.TotalRoutes += retryStats.AdditionalRoutes
	}

	summary.Duration = time.Since(start)
	return summary, nil
}

// Report prints the operator summary to stderr.
func (s *Summary) Report() {
	fmt.Fprintf(os.Stderr, "\ncrawl finished in %s\n", s.Duration.Truncate(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  websites processed: %d\n", s.Websites)
	fmt.Fprintf(os.Stderr, "  successful crawls:  %d\n", s.Successful)
	fmt.Fprintf(os.Stderr, "  failed crawls:      %d\n", s.Failed)
	fmt.Fprintf(os.Stderr, "  routes discovered:  %d\n", s.TotalRoutes)
	if s.Successful > 0 {
		fmt.Fprintf(os.Stderr, "  avg routes/site:    %.1f\n", float64(s.TotalRoutes)/float64(s.Successful))
	}
	if len(s.Blacklisted) > 0 {
		fmt.Fprintf(os.Stderr, "  blacklisted domains (%d):\n", len(s.Blacklisted))
		for _, domain := range s.Blacklisted {
			fmt.Fprintf(os.Stderr, "    - %s\n", domain)
		}
	}
	if s.Retry.Retried > 0 {
		fmt.Fprintf(os.Stderr, "  retry pass: %d retried, %d improved, %d stuck, %d additional routes\n",
			s.Retry.Retried, s.Retry.Improved, s.Retry.Stuck, s.Retry.AdditionalRoutes)
	}
}
