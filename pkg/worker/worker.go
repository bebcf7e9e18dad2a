package worker

import (
	"fmt"
	"sync"

	"github.com/WangYihang/Route-Crawler/pkg/crawler"
	"github.com/WangYihang/Route-Crawler/pkg/monitor"
	"github.com/WangYihang/Route-Crawler/pkg/output"
	"github.com/WangYihang/Route-Crawler/pkg/queue"
)

// SiteCrawler runs one site crawl to completion.
type SiteCrawler interface {
	Crawl(startURL string) crawler.Result
}

// Worker processes crawl tasks. Each worker runs one site crawl to
// completion before taking a new task and owns no state across tasks.
type Worker struct {
	id       int
	jobs     *queue.JobQueue
	results  *queue.ResultQueue
	crawler  SiteCrawler
	store    *output.RouteStore
	stopChan <-chan struct{}
}

// Config holds worker config
type Config struct {
	ID       int
	Jobs     *queue.JobQueue
	Results  *queue.ResultQueue
	Crawler  SiteCrawler
	Store    *output.RouteStore
	StopChan <-chan struct{}
}

// NewWorker creates worker
func NewWorker(config *Config) *Worker {
	return &Worker{
		id:       config.ID,
		jobs:     config.Jobs,
		results:  config.Results,
		crawler:  config.Crawler,
		store:    config.Store,
		stopChan: config.StopChan,
	}
}

// Start starts worker
func (w *Worker) Start(wg *sync.WaitGroup) {
	wg.Add(1)

	go func() {
		defer wg.Done()
		w.process()
	}()
}

// process processes tasks
func (w *Worker) process() {
	for {
		select {
		case <-w.stopChan:
			return
		default:
		}

		task, ok := w.jobs.Dequeue()
		if !ok {
			return
		}

		w.results.Send(w.processTask(task))
	}
}

// processTask crawls one site and persists its route file. A panic inside
// the crawl is converted into a failed result so sibling tasks keep running.
func (w *Worker) processTask(task queue.Task) (result queue.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = queue.Result{
				Label: task.Label,
				State: "panic",
				Err:   fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	res := w.crawler.Crawl(task.URL)
	monitor.SitesCrawled.WithLabelValues(res.State.String()).Inc()

	result = queue.Result{
		Label:   task.Label,
		Domain:  res.Domain,
		State:   res.State.String(),
		Routes:  len(res.Routes),
		Success: res.Success(),
		Err:     res.Err,
	}

	if res.Domain == "" {
		return result
	}

	// Downstream stages expect one file per site even when nothing was
	// found, so skipped and aborted crawls still write theirs.
	if err := w.store.Write(res.Domain, res.Routes); err != nil {
		result.Success = false
		result.Err = fmt.Sprintf("write routes: %v", err)
	}
	return result
}
