package queue

// Task represents one website to crawl
type Task struct {
	// Label identifies the institution the website belongs to.
	Label string
	// URL is the crawl entry point, always carrying a scheme.
	URL string
}

// Result represents one finished crawl, consumed only for reporting.
type Result struct {
	Label   string
	Domain  string
	State   string
	Routes  int
	Success bool
	Err     string
}

// JobQueue manages tasks
type JobQueue struct {
	ch chan Task
}

// NewJobQueue creates queue
func NewJobQueue(capacity int) *JobQueue {
	return &JobQueue{ch: make(chan Task, capacity)}
}

// Enqueue adds task
func (q *JobQueue) Enqueue(task Task) bool {
	select {
	case q.ch <- task:
		return true
	default:
		return false
	}
}

// Dequeue gets task
func (q *JobQueue) Dequeue() (Task, bool) {
	task, ok := <-q.ch
	return task, ok
}

// Len returns queued task count
func (q *JobQueue) Len() int {
	return len(q.ch)
}

// Close closes queue
func (q *JobQueue) Close() {
	close(q.ch)
}

// ResultQueue manages results
type ResultQueue struct {
	ch chan Result
}

// NewResultQueue creates result queue
func NewResultQueue(capacity int) *ResultQueue {
	return &ResultQueue{ch: make(chan Result, capacity)}
}

// Send sends result, blocking until the collector drains it.
func (q *ResultQueue) Send(result Result) {
	q.ch <- result
}

// Receive gets result
func (q *ResultQueue) Receive() (Result, bool) {
	result, ok := <-q.ch
	return result, ok
}

// Close closes queue
func (q *ResultQueue) Close() {
	close(q.ch)
}
