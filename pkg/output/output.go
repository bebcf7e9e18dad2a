package output

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/WangYihang/Route-Crawler/pkg/queue"
	"github.com/WangYihang/Route-Crawler/pkg/urlnorm"
)

// RouteStore persists one plain-text route file per site. Lines are the
// normalized key form, sorted, newline-terminated.
type RouteStore struct {
	dir string
}

// NewRouteStore creates store, ensuring the directory exists.
func NewRouteStore(dir string) (*RouteStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &RouteStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *RouteStore) Dir() string {
	return s.dir
}

// Path returns the file path for a site host.
func (s *RouteStore) Path(host string) string {
	return filepath.Join(s.dir, urlnorm.Filename(host))
}

// Write persists the routes discovered for host, overwriting any previous
// file. Routes are normalized, de-duplicated and sorted at write time.
func (s *RouteStore) Write(host string, routes []string) error {
	seen := make(map[string]struct{}, len(routes))
	lines := make([]string, 0, len(routes))
	for _, route := range routes {
		key := urlnorm.Normalize(route)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		lines = append(lines, key)
	}
	sort.Strings(lines)

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return os.WriteFile(s.Path(host), []byte(buf.String()), 0644)
}

// ReadFile returns the non-blank lines of one route file.
func (s *RouteStore) ReadFile(name string) ([]string, error) {
	file, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var routes []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			routes = append(routes, line)
		}
	}
	return routes, scanner.Err()
}

// List returns the route file names in the store, sorted.
func (s *RouteStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ResultWriter writes per-site crawl results as JSONL (use "-" for stdout)
type ResultWriter struct {
	resultsFile string
	file        *os.File
	mu          sync.Mutex
	encoder     *json.Encoder
}

// NewResultWriter creates writer
func NewResultWriter(filePath string) (*ResultWriter, error) {
	var file *os.File
	var err error

	if filePath == "-" {
		file = os.Stdout
	} else {
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
	}

	return &ResultWriter{
		resultsFile: filePath,
		file:        file,
		encoder:     json.NewEncoder(file),
	}, nil
}

// WriteResult writes result
func (w *ResultWriter) WriteResult(result queue.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.encoder.Encode(map[string]interface{}{
		"label":   result.Label,
		"domain":  result.Domain,
		"state":   result.State,
		"routes":  result.Routes,
		"success": result.Success,
		"error":   result.Err,
	})
}

// Close closes writer (does not close stdout)
func (w *ResultWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.resultsFile == "-" {
		return nil
	}
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
