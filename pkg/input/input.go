package input

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/WangYihang/Route-Crawler/pkg/queue"
)

// Column names produced by the institution-discovery stage.
const (
	nameColumn    = "Institution Name"
	websiteColumn = "Website"
)

// Loader loads crawl targets from the discovered-leads CSV.
type Loader struct {
	maxWebsites int
}

// NewLoader creates loader. maxWebsites <= 0 means unlimited.
func NewLoader(maxWebsites int) *Loader {
	return &Loader{maxWebsites: maxWebsites}
}

// Load reads (institution, website) pairs. Rows without a usable website
// are dropped; websites without a scheme get "https://" prefixed.
func (l *Loader) Load(filePath string) ([]queue.Task, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	nameIdx, websiteIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case nameColumn:
			nameIdx = i
		case websiteColumn:
			websiteIdx = i
		}
	}
	if websiteIdx < 0 {
		return nil, fmt.Errorf("column %q not found in %s", websiteColumn, filePath)
	}

	var tasks []queue.Task
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		if l.maxWebsites > 0 && len(tasks) >= l.maxWebsites {
			break
		}

		website := ""
		if websiteIdx < len(record) {
			website = strings.TrimSpace(record[websiteIdx])
		}
		if website == "" || strings.EqualFold(website, "n/a") {
			continue
		}
		if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
			website = "https://" + website
		}

		label := "Unknown"
		if nameIdx >= 0 && nameIdx < len(record) {
			if name := strings.TrimSpace(record[nameIdx]); name != "" {
				label = name
			}
		}

		tasks = append(tasks, queue.Task{Label: label, URL: website})
	}

	return tasks, nil
}
