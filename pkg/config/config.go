package config

import "time"

// DefaultUserAgent is sent with every request. Some marketing sites block
// clients that do not look like a browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultAllowedExtensions lists page-like path extensions. Extensionless
// paths are always allowed; anything else (assets, documents) is skipped.
var DefaultAllowedExtensions = []string{".html", ".htm", ".php", ".asp", ".aspx", ".jsp"}

// DefaultSkipPatterns lists non-navigable href schemes.
var DefaultSkipPatterns = []string{"javascript:", "mailto:", "tel:", "#"}

// Config holds all configuration
type Config struct {
	Input       InputConfig
	Output      OutputConfig
	HTTP        HTTPConfig
	Crawl       CrawlConfig
	Concurrency ConcurrencyConfig
	Metrics     MetricsConfig
}

type InputConfig struct {
	File        string
	MaxWebsites int
}

type OutputConfig struct {
	Dir         string
	ResultsFile string
}

type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

type CrawlConfig struct {
	MaxPagesPerSite        int
	MaxConsecutiveFailures int
	Delay                  time.Duration
	MaxBackoff             time.Duration
	AllowedExtensions      []string
	SkipPatterns           []string
}

type ConcurrencyConfig struct {
	NumWorkers int
	QueueSize  int
}

type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// New creates config with the lead-generation pipeline defaults.
func New(inputFile, outputDir string) *Config {
	return &Config{
		Input: InputConfig{
			File:        inputFile,
			MaxWebsites: 1000,
		},
		Output: OutputConfig{
			Dir:         outputDir,
			ResultsFile: "crawl_results.jsonl",
		},
		HTTP: HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: DefaultUserAgent,
		},
		Crawl: CrawlConfig{
			MaxPagesPerSite:        100,
			MaxConsecutiveFailures: 5,
			Delay:                  100 * time.Millisecond,
			MaxBackoff:             10 * time.Second,
			AllowedExtensions:      DefaultAllowedExtensions,
			SkipPatterns:           DefaultSkipPatterns,
		},
		Concurrency: ConcurrencyConfig{
			NumWorkers: 10,
			QueueSize:  100,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":2112",
		},
	}
}
