package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/WangYihang/Route-Crawler/pkg/config"
	"github.com/jessevdk/go-flags"
)

// Options holds all command line options
type Options struct {
	// Input/Output
	InputFile   string `short:"i" long:"input" description:"Discovered-leads CSV (Institution Name, Website columns)" default:"1_discovered_leads.csv"`
	OutputDir   string `short:"o" long:"output-dir" description:"Directory for per-site route files" default:"websites"`
	ResultsFile string `long:"results" description:"JSONL per-site result log (use - for stdout)" default:"crawl_results.jsonl"`
	MaxWebsites int    `long:"max-websites" description:"Maximum number of websites to process (0 = unlimited)" default:"1000"`

	// Crawling
	NumWorkers  int `long:"workers" description:"Number of concurrent crawl workers" default:"10"`
	MaxPages    int `long:"max-pages" description:"Maximum pages discovered per site" default:"100"`
	MaxFailures int `long:"max-failures" description:"Consecutive request failures before a domain is blacklisted" default:"5"`

	// HTTP
	Timeout           int    `long:"timeout" description:"Per-request timeout in seconds" default:"5"`
	DelayMs           int    `long:"delay" description:"Politeness delay between requests in milliseconds" default:"100"`
	MaxBackoffSeconds int    `long:"max-backoff" description:"Exponential backoff ceiling in seconds" default:"10"`
	UserAgent         string `long:"user-agent" description:"User-Agent header" default:""`

	// Metrics
	Metrics     bool   `long:"metrics" description:"Expose Prometheus metrics"`
	MetricsAddr string `long:"metrics-addr" description:"Metrics listen address" default:":2112"`
}

// ParseFlags parses command line flags
func ParseFlags() (*Options, error) {
	opts := &Options{}
	parser := flags.NewParser(opts, flags.Default)
	parser.Usage = "[OPTIONS]"

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		return nil, err
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate validates the options
func (o *Options) Validate() error {
	if o.NumWorkers <= 0 {
		return fmt.Errorf("number of workers must be > 0, got %d", o.NumWorkers)
	}
	if o.MaxPages <= 0 {
		return fmt.Errorf("max pages per site must be > 0, got %d", o.MaxPages)
	}
	if o.MaxFailures <= 0 {
		return fmt.Errorf("max consecutive failures must be > 0, got %d", o.MaxFailures)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %d", o.Timeout)
	}
	if o.DelayMs < 0 {
		return fmt.Errorf("delay must be >= 0, got %d", o.DelayMs)
	}
	if o.MaxBackoffSeconds <= 0 {
		return fmt.Errorf("max backoff must be > 0, got %d", o.MaxBackoffSeconds)
	}
	return nil
}

// ToConfig builds the runtime configuration from parsed options.
func (o *Options) ToConfig() *config.Config {
	cfg := config.New(o.InputFile, o.OutputDir)

	cfg.Input.MaxWebsites = o.MaxWebsites
	cfg.Output.ResultsFile = o.ResultsFile
	cfg.HTTP.Timeout = time.Duration(o.Timeout) * time.Second
	if o.UserAgent != "" {
		cfg.HTTP.UserAgent = o.UserAgent
	}
	cfg.Crawl.MaxPagesPerSite = o.MaxPages
	cfg.Crawl.MaxConsecutiveFailures = o.MaxFailures
	cfg.Crawl.Delay = time.Duration(o.DelayMs) * time.Millisecond
	cfg.Crawl.MaxBackoff = time.Duration(o.MaxBackoffSeconds) * time.Second
	cfg.Concurrency.NumWorkers = o.NumWorkers
	cfg.Concurrency.QueueSize = o.NumWorkers * 10
	cfg.Metrics.Enabled = o.Metrics
	cfg.Metrics.Addr = o.MetricsAddr

	return cfg
}
