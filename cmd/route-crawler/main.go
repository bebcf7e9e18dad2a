package main

import (
	"fmt"
	"log"
	"os"

	"github.com/WangYihang/Route-Crawler/pkg/cli"
	"github.com/WangYihang/Route-Crawler/pkg/monitor"
	"github.com/WangYihang/Route-Crawler/pkg/pipeline"
)

func main() {
	opts, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := opts.ToConfig()

	if cfg.Metrics.Enabled {
		go func() {
			if err := monitor.Serve(cfg.Metrics.Addr); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	summary, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	summary.Report()
}
