// Command crawl runs a single crawl of a seed site and prints the result as JSON.
//
//	crawl [-max-pages N] [-timeout 30s] example.com
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuzumoe/siteinsight-backend/configs"
	"github.com/fuzumoe/siteinsight-backend/internal/app"
	"github.com/fuzumoe/siteinsight-backend/internal/logging"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("crawl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	maxPages := fs.Int("max-pages", 0, "page budget including the homepage (default CRAWL_MAX_PAGES)")
	timeout := fs.Duration("timeout", 0, "wall-clock budget (default CRAWL_TIMEOUT_SECONDS)")
	corpus := fs.Bool("corpus", true, "include the concatenated page text")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: crawl [flags] <domain-or-url>")
		return 2
	}

	cfg, err := configs.LoadCrawl()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	if *timeout > 0 {
		cfg.CrawlTimeout = *timeout
	}
	logger := logging.New("siteinsight-cli", cfg.LogLevel, "", stderr)
	slog.SetDefault(logger)

	c, err := app.BuildCrawler(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "crawler: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res := c.Run(ctx, fs.Arg(0), *maxPages)
	if !*corpus {
		res.Corpus = ""
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return 1
	}
	if res.Failed() {
		return 1
	}
	logger.Info("done", "pages", res.PageCount, "elapsed", res.Elapsed.Round(time.Millisecond))
	return 0
}
