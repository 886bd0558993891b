package crawler

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/fuzumoe/siteinsight-backend/internal/analyzer"
	"github.com/fuzumoe/siteinsight-backend/internal/metrics"
)

const (
	DefaultMaxPages = 10
	DefaultTimeout  = 30 * time.Second
	DefaultDelay    = 100 * time.Millisecond

	homepageLabel = "Homepage"
	pageLabel     = "Page"
	maxLabelLen   = 50
)

// Options bounds a crawl.
type Options struct {
	MaxPages int
	Timeout  time.Duration
	// Delay is the minimum spacing between two fetches of the same crawl.
	Delay time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxPages <= 0 {
		o.MaxPages = DefaultMaxPages
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Delay < 0 {
		o.Delay = 0
	}
	return o
}

// Crawler runs bounded, priority-driven crawls of a single site. A Crawler is
// safe for concurrent use; each Crawl call owns its own state.
type Crawler struct {
	analyzer analyzer.Analyzer
	scorer   *Scorer
	opts     Options
	now      func() time.Time
	log      *slog.Logger
}

// Option customizes a Crawler.
type Option func(*Crawler)

// WithClock replaces the wall clock used for the time budget.
func WithClock(now func() time.Time) Option {
	return func(c *Crawler) { c.now = now }
}

// WithLogger sets the logger used for crawl progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *Crawler) { c.log = l }
}

// New creates a Crawler. A nil scorer uses DefaultTopic.
func New(a analyzer.Analyzer, s *Scorer, opts Options, options ...Option) *Crawler {
	if s == nil {
		s = NewScorer(DefaultTopic())
	}
	c := &Crawler{
		analyzer: a,
		scorer:   s,
		opts:     opts.withDefaults(),
		now:      time.Now,
		log:      slog.Default(),
	}
	for _, o := range options {
		o(c)
	}
	return c
}

// MaxPages returns the configured page budget.
func (c *Crawler) MaxPages() int { return c.opts.MaxPages }

// WithMaxPages returns a copy of c with a different page budget.
func (c *Crawler) WithMaxPages(n int) *Crawler {
	cp := *c
	if n > 0 {
		cp.opts.MaxPages = n
	}
	return &cp
}

// Run crawls seed with a page budget of maxPages (the configured budget when
// maxPages is not positive).
func (c *Crawler) Run(ctx context.Context, seed string, maxPages int) *CrawlResult {
	return c.WithMaxPages(maxPages).Crawl(ctx, seed)
}

// Crawl fetches the seed's homepage, ranks its links once and fetches the best
// candidates until the page or time budget runs out. Only a homepage failure
// is fatal; it is reported through CrawlResult.Error.
func (c *Crawler) Crawl(ctx context.Context, seed string) *CrawlResult {
	r := &run{
		c:       c,
		start:   c.now(),
		visited: make(map[string]struct{}),
		limiter: newLimiter(c.opts.Delay),
		result: &CrawlResult{
			BaseURL: NormalizeSeed(seed),
			Pages:   []PageRecord{},
			Signals: analyzer.Signals{},
		},
	}
	r.execute(ctx)
	r.result.Corpus = r.corpus.String()
	r.result.Elapsed = c.now().Sub(r.start)

	outcome := "done"
	if r.result.Failed() {
		outcome = "error"
	}
	metrics.CrawlsTotal.WithLabelValues(outcome).Inc()
	metrics.CrawlDuration.Observe(r.result.Elapsed.Seconds())
	c.log.Info("crawl complete",
		"base_url", r.result.BaseURL,
		"pages", r.result.PageCount,
		"signals", len(r.result.Signals),
		"elapsed", r.result.Elapsed.Truncate(time.Millisecond),
		"error", r.result.Error,
	)
	return r.result
}

func newLimiter(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// run holds the state of one crawl: the visited set and the growing result.
type run struct {
	c       *Crawler
	start   time.Time
	visited map[string]struct{}
	limiter *rate.Limiter
	result  *CrawlResult
	corpus  strings.Builder
}

func (r *run) execute(ctx context.Context) {
	home := r.fetch(ctx, r.result.BaseURL)
	if !home.Success {
		r.result.Error = "failed to crawl homepage: " + home.Reason()
		return
	}
	r.result.CompanyName = home.SiteName
	r.record(home, homepageLabel)

	ranked := r.c.scorer.Rank(r.discover(home.Links, BaseDomain(r.result.BaseURL)))
	if limit := r.c.opts.MaxPages - 1; len(ranked) > limit {
		ranked = ranked[:limit]
	}
	r.c.log.Debug("ranked candidates", "base_url", r.result.BaseURL, "links", len(home.Links), "selected", len(ranked))

	for _, cand := range ranked {
		if r.result.PageCount >= r.c.opts.MaxPages {
			break
		}
		if ctx.Err() != nil {
			r.c.log.Warn("crawl cancelled", "base_url", r.result.BaseURL)
			break
		}
		if r.c.now().Sub(r.start) > r.c.opts.Timeout {
			r.c.log.Warn("crawl time budget exhausted", "base_url", r.result.BaseURL, "pages", r.result.PageCount)
			break
		}
		if r.seen(cand.URL) {
			continue
		}

		page := r.fetch(ctx, cand.URL)
		if !page.Success {
			r.c.log.Debug("skipping page", "url", cand.URL, "score", cand.Score, "reason", page.Reason())
			continue
		}
		r.record(page, label(cand.Text))
	}
}

// discover keeps same-site, crawlable, unvisited links, one per normalized URL,
// in document order.
func (r *run) discover(links []analyzer.RawLink, baseDomain string) []LinkCandidate {
	seen := make(map[string]struct{}, len(links))
	out := make([]LinkCandidate, 0, len(links))
	for _, l := range links {
		key := NormalizeURL(l.URL)
		if r.seen(l.URL) {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if !IsValidCandidate(l.URL, baseDomain) {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, LinkCandidate{
			URL:      l.URL,
			Text:     l.Text,
			Context:  l.Context,
			Position: l.Position,
		})
	}
	return out
}

func (r *run) fetch(ctx context.Context, rawURL string) *analyzer.FetchOutcome {
	if err := r.limiter.Wait(ctx); err != nil {
		return &analyzer.FetchOutcome{URL: rawURL, Err: err}
	}
	out := r.c.analyzer.Analyze(ctx, rawURL)
	switch {
	case out.Success:
		metrics.PagesFetched.WithLabelValues("ok").Inc()
	case out.FailedByLanguage():
		metrics.PagesFetched.WithLabelValues("language").Inc()
	default:
		metrics.PagesFetched.WithLabelValues("error").Inc()
	}
	return out
}

func (r *run) seen(rawURL string) bool {
	_, ok := r.visited[NormalizeURL(rawURL)]
	return ok
}

// record marks a successful page visited and folds it into the result.
func (r *run) record(page *analyzer.FetchOutcome, title string) {
	r.visited[NormalizeURL(page.URL)] = struct{}{}
	r.result.Pages = append(r.result.Pages, PageRecord{
		URL:        page.URL,
		Label:      title,
		TextLength: utf8.RuneCountInString(page.Text),
	})
	r.result.PageCount = len(r.result.Pages)
	r.result.Signals.Merge(page.Signals)

	if len(r.result.Pages) > 1 {
		r.corpus.WriteString("\n\n=== " + title + " ===\n\n")
	}
	r.corpus.WriteString(page.Text)
}

// label truncates anchor text for display.
func label(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return pageLabel
	}
	if rs := []rune(text); len(rs) > maxLabelLen {
		return string(rs[:maxLabelLen])
	}
	return text
}
