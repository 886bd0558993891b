package crawler_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuzumoe/siteinsight-backend/internal/analyzer"
	"github.com/fuzumoe/siteinsight-backend/internal/crawler"
)

// fakeAnalyzer serves canned outcomes by URL; unknown URLs fail with 404.
type fakeAnalyzer struct {
	pages map[string]*analyzer.FetchOutcome
	calls []string
}

func (f *fakeAnalyzer) Analyze(_ context.Context, rawURL string) *analyzer.FetchOutcome {
	f.calls = append(f.calls, rawURL)
	if out, ok := f.pages[rawURL]; ok {
		cp := *out
		cp.URL = rawURL
		return &cp
	}
	return &analyzer.FetchOutcome{URL: rawURL, Err: &analyzer.FetchError{URL: rawURL, StatusCode: http.StatusNotFound}}
}

func page(text string, links ...analyzer.RawLink) *analyzer.FetchOutcome {
	for i := range links {
		links[i].Position = i
	}
	return &analyzer.FetchOutcome{Success: true, Text: text, Links: links, Signals: analyzer.Signals{}}
}

func link(u, text string) analyzer.RawLink {
	return analyzer.RawLink{URL: u, Text: text, Context: text}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCrawler(a analyzer.Analyzer, maxPages int, opts ...crawler.Option) *crawler.Crawler {
	opts = append([]crawler.Option{crawler.WithLogger(quietLogger())}, opts...)
	return crawler.New(a, nil, crawler.Options{MaxPages: maxPages, Timeout: time.Minute}, opts...)
}

func TestCrawl_HomepageNotFound(t *testing.T) {
	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{}}
	res := newCrawler(fa, 10).Crawl(context.Background(), "example.com")

	assert.Equal(t, "https://example.com", res.BaseURL)
	assert.True(t, res.Failed())
	assert.Contains(t, res.Error, "404")
	assert.Equal(t, 0, res.PageCount)
	assert.Empty(t, res.Pages)
	assert.Empty(t, res.Corpus)
	assert.Equal(t, []string{"https://example.com"}, fa.calls)
}

func TestCrawl_HomepageLanguageRejected(t *testing.T) {
	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{
		"https://example.com": {Err: analyzer.ErrNonTargetLanguage},
	}}
	res := newCrawler(fa, 10).Crawl(context.Background(), "https://example.com")

	require.True(t, res.Failed())
	assert.Contains(t, res.Error, analyzer.ErrNonTargetLanguage.Error())
	assert.Equal(t, 0, res.PageCount)
	assert.Len(t, fa.calls, 1)
}

func TestCrawl_FiltersAndRanksHomepageLinks(t *testing.T) {
	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{
		"https://example.com": page("Welcome to Example",
			link("https://example.com/brochure.pdf", "Brochure"),
			link("https://example.com/login", "Log in"),
			link("https://example.com/privacy", "Privacy"),
			link("https://example.com/about-us", "About Us"),
			link("https://example.com/ai-case-studies", "AI Case Studies"),
		),
		"https://example.com/about-us":        page("We are a company."),
		"https://example.com/ai-case-studies": page("Our AI work."),
	}}
	res := newCrawler(fa, 10).Crawl(context.Background(), "example.com")

	require.False(t, res.Failed(), res.Error)
	assert.Equal(t, []string{
		"https://example.com",
		"https://example.com/ai-case-studies",
		"https://example.com/about-us",
	}, fa.calls)
	require.Equal(t, 3, res.PageCount)
	assert.Equal(t, "Homepage", res.Pages[0].Label)
	assert.Equal(t, "AI Case Studies", res.Pages[1].Label)
	assert.Equal(t, "About Us", res.Pages[2].Label)
	assert.Equal(t, len("Our AI work."), res.Pages[1].TextLength)
	assert.Equal(t,
		"Welcome to Example\n\n=== AI Case Studies ===\n\nOur AI work.\n\n=== About Us ===\n\nWe are a company.",
		res.Corpus)
}

func TestCrawl_PageBudgetKeepsHighestScores(t *testing.T) {
	var links []analyzer.RawLink
	for i := 0; i < 10; i++ {
		path := fmt.Sprintf("/x%d", i)
		switch i {
		case 1:
			path = "/team"
		case 3:
			path = "/news"
		}
		links = append(links, analyzer.RawLink{URL: "https://example.com" + path})
	}
	pages := map[string]*analyzer.FetchOutcome{"https://example.com": page("home", links...)}
	for _, l := range links {
		pages[l.URL] = page("content")
	}
	fa := &fakeAnalyzer{pages: pages}

	res := newCrawler(fa, 3).Crawl(context.Background(), "example.com")

	require.Equal(t, 3, res.PageCount)
	assert.Equal(t, []string{
		"https://example.com",
		"https://example.com/team",
		"https://example.com/news",
	}, fa.calls)
	assert.Equal(t, "Page", res.Pages[1].Label)
}

func TestCrawl_FailedPagesAreSkipped(t *testing.T) {
	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{
		"https://example.com": page("home",
			link("https://example.com/about", "About"),
			link("https://example.com/services", "Services"),
			link("https://example.com/team", "Team"),
		),
		"https://example.com/services": {Err: analyzer.ErrNonTargetLanguage},
		"https://example.com/team":     page("team"),
	}}
	res := newCrawler(fa, 10).Crawl(context.Background(), "example.com")

	require.False(t, res.Failed())
	assert.Len(t, fa.calls, 4)
	assert.Equal(t, 2, res.PageCount)
	assert.Equal(t, res.PageCount, len(res.Pages))
	assert.Equal(t, "https://example.com/team", res.Pages[1].URL)
}

func TestCrawl_NoDuplicateVisits(t *testing.T) {
	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{
		"https://example.com": page("home",
			link("https://example.com/", "Home"),
			link("https://example.com/#top", "Top"),
			link("https://example.com/about", "About"),
			link("https://example.com/about/", "About again"),
			link("https://example.com/about#team", "About team"),
		),
		"https://example.com/about": page("about"),
	}}
	res := newCrawler(fa, 10).Crawl(context.Background(), "example.com")

	seen := map[string]bool{}
	for _, p := range res.Pages {
		key := crawler.NormalizeURL(p.URL)
		assert.False(t, seen[key], "duplicate page %s", p.URL)
		seen[key] = true
	}
	assert.Equal(t, 2, res.PageCount)
	assert.Equal(t, []string{"https://example.com", "https://example.com/about"}, fa.calls)
}

func TestCrawl_StopsWhenTimeBudgetExhausted(t *testing.T) {
	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{
		"https://example.com": page("home",
			link("https://example.com/about", "About"),
			link("https://example.com/team", "Team"),
			link("https://example.com/news", "News"),
		),
		"https://example.com/about": page("about"),
		"https://example.com/team":  page("team"),
		"https://example.com/news":  page("news"),
	}}

	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	clock := func() time.Time {
		now := t0.Add(time.Duration(calls) * 10 * time.Second)
		calls++
		return now
	}
	c := crawler.New(fa, nil,
		crawler.Options{MaxPages: 10, Timeout: 15 * time.Second},
		crawler.WithClock(clock), crawler.WithLogger(quietLogger()))

	res := c.Crawl(context.Background(), "example.com")

	assert.False(t, res.Failed())
	assert.Equal(t, 2, res.PageCount)
	assert.Len(t, fa.calls, 2)
}

func TestCrawl_StopsOnCancelledContext(t *testing.T) {
	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{
		"https://example.com": page("home", link("https://example.com/about", "About")),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := newCrawler(fa, 10).Crawl(ctx, "example.com")

	assert.True(t, res.Failed())
	assert.Contains(t, res.Error, context.Canceled.Error())
	assert.Empty(t, fa.calls)
}

func TestCrawl_MergesSignalsAcrossPages(t *testing.T) {
	home := page("home", link("https://example.com/about", "About"))
	home.Signals = analyzer.Signals{"stock_exchange": {"NYSE"}}
	about := page("about")
	about.Signals = analyzer.Signals{"stock_exchange": {"NYSE"}, "fortune": {"Fortune 500"}}

	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{
		"https://example.com":       home,
		"https://example.com/about": about,
	}}
	res := newCrawler(fa, 10).Crawl(context.Background(), "example.com")

	assert.Equal(t, []string{"NYSE", "NYSE"}, res.Signals["stock_exchange"])
	assert.Equal(t, []string{"Fortune 500"}, res.Signals["fortune"])
}

func TestCrawl_TextLengthCountsCharacters(t *testing.T) {
	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{
		"https://example.com": page("Zürich – “Café”",
			link("https://example.com/about", "About"),
		),
		"https://example.com/about": page("naïve"),
	}}

	res := newCrawler(fa, 10).Crawl(context.Background(), "example.com")

	require.Len(t, res.Pages, 2)
	assert.Equal(t, 15, res.Pages[0].TextLength)
	assert.Equal(t, 5, res.Pages[1].TextLength)
}

func TestCrawl_BudgetInvariant(t *testing.T) {
	var links []analyzer.RawLink
	pages := map[string]*analyzer.FetchOutcome{}
	for i := 0; i < 25; i++ {
		u := fmt.Sprintf("https://example.com/services/s%d", i)
		links = append(links, link(u, "Services"))
		pages[u] = page("svc")
	}
	pages["https://example.com"] = page("home", links...)

	for _, max := range []int{1, 2, 5, 10, 30} {
		fa := &fakeAnalyzer{pages: pages}
		res := newCrawler(fa, max).Crawl(context.Background(), "example.com")
		assert.LessOrEqual(t, res.PageCount, max)
		assert.Equal(t, res.PageCount, len(res.Pages))
	}
}

func TestCrawl_WithMaxPagesOverridesBudget(t *testing.T) {
	fa := &fakeAnalyzer{pages: map[string]*analyzer.FetchOutcome{
		"https://example.com": page("home",
			link("https://example.com/about", "About"),
			link("https://example.com/team", "Team"),
		),
		"https://example.com/about": page("about"),
		"https://example.com/team":  page("team"),
	}}
	c := newCrawler(fa, 10)

	res := c.Run(context.Background(), "example.com", 2)

	assert.Equal(t, 2, res.PageCount)
	assert.Equal(t, 10, c.MaxPages())
}

func TestCrawl_AgainstHTTPServer(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, `<!DOCTYPE html><html><head>
			<title>Acme Robotics | Industrial AI</title></head><body>
			<nav><a href="/team">Team</a><a href="/login">Login</a></nav>
			<main><p>Acme is a publicly traded company listed on the NYSE.</p>
			<p><a href="/about-us">About Us</a></p>
			<p><a href="/solutions/machine-learning">Machine Learning Solutions</a></p>
			<a href="/missing">Missing page</a>
			<a href="https://other.example.org/about">Partner</a></main>
			<footer>Copyright Acme</footer></body></html>`)
	})
	mux.HandleFunc("/about-us", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><body><p>Acme has 20,000+ employees worldwide.</p></body></html>`)
	})
	mux.HandleFunc("/team", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><body><p>Meet the team.</p></body></html>`)
	})
	mux.HandleFunc("/solutions/machine-learning", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<html><body><p>We build machine learning systems.</p></body></html>`)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	pages := analyzer.New(
		analyzer.NewHTTPFetcher(5*time.Second, ""),
		analyzer.NewLanguageFilter(englishOnly{}, "eng"),
		nil,
	)
	c := crawler.New(pages, nil, crawler.Options{MaxPages: 5, Timeout: 30 * time.Second},
		crawler.WithLogger(quietLogger()))

	res := c.Crawl(context.Background(), ts.URL)

	require.False(t, res.Failed(), res.Error)
	assert.Equal(t, "Acme Robotics", res.CompanyName)
	assert.Equal(t, 3, res.PageCount)
	assert.Equal(t, ts.URL, res.Pages[0].URL)
	assert.True(t, strings.HasPrefix(res.Corpus, "Acme Robotics | Industrial AI"))
	assert.Contains(t, res.Corpus, "Acme is a publicly traded company")
	assert.Contains(t, res.Corpus, "\n\n=== Machine Learning Solutions ===\n\nWe build machine learning systems.")
	assert.NotContains(t, res.Corpus, "Copyright Acme")
	assert.Contains(t, res.Signals, "stock_exchange")
	assert.Contains(t, res.Signals, "publicly_traded")
	assert.Equal(t, []string{"20,000+ employees"}, res.Signals["large_workforce"])

	var urls []string
	for _, p := range res.Citations() {
		urls = append(urls, p.URL)
	}
	assert.Contains(t, urls, ts.URL+"/about-us")
	assert.Contains(t, urls, ts.URL+"/solutions/machine-learning")
	assert.NotContains(t, urls, ts.URL+"/team")
}

type englishOnly struct{}

func (englishOnly) Classify(string) (string, bool) { return "eng", true }
