package analyzer

import (
	"context"
	"errors"
	"net/url"
)

// ErrNonTargetLanguage marks a page rejected by the language filter.
var ErrNonTargetLanguage = errors.New("non-target language content")

// FetchOutcome is the result of fetching and analyzing one page. Failures are
// carried as data: Success is false and Err holds the reason.
type FetchOutcome struct {
	URL      string
	Text     string
	Success  bool
	Err      error
	Signals  Signals
	Links    []RawLink
	SiteName string
}

// Reason returns the failure reason, or "" on success.
func (o *FetchOutcome) Reason() string {
	if o == nil || o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Analyzer fetches a page and turns it into a FetchOutcome.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) *FetchOutcome
}

// New creates a page analyzer with the given collaborators. A nil detector
// falls back to the default pattern table.
func New(f Fetcher, lf *LanguageFilter, sd *SignalDetector) Analyzer {
	if sd == nil {
		sd = NewSignalDetector(nil)
	}
	return &htmlAnalyzer{fetch: f, lang: lf, signals: sd}
}

// htmlAnalyzer analyzes HTML documents for crawl-relevant content.
type htmlAnalyzer struct {
	fetch   Fetcher
	lang    *LanguageFilter
	signals *SignalDetector
}

// Analyze fetches the document, extracts its links and site name, normalizes
// its text, then applies the language filter and the signal detector.
func (a *htmlAnalyzer) Analyze(ctx context.Context, rawURL string) *FetchOutcome {
	out := &FetchOutcome{URL: rawURL}

	body, err := a.fetch.Fetch(ctx, rawURL)
	if err != nil {
		out.Err = err
		return out
	}

	doc, err := parseDocument(body)
	if err != nil {
		out.Err = err
		return out
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		out.Err = err
		return out
	}

	out.SiteName = SiteName(doc, base)
	out.Text = Normalize(doc)
	out.Links = ExtractLinks(doc, base)

	if !a.lang.Accept(out.Text) {
		out.Text = ""
		out.Links = nil
		out.Err = ErrNonTargetLanguage
		return out
	}

	out.Signals = a.signals.Detect(out.Text)
	out.Success = true
	return out
}

// FailedByLanguage reports whether the outcome was a language rejection.
func (o *FetchOutcome) FailedByLanguage() bool {
	return o != nil && errors.Is(o.Err, ErrNonTargetLanguage)
}
