package crawler

import (
	"time"

	"github.com/fuzumoe/siteinsight-backend/internal/analyzer"
)

// LinkCandidate is a discovered same-site link awaiting a fetch.
type LinkCandidate struct {
	URL      string
	Text     string
	Context  string
	Score    int
	Position int
}

// PageRecord describes one successfully crawled page.
type PageRecord struct {
	URL        string `json:"url"`
	Label      string `json:"label"`
	TextLength int    `json:"text_length"`
}

// CrawlResult is the aggregate of a crawl. When Error is set the crawl failed
// at the homepage and the page fields are empty.
type CrawlResult struct {
	CompanyName string           `json:"company_name"`
	BaseURL     string           `json:"base_url"`
	Pages       []PageRecord     `json:"pages"`
	Corpus      string           `json:"corpus"`
	PageCount   int              `json:"page_count"`
	Signals     analyzer.Signals `json:"enterprise_signals"`
	Error       string           `json:"error,omitempty"`
	Elapsed     time.Duration    `json:"elapsed" swaggertype:"integer" format:"int64" example:"1500000000"` // Duration in nanoseconds
}

// Failed reports whether the crawl aborted before producing any page.
func (r *CrawlResult) Failed() bool {
	return r == nil || r.Error != ""
}

// AnalysisInput is what the text-analysis collaborator consumes.
type AnalysisInput struct {
	CompanyName string
	Corpus      string
	Signals     analyzer.Signals
}

// AnalysisInput returns the name, corpus and signals of a successful crawl.
func (r *CrawlResult) AnalysisInput() AnalysisInput {
	return AnalysisInput{CompanyName: r.CompanyName, Corpus: r.Corpus, Signals: r.Signals}
}

// Citations returns the crawled pages in crawl order for source display.
func (r *CrawlResult) Citations() []PageRecord {
	out := make([]PageRecord, len(r.Pages))
	copy(out, r.Pages)
	return out
}
