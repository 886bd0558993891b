package analyzer

import (
	"regexp"
	"strings"
)

// Signals maps an enterprise signal name to every snippet that matched it.
type Signals map[string][]string

// Merge appends other's snippets to s, key by key, without deduplication.
func (s Signals) Merge(other Signals) {
	for name, matches := range other {
		s[name] = append(s[name], matches...)
	}
}

// SignalPattern is one row of the detector's table.
type SignalPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// DefaultSignalPatterns returns the scale indicators scanned on every page.
func DefaultSignalPatterns() []SignalPattern {
	return []SignalPattern{
		{"fortune", regexp.MustCompile(`(?i)fortune\s+(?:500|100)`)},
		{"publicly_traded", regexp.MustCompile(`(?i)(?:publicly traded|publicly-traded|public company|traded on)`)},
		{"stock_exchange", regexp.MustCompile(`(?i)(?:nasdaq|nyse|dow jones|s&p 500)`)},
		{"large_valuation", regexp.MustCompile(`(?i)\$\d+(?:\.\d+)?\s*(?:billion|b)\s+(?:market cap|valuation)`)},
		{"large_workforce", regexp.MustCompile(`(?i)\d{2,3},000\+\s+employees`)},
		{"multinational", regexp.MustCompile(`(?i)multinational\s+corporation`)},
		{"global_offices", regexp.MustCompile(`(?i)offices in \d{2,}\+?\s+countries`)},
		{"large_revenue", regexp.MustCompile(`(?i)\$\d+(?:\.\d+)?\s*(?:billion|b)\s+in revenue`)},
	}
}

// SignalDetector scans text against a fixed pattern table.
type SignalDetector struct {
	patterns []SignalPattern
}

// NewSignalDetector uses DefaultSignalPatterns when patterns is empty.
func NewSignalDetector(patterns []SignalPattern) *SignalDetector {
	if len(patterns) == 0 {
		patterns = DefaultSignalPatterns()
	}
	return &SignalDetector{patterns: patterns}
}

// Detect returns all matches keyed by signal name. Signals without a match are absent.
// Matching runs on the lower-cased text, so snippets are lower case.
func (d *SignalDetector) Detect(text string) Signals {
	text = strings.ToLower(text)
	found := Signals{}
	for _, p := range d.patterns {
		if m := p.Pattern.FindAllString(text, -1); len(m) > 0 {
			found[p.Name] = m
		}
	}
	return found
}
