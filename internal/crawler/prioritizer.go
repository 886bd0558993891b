package crawler

import (
	"net/url"
	"sort"
	"strings"
)

const (
	keywordWeight = 10
	phraseWeight  = 20
	contextWeight = 5
	comboWeight   = 25
	depthPenalty  = 2
	freeDepth     = 3
)

// Scorer ranks candidate links against a Topic.
type Scorer struct {
	topic Topic
}

// NewScorer creates a scorer for the given topic.
func NewScorer(t Topic) *Scorer {
	return &Scorer{topic: t}
}

// Score computes the priority of a link from its URL, anchor text and the
// text around it. Deep paths are penalized without a floor; a score of
// exactly zero is lifted to one so that plain same-site pages stay eligible.
func (s *Scorer) Score(rawURL, linkText, context string) int {
	lowerURL := strings.ToLower(rawURL)
	text := strings.ToLower(strings.TrimSpace(linkText))
	ctx := strings.ToLower(strings.TrimSpace(context))
	path := urlPath(lowerURL)

	score := 0
	for _, kw := range s.topic.Keywords {
		score += keywordWeight * strings.Count(path, kw)
	}

	if containsAny(text, s.topic.Phrases) {
		score += phraseWeight
	}
	if containsAny(ctx, s.topic.Keywords) {
		score += contextWeight
	}

	if depth := pathDepth(path); depth > freeDepth {
		score -= (depth - freeDepth) * depthPenalty
	}

	combined := lowerURL + " " + text + " " + ctx
	for _, c := range s.topic.Combos {
		if len(c) != 2 {
			continue
		}
		if strings.Contains(combined, c[0]) && strings.Contains(combined, c[1]) {
			score += comboWeight
		}
	}

	if score == 0 && lowerURL != "" {
		score = 1
	}
	return score
}

// Rank scores every candidate and returns the eligible ones (score > 0)
// ordered by score, highest first. Ties keep their input order.
func (s *Scorer) Rank(candidates []LinkCandidate) []LinkCandidate {
	ranked := make([]LinkCandidate, 0, len(candidates))
	for _, c := range candidates {
		c.Score = s.Score(c.URL, c.Text, c.Context)
		if c.Score > 0 {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func containsAny(s string, needles []string) bool {
	if s == "" {
		return false
	}
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// urlPath returns the path component, or the whole string if it does not parse.
func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Path
}

func pathDepth(path string) int {
	depth := 0
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			depth++
		}
	}
	return depth
}
