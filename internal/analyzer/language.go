package analyzer

import (
	"github.com/abadojack/whatlanggo"
)

const (
	minClassifiableLen = 50
	languageSampleLen  = 200
)

// Classifier identifies the language of a text sample. ok is false when the
// language cannot be determined with enough confidence.
type Classifier interface {
	Classify(text string) (code string, ok bool)
}

// whatlangClassifier reports ISO 639-3 codes.
type whatlangClassifier struct {
	minConfidence float64
}

// NewWhatlangClassifier returns a Classifier backed by whatlanggo.
func NewWhatlangClassifier(minConfidence float64) Classifier {
	return &whatlangClassifier{minConfidence: minConfidence}
}

func (c *whatlangClassifier) Classify(text string) (string, bool) {
	info := whatlanggo.Detect(text)
	if info.Confidence < c.minConfidence || info.Confidence == 0 {
		return "", false
	}
	code := info.Lang.Iso6393()
	if code == "" {
		return "", false
	}
	return code, true
}

// LanguageFilter accepts text in the target language and fails open on
// short or unclassifiable input.
type LanguageFilter struct {
	classifier Classifier
	target     string
}

// NewLanguageFilter builds a filter for the target language code.
func NewLanguageFilter(c Classifier, target string) *LanguageFilter {
	if target == "" {
		target = "eng"
	}
	return &LanguageFilter{classifier: c, target: target}
}

// Accept reports whether text should be kept.
func (f *LanguageFilter) Accept(text string) bool {
	if f == nil || f.classifier == nil || len(text) < minClassifiableLen {
		return true
	}
	code, ok := f.classifier.Classify(sample(text, languageSampleLen))
	if !ok {
		return true
	}
	return code == f.target
}

// sample returns the first n runes of s.
func sample(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
