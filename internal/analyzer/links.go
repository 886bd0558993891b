package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const contextLen = 100

// RawLink is an anchor discovered on a page, before validation and scoring.
type RawLink struct {
	URL      string
	Href     string
	Text     string
	Context  string
	Position int
}

// ExtractLinks returns every anchor with a destination in document order,
// resolved against base. Context is the leading text of the anchor's parent.
func ExtractLinks(doc *goquery.Document, base *url.URL) []RawLink {
	var links []RawLink
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		abs := resolve(base, href)
		if abs == "" {
			return
		}
		var ctx string
		if p := a.Parent(); p.Length() > 0 {
			ctx = sample(visibleText(p), contextLen)
		}
		links = append(links, RawLink{
			URL:      abs,
			Href:     href,
			Text:     visibleText(a),
			Context:  ctx,
			Position: len(links),
		})
	})
	return links
}

// resolve resolves a relative URL against a base URL.
func resolve(base *url.URL, href string) string {
	p, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return p.String()
	}
	return base.ResolveReference(p).String()
}
