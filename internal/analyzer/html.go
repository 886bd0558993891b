package analyzer

import (
	"bytes"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var titleSeparators = []string{"|", "-", "–", ":", "—"}

// parseDocument builds a goquery document from a fetched body.
func parseDocument(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// SiteName derives a display name for the site: og:site_name first, then the
// leading part of the title, then the first label of the host.
func SiteName(doc *goquery.Document, base *url.URL) string {
	if v, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title != "" {
		for _, sep := range titleSeparators {
			if head, _, found := strings.Cut(title, sep); found {
				if name := strings.TrimSpace(head); plausibleName(name) {
					return name
				}
			}
		}
		if plausibleName(title) {
			return title
		}
	}

	return hostLabel(base)
}

func plausibleName(s string) bool {
	n := utf8.RuneCountInString(s)
	return n > 3 && n < 50
}

// hostLabel returns the capitalized first label of the host, without www.
func hostLabel(u *url.URL) string {
	if u == nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
