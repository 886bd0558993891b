package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// boilerplateSelector lists the subtrees that never carry page content.
const boilerplateSelector = "script, style, noscript, nav, header, footer, aside, iframe"

// Normalize strips boilerplate elements from doc and returns its
// whitespace-collapsed text. The document is modified in place.
func Normalize(doc *goquery.Document) string {
	doc.Find(boilerplateSelector).Remove()
	return visibleText(doc.Selection)
}

// NormalizeHTML parses raw markup and normalizes it.
func NormalizeHTML(raw string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return "", err
	}
	return Normalize(doc), nil
}

// visibleText joins every text node under s with a space so that adjacent
// block elements do not run together, then collapses whitespace.
func visibleText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		case html.CommentNode, html.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return collapseSpace(b.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
