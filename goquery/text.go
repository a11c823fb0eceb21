// Package goquery reduces HTML pages to plain text with goquery. It provides
// the content script that answers page extraction requests and a plain-text
// Cleaner for the parsing context.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/recordscout"
	"golang.org/x/net/html"
)

// unwantedSelector matches elements whose text never belongs in page content.
const unwantedSelector = "script, style, noscript"

// pageText returns the whitespace-collapsed text of the document body, or of
// the whole document when there is no body.
func pageText(doc *goquery.Document) string {
	doc.Find(unwantedSelector).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var sb strings.Builder
	for _, n := range root.Nodes {
		writeText(&sb, n)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// writeText appends the text under n, separating elements with spaces so
// adjacent blocks do not run together.
func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		sb.WriteByte(' ')
		defer sb.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
}

var _ recordscout.Cleaner = (*TextCleaner)(nil)

// TextCleaner implements recordscout.Cleaner by keeping all visible text of
// the page.
type TextCleaner struct{}

// NewTextCleaner creates a new TextCleaner.
func NewTextCleaner() *TextCleaner {
	return &TextCleaner{}
}

// Clean returns the plain text of rawHTML.
func (c *TextCleaner) Clean(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", recordscout.Errorf(recordscout.EINVALID, "failed to parse HTML: %v", err)
	}
	return pageText(doc), nil
}
