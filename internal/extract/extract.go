package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Portuguese)

// Parse builds a navigable document from raw HTML bytes.
func Parse(input []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// InnerHTML serializes the children of the first node in sel, in document
// order. Void elements render in their self-closing form, e.g. <br/>.
func InnerHTML(sel *goquery.Selection) (string, error) {
	if sel == nil || sel.Length() == 0 {
		return "", nil
	}
	var children []*html.Node
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return renderNodes(children...)
}

// OuterHTML serializes the first node in sel including its own tag.
func OuterHTML(sel *goquery.Selection) (string, error) {
	if sel == nil || sel.Length() == 0 {
		return "", nil
	}
	return renderNodes(sel.Nodes[0])
}

func renderNodes(nodes ...*html.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return b.String(), nil
}

// HasContents reports whether the first node in sel has any child node,
// text or element.
func HasContents(sel *goquery.Selection) bool {
	if sel == nil || sel.Length() == 0 {
		return false
	}
	return sel.Nodes[0].FirstChild != nil
}

// Lower lower-cases s using Portuguese casing rules.
func Lower(s string) string {
	return lower.String(s)
}

// ContainsFold reports whether the lower-cased s contains the lower-case needle.
func ContainsFold(s, needle string) bool {
	return strings.Contains(Lower(s), needle)
}
