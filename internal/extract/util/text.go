package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// TextLines extracts the visible text under a selection with one line per
// text node: each line trimmed, empty lines dropped, joined by "\n". Script
// and style subtrees are skipped.
func TextLines(sel *goquery.Selection) string {
	var lines []string
	for _, n := range sel.Nodes {
		walkText(n, &lines)
	}
	return strings.Join(lines, "\n")
}

func walkText(n *html.Node, out *[]string) {
	if n.Type == html.TextNode {
		if t := CleanText(n.Data); t != "" {
			*out = append(*out, t)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, out)
	}
}

// FlatLen is the length of the selection's text with whitespace collapsed,
// used for substantiality thresholds.
func FlatLen(sel *goquery.Selection) int {
	return len(CleanText(sel.Text()))
}
