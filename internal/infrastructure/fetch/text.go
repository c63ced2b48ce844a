package fetch

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Elements whose text is never menu content.
const strippedSelectors = "script,noscript,style,nav,footer,iframe"

// blockElements end a visual line, so their boundaries become newlines
// in the extracted text. The locator and scanner are line-based and
// depend on this decomposition.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dd": true, "dt": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "header": true,
	"li": true, "main": true, "p": true, "section": true, "table": true,
	"td": true, "th": true, "tr": true, "ul": true, "ol": true,
}

var blankLineRunRegex = regexp.MustCompile(`\n\s*\n+`)

// ExtractText converts page markup into plain text with one visual
// line per text line, stripped of script/style/navigation content.
// Malformed input degrades to an empty string rather than an error.
func ExtractText(htmlStr string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}
	doc.Find(strippedSelectors).Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	var sb strings.Builder
	body := doc.Find("body")
	if len(body.Nodes) == 0 {
		return ""
	}
	for _, node := range body.Nodes {
		writeNodeText(node, &sb)
	}

	text := blankLineRunRegex.ReplaceAllString(sb.String(), "\n")
	return strings.TrimSpace(text)
}

// writeNodeText walks the node tree appending text content, inserting
// newlines at block-element boundaries and <br> tags.
func writeNodeText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			sb.WriteString("\n")
			return
		}
		if blockElements[n.Data] {
			sb.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(c, sb)
	}
	if n.Type == html.ElementNode && blockElements[n.Data] {
		sb.WriteString("\n")
	}
}
