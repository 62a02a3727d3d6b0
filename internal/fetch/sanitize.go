package fetch

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MinContentLength is the shortest sanitized page text worth extracting from.
const MinContentLength = 100

// ErrInsufficientContent is returned when a page yields too little text to extract a job from.
var ErrInsufficientContent = errors.New("insufficient content for extraction")

// blockElements end a line in the sanitized output.
var blockElements = map[string]bool{
	"div": true, "p": true, "li": true, "section": true, "article": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// SanitizeHTML converts raw HTML into plain text. Script and style content is
// dropped, block elements become line breaks, other tags become word breaks,
// whitespace runs collapse to one space and blank lines are removed.
func SanitizeHTML(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, template").Remove()

	var sb strings.Builder
	for _, n := range doc.Nodes {
		writeNode(&sb, n)
	}
	return collapseWhitespace(sb.String())
}

// HasSufficientContent reports whether sanitized text is long enough to extract from.
func HasSufficientContent(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinContentLength
}

func writeNode(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	case html.ElementNode:
		sep := " "
		if blockElements[n.Data] {
			sep = "\n"
		}
		sb.WriteString(sep)
		defer sb.WriteString(sep)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(sb, c)
	}
}

func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
