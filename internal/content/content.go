// Package content derives alternate representations of an article's HTML
// body: plain text for search indexing and excerpt fallback, and Markdown
// for export.
package content

import (
	"strings"
	"unicode"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// skipElements are elements whose text content never belongs in the
// plain-text form.
var skipElements = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
}

// blockElements get a separating space when flattened so adjacent
// paragraphs don't run together.
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "figcaption": true,
}

// PlainText flattens an HTML fragment into whitespace-normalized text.
// Malformed markup is tolerated; the tokenizer consumes what it can.
func PlainText(htmlBody string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(htmlBody))

	skipDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapseWhitespace(b.String())
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipElements[tag] {
				skipDepth++
			}
			if blockElements[tag] {
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if skipElements[tag] && skipDepth > 0 {
				skipDepth--
			}
			if blockElements[tag] {
				b.WriteByte(' ')
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		}
	}
}

// Markdown converts an HTML fragment to Markdown.
// Returns the plain-text form if conversion fails, so callers always get
// something usable for export.
func Markdown(htmlBody string) string {
	md, err := htmltomarkdown.ConvertString(htmlBody)
	if err != nil {
		return PlainText(htmlBody)
	}
	return strings.TrimSpace(md)
}

// Summarize truncates plain text to at most maxLen runes, cutting at a word
// boundary and appending an ellipsis when shortened.
func Summarize(text string, maxLen int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= maxLen {
		return string(runes)
	}

	cut := maxLen
	for cut > 0 && !unicode.IsSpace(runes[cut]) {
		cut--
	}
	if cut == 0 {
		cut = maxLen
	}
	return strings.TrimRight(string(runes[:cut]), " \t\n") + "…"
}

// collapseWhitespace reduces runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
