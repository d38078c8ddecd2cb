package form

import (
	"strings"

	"golang.org/x/net/html"
)

// breaking elements separate the words on either side of them.
var breaking = map[string]bool{
	"br": true, "p": true, "div": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true, "td": true, "th": true,
}

// PlainText renders the visible text of a marked-up description with
// whitespace collapsed to single spaces.
func PlainText(markup string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	skip := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch tag := string(name); {
			case tag == "script" || tag == "style":
				skip++
			case breaking[tag]:
				b.WriteByte(' ')
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch tag := string(name); {
			case (tag == "script" || tag == "style") && skip > 0:
				skip--
			case breaking[tag]:
				b.WriteByte(' ')
			}
		}
	}
}

// WordCount counts the maximal runs of non-space characters in the
// visible text of markup.
func WordCount(markup string) int {
	return len(strings.Fields(PlainText(markup)))
}
