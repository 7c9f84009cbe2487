package blog

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

const wordsPerMinute = 200

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// keep heading ids so in-page anchors work
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Render turns markdown into sanitised HTML. Content-store markdown is
// untrusted, so raw HTML in it is stripped by the sanitiser.
func Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}

// Text extracts the visible text of an HTML fragment.
func Text(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Excerpt returns up to n runes of the fragment's text, cut on a word
// boundary with an ellipsis when shortened.
func Excerpt(html string, n int) string {
	text := Text(html)
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	r := []rune(text)[:n]
	s := string(r)
	if i := strings.LastIndex(s, " "); i > 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, " ,.;:") + "…"
}

// ReadingMinutes estimates reading time at 200 words a minute, never less
// than one minute.
func ReadingMinutes(html string) int {
	words := len(strings.Fields(Text(html)))
	m := int(math.Ceil(float64(words) / wordsPerMinute))
	if m < 1 {
		return 1
	}
	return m
}

// Prepare fills the derived fields of a post fetched from the content store.
func Prepare(p Post) (Post, error) {
	html, err := Render(p.Markdown)
	if err != nil {
		return Post{}, fmt.Errorf("post %s: %w", p.Slug, err)
	}
	p.HTML = html
	p.ReadingMinutes = ReadingMinutes(html)
	if strings.TrimSpace(p.Summary) == "" {
		p.Summary = Excerpt(html, 160)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.PublishedAt
	}
	return p, nil
}
