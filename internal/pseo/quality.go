package pseo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	minTitleLen = 20
	maxTitleLen = 70
	minDescLen  = 70
	maxDescLen  = 160
	minFAQs     = 3
)

// CheckContent runs the single-page checks. Thin content and a missing H1
// are errors; length and FAQ problems are warnings that do not affect
// indexability.
func CheckContent(p *Page, opts Options) []Issue {
	opts = opts.withDefaults()
	var issues []Issue

	if p.WordCount < opts.MinWords {
		issues = append(issues, Issue{
			Code:     IssueThinContent,
			Severity: SeverityError,
			Message:  fmt.Sprintf("%d words, need at least %d", p.WordCount, opts.MinWords),
		})
	}
	if strings.TrimSpace(p.H1) == "" {
		issues = append(issues, Issue{Code: IssueMissingH1, Severity: SeverityError, Message: "page has no H1"})
	}
	if n := utf8.RuneCountInString(p.Title); n < minTitleLen || n > maxTitleLen {
		issues = append(issues, Issue{
			Code:     IssueTitleLength,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("title is %d characters, want %d-%d", n, minTitleLen, maxTitleLen),
		})
	}
	if n := utf8.RuneCountInString(p.MetaDescription); n < minDescLen || n > maxDescLen {
		issues = append(issues, Issue{
			Code:     IssueDescriptionLength,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("meta description is %d characters, want %d-%d", n, minDescLen, maxDescLen),
		})
	}
	if len(p.FAQs) < minFAQs {
		issues = append(issues, Issue{
			Code:     IssueFewFAQs,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d FAQs, want at least %d", len(p.FAQs), minFAQs),
		})
	}
	return issues
}

// countWords totals the visible copy of a page.
func countWords(p *Page) int {
	n := wordCount(p.H1, p.Intro)
	for _, s := range p.Sections {
		n += wordCount(s.Heading, s.Body)
		n += wordCount(s.Bullets...)
	}
	for _, f := range p.FAQs {
		n += wordCount(f.Question, f.Answer)
	}
	return n
}
