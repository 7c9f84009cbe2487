// Package pseo generates the programmatic landing pages: it joins catalog
// entries into page copy, metadata and schema.org markup, and audits the
// result for thin content, near-duplicate titles and descriptions, and
// keyword cannibalization.
package pseo

import "errors"

var (
	ErrUnknownSlug        = errors.New("unknown slug")
	ErrInvalidCombination = errors.New("invalid page combination")
)

type Section struct {
	Heading string   `json:"heading"`
	Body    string   `json:"body"`
	Bullets []string `json:"bullets,omitempty"`
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Link struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes.
const (
	IssueThinContent            = "thin_content"
	IssueMissingH1              = "missing_h1"
	IssueTitleLength            = "title_length"
	IssueDescriptionLength      = "description_length"
	IssueFewFAQs                = "few_faqs"
	IssueDuplicateTitle         = "duplicate_title"
	IssueDuplicateDescription   = "duplicate_description"
	IssueKeywordCannibalization = "keyword_cannibalization"
)

type Issue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// Conflicts is the path of the page this one collides with, if any.
	Conflicts string `json:"conflicts,omitempty"`
}

// Page is a fully generated landing page. Indexable is the validity flag: a
// page with any error-severity issue is still servable but must carry a
// noindex directive and stays out of the sitemap.
type Page struct {
	Params          Params    `json:"params"`
	Path            string    `json:"path"`
	CanonicalURL    string    `json:"canonical_url"`
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	H1              string    `json:"h1"`
	Intro           string    `json:"intro"`
	Sections        []Section `json:"sections"`
	FAQs            []FAQ     `json:"faqs"`
	PrimaryKeyword  string    `json:"primary_keyword"`
	Keywords        []string  `json:"keywords"`
	Breadcrumbs     []Link    `json:"breadcrumbs"`
	Related         []Link    `json:"related"`
	WordCount       int       `json:"word_count"`
	Indexable       bool      `json:"indexable"`
	Issues          []Issue   `json:"issues,omitempty"`
}

func hasError(issues []Issue) bool {
	for _, is := range issues {
		if is.Severity == SeverityError {
			return true
		}
	}
	return false
}
