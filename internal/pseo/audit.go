package pseo

import "sort"

type FlaggedPage struct {
	Path   string  `json:"path"`
	Issues []Issue `json:"issues"`
}

type Report struct {
	Total        int            `json:"total"`
	Indexable    int            `json:"indexable"`
	Flagged      int            `json:"flagged"`
	Warnings     int            `json:"warnings"`
	ByCode       map[string]int `json:"by_code"`
	FlaggedPages []FlaggedPage  `json:"flagged_pages,omitempty"`
}

// Codes returns the issue codes seen, sorted.
func (r Report) Codes() []string {
	codes := make([]string, 0, len(r.ByCode))
	for c := range r.ByCode {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Audit runs the content checks and the de-duplication pass over pages in
// the order given, setting Issues and Indexable on every page. Only
// indexable pages are recorded in the deduper, so a flagged page never
// blocks a later one and the first indexable page to claim a keyword owns it.
func Audit(pages []*Page, opts Options) Report {
	opts = opts.withDefaults()
	d := NewDeduper(opts)
	rep := Report{Total: len(pages), ByCode: map[string]int{}}

	for _, p := range pages {
		issues := CheckContent(p, opts)
		issues = append(issues, d.Check(p)...)
		p.Issues = issues
		p.Indexable = !hasError(issues)

		warned := false
		for _, is := range issues {
			rep.ByCode[is.Code]++
			if is.Severity == SeverityWarning {
				warned = true
			}
		}
		if warned {
			rep.Warnings++
		}
		if p.Indexable {
			rep.Indexable++
			d.Add(p)
			continue
		}
		rep.Flagged++
		rep.FlaggedPages = append(rep.FlaggedPages, FlaggedPage{Path: p.Path, Issues: issues})
	}
	return rep
}
