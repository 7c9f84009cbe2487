package pseo

import (
	"fmt"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// simIndex finds earlier entries whose token set has Jaccard similarity at
// or above a threshold, using prefix filtering: tokens are sorted into one
// global order, and two sets can only reach the threshold t if the first
// |x|-ceil(t|x|)+1 tokens of each share at least one token. Only prefix
// tokens are indexed, so a lookup touches the few entries that share a rare
// prefix token instead of every entry.
type simIndex struct {
	threshold float64
	paths     []string
	sets      [][]string
	postings  map[string][]int
	empties   []int
}

func newSimIndex(threshold float64) *simIndex {
	return &simIndex{threshold: threshold, postings: map[string][]int{}}
}

type orderedToken struct {
	tok string
	h   uint64
}

// order sorts tokens by xxhash, falling back to the token itself so the order
// is total and identical for every set.
func order(tokens []string) []string {
	ot := make([]orderedToken, len(tokens))
	for i, t := range tokens {
		ot[i] = orderedToken{tok: t, h: xxhash.Sum64String(t)}
	}
	sort.Slice(ot, func(i, j int) bool {
		if ot[i].h != ot[j].h {
			return ot[i].h < ot[j].h
		}
		return ot[i].tok < ot[j].tok
	})
	out := make([]string, len(ot))
	for i, o := range ot {
		out[i] = o.tok
	}
	return out
}

func (ix *simIndex) prefixLen(n int) int {
	if n == 0 {
		return 0
	}
	// The epsilon keeps float error from shortening the prefix; a longer
	// prefix only adds candidates, never drops a true match.
	need := int(math.Ceil(ix.threshold*float64(n) - 1e-9))
	if need < 1 {
		need = 1
	}
	p := n - need + 1
	if p > n {
		p = n
	}
	return p
}

// match returns the earliest, most similar entry at or above the threshold.
func (ix *simIndex) match(tokens []string) (path string, sim float64, ok bool) {
	if len(tokens) == 0 {
		if len(ix.empties) > 0 {
			return ix.paths[ix.empties[0]], 1, true
		}
		return "", 0, false
	}
	ordered := order(tokens)
	seen := map[int]bool{}
	best := -1
	for _, t := range ordered[:ix.prefixLen(len(ordered))] {
		for _, id := range ix.postings[t] {
			if seen[id] {
				continue
			}
			seen[id] = true
			s := jaccardSets(tokens, ix.sets[id])
			if s < ix.threshold {
				continue
			}
			if best < 0 || s > sim || (s == sim && id < best) {
				best, sim = id, s
			}
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return ix.paths[best], sim, true
}

func (ix *simIndex) add(path string, tokens []string) {
	id := len(ix.paths)
	ix.paths = append(ix.paths, path)
	ix.sets = append(ix.sets, tokens)
	if len(tokens) == 0 {
		ix.empties = append(ix.empties, id)
		return
	}
	ordered := order(tokens)
	for _, t := range ordered[:ix.prefixLen(len(ordered))] {
		ix.postings[t] = append(ix.postings[t], id)
	}
}

// Deduper remembers accepted pages and flags later pages whose title or
// description is a near-duplicate, or whose primary keyword is already
// owned by another path. It is not safe for concurrent use.
type Deduper struct {
	titles   *simIndex
	descs    *simIndex
	keywords map[string]string
	ignore   map[string]bool
}

func NewDeduper(opts Options) *Deduper {
	opts = opts.withDefaults()
	ignore := make(map[string]bool, len(opts.IgnoreWords))
	for _, w := range opts.IgnoreWords {
		for _, t := range Tokens(w) {
			ignore[t] = true
		}
	}
	return &Deduper{
		titles:   newSimIndex(opts.TitleThreshold),
		descs:    newSimIndex(opts.DescriptionThreshold),
		keywords: map[string]string{},
		ignore:   ignore,
	}
}

// Check compares p against every accepted page. It does not record p.
func (d *Deduper) Check(p *Page) []Issue {
	var issues []Issue
	if other, sim, ok := d.titles.match(Tokens(p.Title, d.ignore)); ok && other != p.Path {
		issues = append(issues, Issue{
			Code:      IssueDuplicateTitle,
			Severity:  SeverityError,
			Message:   fmt.Sprintf("title is %.0f%% similar to %s", sim*100, other),
			Conflicts: other,
		})
	}
	if other, sim, ok := d.descs.match(Tokens(p.MetaDescription, d.ignore)); ok && other != p.Path {
		issues = append(issues, Issue{
			Code:      IssueDuplicateDescription,
			Severity:  SeverityError,
			Message:   fmt.Sprintf("meta description is %.0f%% similar to %s", sim*100, other),
			Conflicts: other,
		})
	}
	if kw := NormalizeKeyword(p.PrimaryKeyword); kw != "" {
		if owner, ok := d.keywords[kw]; ok && owner != p.Path {
			issues = append(issues, Issue{
				Code:      IssueKeywordCannibalization,
				Severity:  SeverityError,
				Message:   fmt.Sprintf("primary keyword %q already targeted by %s", p.PrimaryKeyword, owner),
				Conflicts: owner,
			})
		}
	}
	return issues
}

// Add records p as accepted. The first page to claim a keyword keeps it.
func (d *Deduper) Add(p *Page) {
	d.titles.add(p.Path, Tokens(p.Title, d.ignore))
	d.descs.add(p.Path, Tokens(p.MetaDescription, d.ignore))
	if kw := NormalizeKeyword(p.PrimaryKeyword); kw != "" {
		if _, ok := d.keywords[kw]; !ok {
			d.keywords[kw] = p.Path
		}
	}
}
