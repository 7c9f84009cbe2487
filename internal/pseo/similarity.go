package pseo

import (
	"sort"
	"strings"
	"unicode"
)

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "i": true, "in": true,
	"is": true, "it": true, "me": true, "my": true, "of": true, "on": true,
	"or": true, "that": true, "the": true, "this": true, "to": true,
	"we": true, "with": true, "you": true, "your": true,
}

// Tokens returns the distinct content words of s, lowercased and sorted.
// Anything that is not a letter or digit separates words; stopwords and the
// extra ignore set are dropped.
func Tokens(s string, ignore ...map[string]bool) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if stopwords[f] || seen[f] {
			continue
		}
		skip := false
		for _, ig := range ignore {
			if ig[f] {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Jaccard is |A∩B| / |A∪B| over the word sets of a and b. Two texts with no
// content words are identical (1); exactly one empty side scores 0.
func Jaccard(a, b string) float64 {
	return jaccardSets(Tokens(a), Tokens(b))
}

func jaccardSets(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	inter := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// NormalizeKeyword reduces a search phrase to its sorted content words so
// that "london go developer" and "Go developer in London" collide.
func NormalizeKeyword(kw string) string {
	return strings.Join(Tokens(kw), " ")
}

// wordCount counts whitespace-separated words across all given texts.
func wordCount(texts ...string) int {
	n := 0
	for _, t := range texts {
		n += len(strings.Fields(t))
	}
	return n
}
