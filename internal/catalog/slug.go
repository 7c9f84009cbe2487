package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugReplacer = strings.NewReplacer(
	"+", " plus ",
	"#", " sharp ",
	"&", " and ",
	".", " dot ",
)

// Slugify turns free text into a catalog slug: "C# / .NET" becomes
// "c-sharp-dot-net" and "São Paulo" becomes "sao-paulo". Runs of anything
// that is not an ASCII letter or digit collapse into one hyphen.
func Slugify(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = slugReplacer.Replace(strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	pendingHyphen := false
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
