package pseo

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"developer", "go", "london"}, Tokens("Go developer in London, go!"))
	assert.Equal(t, []string{"developer"}, Tokens("Zach Dev developer", map[string]bool{"zach": true, "dev": true}))
	assert.Empty(t, Tokens("the and of"))
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"go developer", "", 0},
		{"go developer", "Go Developer", 1},
		{"go developer london", "go developer toronto", 0.5},
		{"a b c d", "e f g h", 0},
		{"react for the web", "react web", 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-9, "%q vs %q", tt.a, tt.b)
	}
}

func TestNormalizeKeyword(t *testing.T) {
	assert.Equal(t, NormalizeKeyword("Go developer in London"), NormalizeKeyword("london go developer"))
	assert.NotEqual(t, NormalizeKeyword("go developer london"), NormalizeKeyword("go developer toronto"))
}

func TestSimIndex_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	vocab := make([]string, 40)
	for i := range vocab {
		vocab[i] = fmt.Sprintf("w%d", i)
	}
	randomSet := func() []string {
		n := rng.Intn(8)
		seen := map[string]bool{}
		var words []string
		for len(words) < n {
			w := vocab[rng.Intn(12)]
			if rng.Intn(4) == 0 {
				w = vocab[rng.Intn(len(vocab))]
			}
			if !seen[w] {
				seen[w] = true
				words = append(words, w)
			}
		}
		return Tokens(fmt.Sprint(words))
	}

	for _, threshold := range []float64{0.5, 0.7, 0.85, 0.9} {
		ix := newSimIndex(threshold)
		var sets [][]string
		for i := 0; i < 400; i++ {
			set := randomSet()

			wantID, wantSim := -1, 0.0
			for id, other := range sets {
				s := jaccardSets(set, other)
				if s >= threshold && (wantID < 0 || s > wantSim) {
					wantID, wantSim = id, s
				}
			}

			path, sim, ok := ix.match(set)
			if wantID < 0 {
				require.False(t, ok, "threshold %.2f set %v matched %s", threshold, set, path)
			} else {
				require.True(t, ok, "threshold %.2f set %v missed %d", threshold, set, wantID)
				assert.Equal(t, fmt.Sprint(wantID), path)
				assert.Equal(t, wantSim, sim)
			}

			ix.add(fmt.Sprint(i), set)
			sets = append(sets, set)
		}
	}
}

func TestDeduper(t *testing.T) {
	d := NewDeduper(Options{IgnoreWords: []string{"Zach Dev"}})
	a := &Page{
		Path:            "/hire/go/in/london",
		Title:           "Hire a Go Developer in London | Zach Dev",
		MetaDescription: "Freelance Go developer in London with payments and ledger experience for fintech teams.",
		PrimaryKeyword:  "go developer london",
	}
	require.Empty(t, d.Check(a))
	d.Add(a)

	dupTitle := &Page{
		Path:            "/hire/go/in/london-uk",
		Title:           "Hire a Go Developer in London",
		MetaDescription: "Completely different copy about container orchestration and Kubernetes operators in Berlin.",
		PrimaryKeyword:  "kubernetes operators berlin",
	}
	issues := d.Check(dupTitle)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueDuplicateTitle, issues[0].Code)
	assert.Equal(t, a.Path, issues[0].Conflicts)

	cannibal := &Page{
		Path:            "/hire/go/for/london",
		Title:           "Payments Engineering Help",
		MetaDescription: "Ledger reconciliation and idempotent payment flows built by an experienced freelancer on contract.",
		PrimaryKeyword:  "London Go developer",
	}
	issues = d.Check(cannibal)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueKeywordCannibalization, issues[0].Code)

	// Re-checking the accepted page itself is not a conflict.
	assert.Empty(t, d.Check(a))
}
