package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Zach", p.FirstName())
	assert.NotEmpty(t, p.About)
	assert.Len(t, p.Work, 2)
	assert.Len(t, p.Education, 2)
	assert.Equal(t, "Target", p.Work[0].Organization)
}

func TestProjects_Ordered(t *testing.T) {
	p, err := Load(strings.NewReader(`
name: Test Person
projects:
  - slug: c
    name: C
    order: 3
  - slug: a
    name: A
    order: 1
  - slug: b
    name: B
    order: 2
`))
	require.NoError(t, err)

	var slugs []string
	for _, pr := range p.Projects() {
		slugs = append(slugs, pr.Slug)
	}
	assert.Equal(t, []string{"a", "b", "c"}, slugs)
	assert.Equal(t, "c", p.Items[0].Slug, "source order is untouched")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(strings.NewReader("headline: no name\n"))
	assert.Error(t, err)

	_, err = Load(strings.NewReader("name: X\nhobbies: [pool]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode profile")
}
